package pdf

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"os/exec"

	"fleetreport/internal/errors"
)

// Renderer converts self-contained HTML into PDF by shelling out to
// wkhtmltopdf (or a compatible binary). The binary is looked up exactly
// once at construction; absence is a capability flag, not an error.
type Renderer struct {
	binary   string
	resolved string
}

// NewRenderer probes for the converter binary and returns the renderer.
// When the binary is missing the renderer is still returned, with
// Available reporting false, so callers can degrade gracefully.
func NewRenderer(binary string) *Renderer {
	r := &Renderer{binary: binary}
	path, err := exec.LookPath(binary)
	if err != nil {
		log.Printf("[PDFRenderer] %s not found, PDF export disabled: %v", binary, err)
		return r
	}
	r.resolved = path
	log.Printf("[PDFRenderer] using %s", path)
	return r
}

// Available reports whether a conversion binary was found at startup.
func (r *Renderer) Available() bool { return r.resolved != "" }

// Render converts HTML bytes to PDF bytes.
func (r *Renderer) Render(ctx context.Context, html []byte) ([]byte, error) {
	if !r.Available() {
		return nil, errors.RendererUnavailable(fmt.Sprintf("%s is not installed", r.binary))
	}

	// Read HTML from stdin, write PDF to stdout.
	cmd := exec.CommandContext(ctx, r.resolved, "--quiet", "--encoding", "utf-8", "-", "-")
	cmd.Stdin = bytes.NewReader(html)

	var out, stderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, errors.Wrapf(err, "pdf conversion failed: %s", stderr.String())
	}
	return out.Bytes(), nil
}
