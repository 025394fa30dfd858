package ports

import "fleetreport/domain/report"

// GridSource reads an untyped cell grid from one spreadsheet source. The
// grid carries no schema; structural interpretation happens in the domain.
type GridSource interface {
	// ReadGrid loads the named worksheet, or the first worksheet when
	// sheet is empty. CSV sources ignore the sheet name.
	ReadGrid(sheet string) (report.RawGrid, error)

	// SheetNames lists the worksheets available in the source.
	SheetNames() ([]string, error)
}
