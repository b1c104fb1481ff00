package pdf

import (
	"fmt"

	modelReport "university-enrollment-report/app/models/report"
)

const reportTitle = "University Enrollment Summary"

// Layout constants in points, landscape A4. The break limit mirrors the
// overflow rule "start a new page when y passes pageHeight-100"; it is applied
// identically by the page-count simulation and the draw pass.
const (
	marginX        = 40.0
	firstColWidth  = 60.0
	totalColWidth  = 60.0
	headerRowH     = 30.0
	weekRowH       = 30.0
	weekTotalsRowH = 40.0
	uniRowH        = 25.0
	uniTotalsRowH  = 35.0

	firstPageTableTop = 140.0
	contPageTableTop  = 100.0

	maxWeeksPerPage = 10

	// Page height of landscape A4 in points, matching gofpdf's page size.
	// Used by the page-count simulations, which run before any page exists.
	a4LandscapeHeight = 595.28
)

// Cell colors (RGB).
var (
	headerFill   = [3]int{245, 245, 245}
	borderGray   = [3]int{204, 204, 204}
	zebraFills   = [2][3]int{{255, 255, 255}, {249, 249, 249}}
	totalsFill   = [3]int{230, 247, 255}
	deltaUpRGB   = [3]int{0, 128, 0}
	deltaDownRGB = [3]int{200, 0, 0}
)

// amountIndex gives O(1) access to a university's summed amount per
// (year, week) cell. Built once per render from the regular series.
type amountIndex map[string]map[[2]int]int

func buildAmountIndex(p *modelReport.ReportPayload) amountIndex {
	idx := make(amountIndex, p.Len())
	for _, name := range p.Names() {
		rep, _ := p.Get(name)
		cells := make(map[[2]int]int, len(rep.Regular))
		for _, pt := range rep.Regular {
			cells[[2]int{pt.Year, pt.Week}] += pt.Amount
		}
		idx[name] = cells
	}
	return idx
}

func (ix amountIndex) value(uni string, year, week int) int {
	return ix[uni][[2]int{year, week}]
}

// columnTotal sums amounts over weeks 1..weekLimit for one (university, year)
// column. By construction this equals the final cumulative value at
// weekLimit.
func (ix amountIndex) columnTotal(uni string, year, weekLimit int) int {
	total := 0
	for week := 1; week <= weekLimit; week++ {
		total += ix.value(uni, year, week)
	}
	return total
}

// formatDelta renders a year-over-year difference: "(+30)" for growth,
// "(-30)" for decline, "(0)" for no change.
func formatDelta(diff int) string {
	if diff > 0 {
		return fmt.Sprintf("(+%d)", diff)
	}
	return fmt.Sprintf("(%d)", diff)
}

// showDelta reports whether a delta annotation applies to a column: only on
// the last selected year, and only when the prior year is also selected.
// years must be sorted ascending.
func showDelta(years []int, year int) bool {
	if len(years) < 2 || year != years[len(years)-1] {
		return false
	}
	for _, y := range years {
		if y == year-1 {
			return true
		}
	}
	return false
}

// setFill, setDraw and setText are small shims so the color constants above
// can be applied in one call.
func (d *doc) setFill(c [3]int) { d.pdf.SetFillColor(c[0], c[1], c[2]) }
func (d *doc) setDraw(c [3]int) { d.pdf.SetDrawColor(c[0], c[1], c[2]) }
func (d *doc) setText(c [3]int) { d.pdf.SetTextColor(c[0], c[1], c[2]) }

// cell draws one bordered table cell with centered text.
func (d *doc) cell(x, y, w, h float64, text string, fill bool) {
	d.pdf.SetXY(x, y)
	d.pdf.CellFormat(w, h, text, "1", 0, "C", fill, 0, "")
}

// textIn overlays centered text without borders or background, for cells that
// carry more than one line (totals + delta).
func (d *doc) textIn(x, y, w, h float64, text string) {
	d.pdf.SetXY(x, y)
	d.pdf.CellFormat(w, h, text, "", 0, "C", false, 0, "")
}
