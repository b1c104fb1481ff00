// Package pdf renders report payloads into paginated tabular PDF documents.
// Two layouts are supported: weeks as rows (ByWeek) and universities as rows
// (ByUniversity). Both compute their total page count by a dry-run simulation
// sharing the draw pass's pagination rules, so the printed "Page N of M" is
// always exact.
package pdf

import (
	"bytes"
	"fmt"
	"sort"
	"time"

	modelReport "university-enrollment-report/app/models/report"
	"university-enrollment-report/app/report"

	"github.com/jung-kurt/gofpdf"
)

type ViewMode string

const (
	ByWeek       ViewMode = "byWeek"
	ByUniversity ViewMode = "byUniversity"
)

// ParseViewMode maps the viewType query value to a layout, defaulting to
// ByWeek for empty or unknown values.
func ParseViewMode(s string) ViewMode {
	if s == string(ByUniversity) {
		return ByUniversity
	}
	return ByWeek
}

type Params struct {
	Years       []int
	WeekLimit   int
	View        ViewMode
	GeneratedBy string
	Timestamp   time.Time
}

type Result struct {
	Bytes []byte
	Pages int
}

// layoutMode is the strategy shared by the two table orientations. render may
// only be called after simulatePages has fixed the document's total page
// count.
type layoutMode interface {
	simulatePages() int
	render(d *doc)
}

// Render lays the payload out as a PDF document and returns its bytes. The
// document is assembled entirely in memory; no temp files are involved. An
// empty payload produces a header-only document, never an error.
func Render(payload *modelReport.ReportPayload, p Params, logos LogoProvider) (*Result, error) {
	if err := report.ValidateParams(p.Years, p.WeekLimit); err != nil {
		return nil, err
	}
	if payload == nil {
		payload = modelReport.NewReportPayload()
	}

	years := append([]int(nil), p.Years...)
	sort.Ints(years)

	f := gofpdf.New("L", "pt", "A4", "")
	f.SetAutoPageBreak(false, 0)
	f.SetFont("Helvetica", "", 10)

	d := &doc{pdf: f, params: p, payload: payload}
	d.registerLogos(logos)

	var view layoutMode
	switch p.View {
	case ByUniversity:
		view = newByUniversityView(payload, years, p.WeekLimit)
	default:
		view = newByWeekView(payload, years, p.WeekLimit)
	}

	d.totalPages = view.simulatePages()
	view.render(d)

	if f.Err() {
		return nil, &report.RenderError{Stage: "draw", Err: f.Error()}
	}

	pages := f.PageCount()
	var buf bytes.Buffer
	if err := f.Output(&buf); err != nil {
		return nil, &report.RenderError{Stage: "finalize", Err: err}
	}
	return &Result{Bytes: buf.Bytes(), Pages: pages}, nil
}

// doc wraps the gofpdf document with per-render state. Each render call gets
// its own doc; nothing is shared across requests.
type doc struct {
	pdf        *gofpdf.Fpdf
	params     Params
	payload    *modelReport.ReportPayload
	totalPages int

	bannerLogo string
	uniLogos   map[string]registeredLogo
}

func (d *doc) tableWidth() float64 {
	w, _ := d.pdf.GetPageSize()
	return w - 2*marginX
}

func (d *doc) pageHeight() float64 {
	_, h := d.pdf.GetPageSize()
	return h
}

func (d *doc) breakLimit() float64 {
	return d.pageHeight() - 100
}

// addFirstPage draws the full document header: banner logo, title, date/time,
// page counter and the generated-by line. weeksLine, when non-empty, adds a
// centered week-range note (ByUniversity multi-group documents). Returns the
// y position where the table starts.
func (d *doc) addFirstPage(page int, weeksLine string) float64 {
	f := d.pdf
	f.AddPage()

	if d.bannerLogo != "" {
		d.drawLogo(d.bannerLogo, 50, 42, 100, 44)
	}

	f.SetTextColor(0, 0, 0)
	f.SetFontSize(24)
	f.SetXY(marginX, 48)
	f.CellFormat(d.tableWidth(), 30, reportTitle, "", 0, "C", false, 0, "")

	f.SetFontSize(10)
	f.SetXY(marginX, 84)
	f.CellFormat(d.tableWidth(), 12, d.metaLine(page), "", 0, "R", false, 0, "")
	f.SetXY(marginX, 96)
	f.CellFormat(d.tableWidth(), 12, "Generated by: "+d.params.GeneratedBy, "", 0, "R", false, 0, "")

	if weeksLine != "" {
		f.SetFontSize(12)
		f.SetXY(marginX, 112)
		f.CellFormat(d.tableWidth(), 16, weeksLine, "", 0, "C", false, 0, "")
		f.SetFontSize(10)
	}

	return firstPageTableTop
}

// addContinuationPage draws the reduced header used on overflow pages.
func (d *doc) addContinuationPage(page int, weeksLine string) float64 {
	f := d.pdf
	f.AddPage()

	f.SetTextColor(0, 0, 0)
	f.SetFontSize(14)
	f.SetXY(marginX, 40)
	f.CellFormat(d.tableWidth(), 20, reportTitle+" (continued)", "", 0, "C", false, 0, "")

	f.SetFontSize(10)
	f.SetXY(marginX, 62)
	f.CellFormat(d.tableWidth(), 12, fmt.Sprintf("Page %d of %d", page, d.totalPages), "", 0, "R", false, 0, "")

	if weeksLine != "" {
		f.SetFontSize(12)
		f.SetXY(marginX, 74)
		f.CellFormat(d.tableWidth(), 16, weeksLine, "", 0, "C", false, 0, "")
		f.SetFontSize(10)
	}

	return contPageTableTop
}

func (d *doc) metaLine(page int) string {
	ts := d.params.Timestamp
	return fmt.Sprintf("Date: %s | Time: %s | Page %d of %d",
		ts.Format("02/01/2006"), ts.Format("15:04:05"), page, d.totalPages)
}
