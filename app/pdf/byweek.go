package pdf

import (
	"fmt"
	"strconv"

	modelReport "university-enrollment-report/app/models/report"
)

// byWeekView lays weeks out as rows and (university × year) pairs as columns,
// with a leading week column and a trailing per-row total column.
type byWeekView struct {
	payload   *modelReport.ReportPayload
	years     []int
	weekLimit int
	idx       amountIndex
}

func newByWeekView(payload *modelReport.ReportPayload, years []int, weekLimit int) *byWeekView {
	return &byWeekView{
		payload:   payload,
		years:     years,
		weekLimit: weekLimit,
		idx:       buildAmountIndex(payload),
	}
}

// simulatePages dry-runs the pagination rules of render: header block on
// every page, one fixed-height row per week, a page break whenever the cursor
// passes the break limit, and a taller totals row at the end.
func (v *byWeekView) simulatePages() int {
	limit := a4LandscapeHeight - 100
	pages := 1
	y := firstPageTableTop + 2*headerRowH
	for week := 1; week <= v.weekLimit; week++ {
		if y > limit {
			pages++
			y = contPageTableTop + 2*headerRowH
		}
		y += weekRowH
	}
	if y > limit {
		pages++
	}
	return pages
}

func (v *byWeekView) render(d *doc) {
	page := 1
	y := d.addFirstPage(page, "")
	v.drawTableHeader(d, y)
	y += 2 * headerRowH

	for week := 1; week <= v.weekLimit; week++ {
		if y > d.breakLimit() {
			page++
			y = d.addContinuationPage(page, "")
			v.drawTableHeader(d, y)
			y += 2 * headerRowH
		}
		v.drawWeekRow(d, y, week)
		y += weekRowH
	}

	if y > d.breakLimit() {
		page++
		y = d.addContinuationPage(page, "")
		v.drawTableHeader(d, y)
		y += 2 * headerRowH
	}
	v.drawTotalsRow(d, y)
}

// dataColWidth is the uniform width of one (university, year) column.
func (v *byWeekView) dataColWidth(d *doc) float64 {
	avail := d.tableWidth() - firstColWidth - totalColWidth
	cols := v.payload.Len() * len(v.years)
	if cols == 0 {
		return avail
	}
	return avail / float64(cols)
}

// drawTableHeader draws the two-row header: university logos spanning their
// year columns, then year labels underneath. Redrawn on every overflow page.
func (v *byWeekView) drawTableHeader(d *doc, y float64) {
	colW := v.dataColWidth(d)
	spanW := colW * float64(len(v.years))

	d.setFill(headerFill)
	d.setDraw(borderGray)
	d.setText([3]int{0, 0, 0})
	d.pdf.SetFontSize(10)
	d.pdf.Rect(marginX, y, d.tableWidth(), 2*headerRowH, "FD")

	// Week label spans both header rows.
	d.textIn(marginX, y+15, firstColWidth, headerRowH, "Week")

	x := marginX + firstColWidth
	for _, uni := range v.payload.Names() {
		d.cell(x, y, spanW, headerRowH, "", false)
		if d.hasLogo(uni) {
			d.drawLogo(uni, x+6, y+5, spanW-12, headerRowH-10)
		} else {
			d.textIn(x, y, spanW, headerRowH, uni)
		}
		x += spanW
	}
	d.cell(x, y, totalColWidth, headerRowH, "TOTAL", false)

	x = marginX + firstColWidth
	for range v.payload.Names() {
		for _, year := range v.years {
			d.cell(x, y+headerRowH, colW, headerRowH, strconv.Itoa(year), false)
			x += colW
		}
	}
	d.cell(x, y+headerRowH, totalColWidth, headerRowH, "", false)
}

func (v *byWeekView) drawWeekRow(d *doc, y float64, week int) {
	colW := v.dataColWidth(d)
	fill := zebraFills[(week-1)%2]

	d.setDraw(borderGray)
	d.setText([3]int{0, 0, 0})
	d.pdf.SetFontSize(10)

	d.setFill(fill)
	d.cell(marginX, y, firstColWidth, weekRowH, fmt.Sprintf("W%d", week), true)

	rowTotal := 0
	x := marginX + firstColWidth
	for _, uni := range v.payload.Names() {
		for _, year := range v.years {
			value := v.idx.value(uni, year, week)
			rowTotal += value
			d.cell(x, y, colW, weekRowH, strconv.Itoa(value), true)
			x += colW
		}
	}

	d.setFill(totalsFill)
	d.cell(x, y, totalColWidth, weekRowH, strconv.Itoa(rowTotal), true)
}

// drawTotalsRow closes the table with per-column totals, year-over-year delta
// annotations and the grand total.
func (v *byWeekView) drawTotalsRow(d *doc, y float64) {
	colW := v.dataColWidth(d)

	d.setFill(totalsFill)
	d.setDraw([3]int{0, 0, 0})
	d.pdf.Rect(marginX, y, d.tableWidth(), weekTotalsRowH, "FD")

	d.setText([3]int{0, 0, 0})
	d.pdf.SetFontSize(12)
	d.textIn(marginX, y, firstColWidth, weekTotalsRowH, "Totals")

	grandTotal := 0
	x := marginX + firstColWidth
	d.pdf.SetFontSize(10)
	for _, uni := range v.payload.Names() {
		for _, year := range v.years {
			total := v.idx.columnTotal(uni, year, v.weekLimit)
			grandTotal += total

			d.pdf.SetXY(x, y)
			d.pdf.CellFormat(colW, weekTotalsRowH, "", "1", 0, "C", false, 0, "")
			d.textIn(x, y+6, colW, 14, strconv.Itoa(total))

			if showDelta(v.years, year) {
				diff := total - v.idx.columnTotal(uni, year-1, v.weekLimit)
				if diff >= 0 {
					d.setText(deltaUpRGB)
				} else {
					d.setText(deltaDownRGB)
				}
				d.pdf.SetFontSize(8)
				d.textIn(x, y+22, colW, 12, formatDelta(diff))
				d.pdf.SetFontSize(10)
				d.setText([3]int{0, 0, 0})
			}
			x += colW
		}
	}

	d.pdf.SetFontSize(12)
	d.pdf.SetXY(x, y)
	d.pdf.CellFormat(totalColWidth, weekTotalsRowH, strconv.Itoa(grandTotal), "1", 0, "C", false, 0, "")
	d.pdf.SetFontSize(10)
}
