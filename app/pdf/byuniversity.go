package pdf

import (
	"fmt"
	"strconv"

	modelReport "university-enrollment-report/app/models/report"
)

// byUniversityView lays universities out as rows and (week × year) pairs as
// columns. Weeks are partitioned into fixed groups of at most ten; each group
// gets its own page (or pages, when the university rows overflow vertically).
// The trailing total column appears only on the final group.
type byUniversityView struct {
	payload   *modelReport.ReportPayload
	years     []int
	weekLimit int
	groups    [][]int
	idx       amountIndex
}

func newByUniversityView(payload *modelReport.ReportPayload, years []int, weekLimit int) *byUniversityView {
	return &byUniversityView{
		payload:   payload,
		years:     years,
		weekLimit: weekLimit,
		groups:    weekGroups(weekLimit, maxWeeksPerPage),
		idx:       buildAmountIndex(payload),
	}
}

// weekGroups partitions weeks 1..weekLimit into slices of at most size.
func weekGroups(weekLimit, size int) [][]int {
	var groups [][]int
	for start := 1; start <= weekLimit; start += size {
		end := start + size - 1
		if end > weekLimit {
			end = weekLimit
		}
		group := make([]int, 0, end-start+1)
		for w := start; w <= end; w++ {
			group = append(group, w)
		}
		groups = append(groups, group)
	}
	return groups
}

// simulatePages mirrors render's pagination: one page per week group plus any
// vertical overflow pages within a group.
func (v *byUniversityView) simulatePages() int {
	limit := a4LandscapeHeight - 100
	pages := 0
	for gi := range v.groups {
		pages++
		y := contPageTableTop + 2*headerRowH
		if gi == 0 {
			y = firstPageTableTop + 2*headerRowH
		}
		for range v.payload.Names() {
			if y > limit {
				pages++
				y = contPageTableTop + 2*headerRowH
			}
			y += uniRowH
		}
		if y > limit {
			pages++
		}
	}
	return pages
}

func (v *byUniversityView) render(d *doc) {
	page := 0
	for gi, group := range v.groups {
		last := gi == len(v.groups)-1
		weeksLine := v.weeksLine(group)

		page++
		var y float64
		if gi == 0 {
			y = d.addFirstPage(page, weeksLine)
		} else {
			y = d.addContinuationPage(page, weeksLine)
		}
		v.drawTableHeader(d, y, group, last)
		y += 2 * headerRowH

		for i, uni := range v.payload.Names() {
			if y > d.breakLimit() {
				page++
				y = d.addContinuationPage(page, weeksLine)
				v.drawTableHeader(d, y, group, last)
				y += 2 * headerRowH
			}
			v.drawUniversityRow(d, y, uni, i, group, last)
			y += uniRowH
		}

		if y > d.breakLimit() {
			page++
			y = d.addContinuationPage(page, weeksLine)
			v.drawTableHeader(d, y, group, last)
			y += 2 * headerRowH
		}
		v.drawTotalsRow(d, y, group, last)
	}
}

// weeksLine annotates multi-group documents with the range a page covers.
func (v *byUniversityView) weeksLine(group []int) string {
	if len(v.groups) < 2 {
		return ""
	}
	return fmt.Sprintf("Weeks %d - %d of %d", group[0], group[len(group)-1], v.weekLimit)
}

func (v *byUniversityView) dataColWidth(d *doc, group []int, last bool) float64 {
	avail := d.tableWidth() - firstColWidth
	if last {
		avail -= totalColWidth
	}
	cols := len(group) * len(v.years)
	if cols == 0 {
		return avail
	}
	return avail / float64(cols)
}

func (v *byUniversityView) drawTableHeader(d *doc, y float64, group []int, last bool) {
	colW := v.dataColWidth(d, group, last)
	spanW := colW * float64(len(v.years))

	d.setFill(headerFill)
	d.setDraw(borderGray)
	d.setText([3]int{0, 0, 0})
	d.pdf.SetFontSize(8)
	d.pdf.Rect(marginX, y, d.tableWidth(), 2*headerRowH, "FD")

	d.textIn(marginX, y+15, firstColWidth, headerRowH, "University")

	x := marginX + firstColWidth
	for _, week := range group {
		d.cell(x, y, spanW, headerRowH, fmt.Sprintf("W%d", week), false)
		x += spanW
	}
	if last {
		d.cell(x, y, totalColWidth, headerRowH, "TOTAL", false)
	}

	x = marginX + firstColWidth
	d.pdf.SetFontSize(7)
	for range group {
		for _, year := range v.years {
			d.cell(x, y+headerRowH, colW, headerRowH, strconv.Itoa(year), false)
			x += colW
		}
	}
	if last {
		d.cell(x, y+headerRowH, totalColWidth, headerRowH, "", false)
	}
	d.pdf.SetFontSize(10)
}

func (v *byUniversityView) drawUniversityRow(d *doc, y float64, uni string, rowIndex int, group []int, last bool) {
	colW := v.dataColWidth(d, group, last)
	fill := zebraFills[rowIndex%2]

	d.setDraw(borderGray)
	d.setText([3]int{0, 0, 0})

	d.setFill(fill)
	d.pdf.SetFontSize(8)
	d.cell(marginX, y, firstColWidth, uniRowH, "", true)
	if d.hasLogo(uni) {
		d.drawLogo(uni, marginX+2, y+2, firstColWidth-4, uniRowH-4)
	} else {
		d.textIn(marginX, y, firstColWidth, uniRowH, uni)
	}

	d.pdf.SetFontSize(7)
	x := marginX + firstColWidth
	for _, week := range group {
		for _, year := range v.years {
			value := v.idx.value(uni, year, week)
			d.cell(x, y, colW, uniRowH, strconv.Itoa(value), true)
			x += colW
		}
	}

	if last {
		uniTotal := 0
		for _, year := range v.years {
			uniTotal += v.idx.columnTotal(uni, year, v.weekLimit)
		}
		d.setFill(totalsFill)
		d.pdf.SetFontSize(8)
		d.cell(x, y, totalColWidth, uniRowH, strconv.Itoa(uniTotal), true)
	}
	d.pdf.SetFontSize(10)
}

// drawTotalsRow sums every university per (week, year) column; the grand
// total closes the final group's page.
func (v *byUniversityView) drawTotalsRow(d *doc, y float64, group []int, last bool) {
	colW := v.dataColWidth(d, group, last)

	d.setFill(totalsFill)
	d.setDraw([3]int{0, 0, 0})
	d.pdf.Rect(marginX, y, d.tableWidth(), uniTotalsRowH, "FD")

	d.setText([3]int{0, 0, 0})
	d.pdf.SetFontSize(9)
	d.textIn(marginX, y, firstColWidth, uniTotalsRowH, "Totals")

	d.pdf.SetFontSize(8)
	x := marginX + firstColWidth
	for _, week := range group {
		for _, year := range v.years {
			columnTotal := 0
			for _, uni := range v.payload.Names() {
				columnTotal += v.idx.value(uni, year, week)
			}
			d.pdf.SetXY(x, y)
			d.pdf.CellFormat(colW, uniTotalsRowH, strconv.Itoa(columnTotal), "1", 0, "C", false, 0, "")
			x += colW
		}
	}

	if last {
		grandTotal := 0
		for _, uni := range v.payload.Names() {
			for _, year := range v.years {
				grandTotal += v.idx.columnTotal(uni, year, v.weekLimit)
			}
		}
		d.pdf.SetFontSize(9)
		d.pdf.SetXY(x, y)
		d.pdf.CellFormat(totalColWidth, uniTotalsRowH, strconv.Itoa(grandTotal), "1", 0, "C", false, 0, "")
	}
	d.pdf.SetFontSize(10)
}
