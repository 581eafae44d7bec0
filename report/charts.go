package report

import (
	"quote-insights/models"
)

// Chart geometry, in SVG user units.
const (
	chartLabelWidth = 170
	chartBarWidth   = 440
	chartValueWidth = 110
	chartRowHeight  = 22
	chartBarHeight  = 16
	chartPadding    = 8
)

type series struct {
	Name  string
	Class string
}

var (
	outcomeSeries = []series{{"Success", "pass"}, {"Failed", "fail"}}
	countSeries   = []series{{"Quotes", "neutral"}}
	trendSeries   = []series{{"Without failure", "pass"}, {"With failure", "fail"}}
)

// chart is a horizontal stacked bar chart laid out for the SVG template.
type chart struct {
	Title  string
	Width  int
	Height int
	Legend []series
	Rows   []chartRow
}

type chartRow struct {
	Label    string
	Y        int
	TextY    int
	ValueX   int
	Value    string
	Segments []segment
}

type segment struct {
	X     int
	Width int
	Class string
	Tip   string
}

func (c chart) Empty() bool { return len(c.Rows) == 0 }

// newChart lays out one row per label; values[i][j] is the size of series j
// in row i. Bars are scaled to the largest row total.
func newChart(title string, legend []series, labels []string, values [][]int, valueText []string) chart {
	c := chart{
		Title:  title,
		Width:  chartLabelWidth + chartBarWidth + chartValueWidth,
		Height: 2*chartPadding + len(labels)*chartRowHeight,
		Legend: legend,
	}

	peak := 0
	for _, row := range values {
		if t := sum(row); t > peak {
			peak = t
		}
	}

	for i, label := range labels {
		y := chartPadding + i*chartRowHeight
		row := chartRow{
			Label: label,
			Y:     y,
			TextY: y + chartBarHeight - 4,
			Value: valueText[i],
		}
		x := chartLabelWidth
		for j, v := range values[i] {
			w := 0
			if peak > 0 {
				w = v * chartBarWidth / peak
			}
			if w == 0 {
				continue
			}
			row.Segments = append(row.Segments, segment{
				X:     x,
				Width: w,
				Class: legend[j].Class,
				Tip:   legend[j].Name + ": " + formatInt(v),
			})
			x += w
		}
		row.ValueX = x + 6
		c.Rows = append(c.Rows, row)
	}
	return c
}

func sum(xs []int) int {
	t := 0
	for _, x := range xs {
		t += x
	}
	return t
}

func outcomeChart(title string, items []models.OutcomeBreakdown) chart {
	labels := make([]string, len(items))
	values := make([][]int, len(items))
	text := make([]string, len(items))
	for i, it := range items {
		labels[i] = it.Label
		values[i] = []int{it.Success, it.Failure}
		text[i] = formatInt(it.Success) + " / " + formatInt(it.Failure)
	}
	return newChart(title, outcomeSeries, labels, values, text)
}

func rangeChart(title string, items []models.RangeStat) chart {
	labels := make([]string, len(items))
	values := make([][]int, len(items))
	text := make([]string, len(items))
	for i, it := range items {
		labels[i] = it.Label
		values[i] = []int{it.Success, it.Failure}
		text[i] = formatPercent(it.SuccessRatio)
	}
	return newChart(title, outcomeSeries, labels, values, text)
}

func countChart(title string, items []models.LabelCount) chart {
	labels := make([]string, len(items))
	values := make([][]int, len(items))
	text := make([]string, len(items))
	for i, it := range items {
		labels[i] = it.Label
		values[i] = []int{it.Count}
		text[i] = formatInt(it.Count)
	}
	return newChart(title, countSeries, labels, values, text)
}

func trendChart(title string, points []models.TrendPoint) chart {
	labels := make([]string, len(points))
	values := make([][]int, len(points))
	text := make([]string, len(points))
	for i, p := range points {
		ok := p.Requests - p.Failed
		if ok < 0 {
			ok = 0
		}
		labels[i] = p.Label
		values[i] = []int{ok, p.Failed}
		text[i] = formatInt(p.Requests) + " (" + formatInt(p.Failed) + " failed)"
	}
	return newChart(title, trendSeries, labels, values, text)
}
