package views

import (
	"strconv"
	"strings"

	"github.com/MakanaMakesStuff/TripleParlay/internal/scoring"
)

const (
	chartWidth   = 480
	chartHeight  = 180
	chartPadding = 24
)

const (
	hitColor       = "#1f77b4"
	baseColor      = "#ff7f0e"
	strikeoutColor = "#d62728"
)

// Series is one line of a chart
type Series struct {
	Name   string
	Color  string
	Values []int
}

// Chart is a line chart keyed by game
type Chart struct {
	Labels []string
	Series []Series
}

// Tick is an x axis label at its plotted position
type Tick struct {
	X     string
	Label string
}

// max is the largest plotted value, at least 1
func (c Chart) max() int {
	m := 1
	for _, s := range c.Series {
		for i, v := range s.Values {
			if i >= len(c.Labels) {
				break
			}
			if v > m {
				m = v
			}
		}
	}
	return m
}

// point maps index i and value v into the plotting area
func (c Chart) point(i, v, maxValue int) (float64, float64) {
	n := len(c.Labels)
	x := float64(chartPadding)
	if n > 1 {
		x += float64(i) * float64(chartWidth-2*chartPadding) / float64(n-1)
	}
	y := float64(chartHeight-chartPadding) - float64(v)*float64(chartHeight-2*chartPadding)/float64(maxValue)
	return x, y
}

// Points is the polyline points attribute of s. Values past the last
// label are dropped.
func (c Chart) Points(s Series) string {
	maxValue := c.max()
	var b strings.Builder
	for i, v := range s.Values {
		if i >= len(c.Labels) {
			break
		}
		x, y := c.point(i, v, maxValue)
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(strconv.FormatFloat(x, 'f', 1, 64))
		b.WriteByte(',')
		b.WriteString(strconv.FormatFloat(y, 'f', 1, 64))
	}
	return b.String()
}

// Ticks places every label along the x axis
func (c Chart) Ticks() []Tick {
	maxValue := c.max()
	ticks := make([]Tick, len(c.Labels))
	for i, label := range c.Labels {
		x, _ := c.point(i, 0, maxValue)
		ticks[i] = Tick{X: strconv.FormatFloat(x, 'f', 1, 64), Label: label}
	}
	return ticks
}

func recordChart(records []scoring.GameRecord) Chart {
	labels := make([]string, len(records))
	for i, r := range records {
		labels[i] = r.Date.Format("01/02")
	}
	return Chart{
		Labels: labels,
		Series: []Series{
			{Name: "Hits", Color: hitColor, Values: scoring.HitsSeries(records)},
			{Name: "Bases", Color: baseColor, Values: scoring.BasesSeries(records)},
		},
	}
}

func trendChart(p scoring.PlayerTrend) Chart {
	labels := make([]string, len(p.Dates))
	for i, d := range p.Dates {
		if d == "" {
			labels[i] = strconv.Itoa(i + 1)
			continue
		}
		labels[i] = d
	}
	return Chart{
		Labels: labels,
		Series: []Series{
			{Name: "Hits", Color: hitColor, Values: p.LastLongHits},
			{Name: "Strikeouts", Color: strikeoutColor, Values: p.LastLongStrikeouts},
		},
	}
}
