package chart

import (
	"fmt"
	"io"
	"sort"

	"github.com/fogleman/gg"
	"golang.org/x/sync/errgroup"

	"github.com/debresearch/licensetrend/internal/model"
)

// Default image geometry. Wide and short enough that fifteen license
// labels stay readable without rotating the whole chart.
const (
	defaultWidth  = 1600
	defaultHeight = 880

	marginLeft   = 70
	marginRight  = 30
	marginTop    = 50
	marginBottom = 110
)

// channelColors is the fixed bar palette, indexed by the channel's
// position in the summary (oldest first).
var channelColors = [][3]float64{
	{0.33, 0.46, 0.68},
	{0.87, 0.56, 0.27},
	{0.41, 0.67, 0.38},
	{0.75, 0.31, 0.30},
}

// Renderer draws the survey charts: per-channel license counts and the
// relative change between the oldest and newest channel.
type Renderer struct {
	// width and height are the image dimensions in pixels.
	width  int
	height int

	// maxLicenses caps how many licenses are plotted.
	maxLicenses int
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithSize sets the image dimensions in pixels.
func WithSize(width, height int) Option {
	return func(r *Renderer) {
		r.width = width
		r.height = height
	}
}

// WithMaxLicenses caps how many licenses are plotted.
func WithMaxLicenses(n int) Option {
	return func(r *Renderer) {
		r.maxLicenses = n
	}
}

// NewRenderer creates a Renderer.
func NewRenderer(opts ...Option) *Renderer {
	r := &Renderer{
		width:       defaultWidth,
		height:      defaultHeight,
		maxLicenses: 15,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RenderBoth writes the counts chart and the delta chart to the given
// paths. The two renderings are independent, so they run concurrently.
func (r *Renderer) RenderBoth(summary *model.Summary, allPath, deltaPath string) error {
	var g errgroup.Group
	g.Go(func() error {
		return r.RenderAll(summary, allPath)
	})
	g.Go(func() error {
		return r.RenderDelta(summary, deltaPath)
	})
	return g.Wait()
}

// RenderAll writes the grouped per-channel counts chart as a PNG.
func (r *Renderer) RenderAll(summary *model.Summary, path string) error {
	return r.drawAll(summary).SavePNG(path)
}

// EncodeAll writes the counts chart PNG to w.
func (r *Renderer) EncodeAll(summary *model.Summary, w io.Writer) error {
	return r.drawAll(summary).EncodePNG(w)
}

// RenderDelta writes the relative-change chart as a PNG.
func (r *Renderer) RenderDelta(summary *model.Summary, path string) error {
	return r.drawDelta(summary).SavePNG(path)
}

// EncodeDelta writes the relative-change chart PNG to w.
func (r *Renderer) EncodeDelta(summary *model.Summary, w io.Writer) error {
	return r.drawDelta(summary).EncodePNG(w)
}

// drawAll renders one bar per (license, channel) pair, grouped by
// license and ordered by the summary's ranking.
func (r *Renderer) drawAll(summary *model.Summary) *gg.Context {
	dc := r.newCanvas("License counts per release channel")

	licenses := summary.TopLicenses(r.maxLicenses)
	if len(licenses) == 0 {
		return dc
	}

	maxCount := 1
	for _, lic := range licenses {
		for _, ch := range summary.Channels {
			if n := summary.Counter(ch).Count(lic); n > maxCount {
				maxCount = n
			}
		}
	}

	plotW := float64(r.width - marginLeft - marginRight)
	plotH := float64(r.height - marginTop - marginBottom)
	baseline := float64(r.height - marginBottom)

	r.drawYAxis(dc, baseline, plotH, maxCount)

	groupW := plotW / float64(len(licenses))
	barW := groupW / float64(len(summary.Channels)+1)

	for i, lic := range licenses {
		groupX := float64(marginLeft) + float64(i)*groupW
		for j, ch := range summary.Channels {
			count := summary.Counter(ch).Count(lic)
			barH := plotH * float64(count) / float64(maxCount)
			color := channelColors[j%len(channelColors)]
			dc.SetRGB(color[0], color[1], color[2])
			dc.DrawRectangle(groupX+float64(j)*barW+barW/2, baseline-barH, barW, barH)
			dc.Fill()
		}
		r.drawTickLabel(dc, lic.String(), groupX+groupW/2, baseline+10)
	}

	r.drawLegend(dc, summary.Channels)
	return dc
}

// drawDelta renders one bar per license showing the relative change in
// count between the oldest and newest channel, around a zero baseline.
// Bars run left to right from the largest gain to the largest loss.
func (r *Renderer) drawDelta(summary *model.Summary) *gg.Context {
	dc := r.newCanvas("Relative change, oldest to newest channel")

	licenses := deltaOrder(summary, r.maxLicenses)
	if len(licenses) == 0 {
		return dc
	}

	maxAbs := 0.1
	for _, lic := range licenses {
		if d := summary.Delta(lic); d > maxAbs {
			maxAbs = d
		} else if -d > maxAbs {
			maxAbs = -d
		}
	}

	plotW := float64(r.width - marginLeft - marginRight)
	plotH := float64(r.height - marginTop - marginBottom)
	zero := float64(marginTop) + plotH/2

	// zero baseline
	dc.SetRGB(0.3, 0.3, 0.3)
	dc.SetLineWidth(1)
	dc.DrawLine(float64(marginLeft), zero, float64(r.width-marginRight), zero)
	dc.Stroke()
	dc.DrawStringAnchored("0%", float64(marginLeft)-8, zero, 1, 0.5)
	dc.DrawStringAnchored(fmt.Sprintf("%+.0f%%", maxAbs*100), float64(marginLeft)-8, float64(marginTop), 1, 0.5)
	dc.DrawStringAnchored(fmt.Sprintf("%+.0f%%", -maxAbs*100), float64(marginLeft)-8, zero+plotH/2, 1, 0.5)

	groupW := plotW / float64(len(licenses))
	barW := groupW * 0.6

	for i, lic := range licenses {
		delta := summary.Delta(lic)
		barH := (plotH / 2) * delta / maxAbs
		x := float64(marginLeft) + float64(i)*groupW + (groupW-barW)/2

		if delta >= 0 {
			dc.SetRGB(0.41, 0.67, 0.38)
			dc.DrawRectangle(x, zero-barH, barW, barH)
		} else {
			dc.SetRGB(0.75, 0.31, 0.30)
			dc.DrawRectangle(x, zero, barW, -barH)
		}
		dc.Fill()

		r.drawTickLabel(dc, lic.String(), x+barW/2, float64(r.height-marginBottom)+10)
	}

	return dc
}

// deltaOrder returns the plotted licenses for the delta chart: the same
// top licenses as the counts chart, reordered by descending relative
// change. Ties keep the count ranking.
func deltaOrder(summary *model.Summary, maxLicenses int) []model.License {
	licenses := summary.TopLicenses(maxLicenses)
	sort.SliceStable(licenses, func(i, j int) bool {
		return summary.Delta(licenses[i]) > summary.Delta(licenses[j])
	})
	return licenses
}

// newCanvas creates a white canvas with the chart title.
func (r *Renderer) newCanvas(title string) *gg.Context {
	dc := gg.NewContext(r.width, r.height)
	dc.SetRGB(1, 1, 1)
	dc.Clear()
	dc.SetRGB(0.1, 0.1, 0.1)
	dc.DrawStringAnchored(title, float64(r.width)/2, float64(marginTop)/2, 0.5, 0.5)
	return dc
}

// drawYAxis draws the left axis with five tick labels.
func (r *Renderer) drawYAxis(dc *gg.Context, baseline, plotH float64, maxCount int) {
	dc.SetRGB(0.3, 0.3, 0.3)
	dc.SetLineWidth(1)
	dc.DrawLine(float64(marginLeft), baseline-plotH, float64(marginLeft), baseline)
	dc.DrawLine(float64(marginLeft), baseline, float64(r.width-marginRight), baseline)
	dc.Stroke()

	const ticks = 5
	for i := 0; i <= ticks; i++ {
		value := maxCount * i / ticks
		y := baseline - plotH*float64(i)/float64(ticks)
		dc.DrawStringAnchored(fmt.Sprintf("%d", value), float64(marginLeft)-8, y, 1, 0.5)
	}
}

// drawTickLabel draws a rotated license label under the axis.
func (r *Renderer) drawTickLabel(dc *gg.Context, label string, x, y float64) {
	dc.SetRGB(0.1, 0.1, 0.1)
	dc.Push()
	dc.RotateAbout(-0.7, x, y)
	dc.DrawStringAnchored(label, x, y, 1, 0.5)
	dc.Pop()
}

// drawLegend draws one colored swatch per channel in the top-right
// corner.
func (r *Renderer) drawLegend(dc *gg.Context, channels []model.Channel) {
	const swatch = 14
	x := float64(r.width - marginRight - 170)
	y := float64(marginTop) + 8
	for i, ch := range channels {
		color := channelColors[i%len(channelColors)]
		dc.SetRGB(color[0], color[1], color[2])
		dc.DrawRectangle(x, y+float64(i)*(swatch+8), swatch, swatch)
		dc.Fill()
		dc.SetRGB(0.1, 0.1, 0.1)
		dc.DrawStringAnchored(ch.String(), x+swatch+6, y+float64(i)*(swatch+8)+swatch/2, 0, 0.5)
	}
}
