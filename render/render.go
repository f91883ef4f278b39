// Package render draws planned profiles as PNG charts.
package render

import (
	"bufio"
	"fmt"
	"image/color"
	"io"
	"math"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"pfeifer.dev/scurve/profile"
)

type Options struct {
	Width  vg.Length
	Height vg.Length
	DPI    int
	// Rate is the sample rate in Hz used for the position, velocity and
	// acceleration curves.
	Rate float64
}

func DefaultOptions() Options {
	return Options{
		Width:  16 * vg.Centimeter,
		Height: 20 * vg.Centimeter,
		DPI:    150,
		Rate:   200,
	}
}

var (
	curveColor = color.RGBA{R: 31, G: 119, B: 180, A: 255}
	limitColor = color.RGBA{R: 214, G: 39, B: 40, A: 255}
)

func limitedTicker(maxLabels int, labelFmt string) plot.Ticker {
	if maxLabels < 2 {
		maxLabels = 2
	}
	return plot.TickerFunc(func(min, max float64) []plot.Tick {
		if math.IsNaN(min) || math.IsNaN(max) || math.IsInf(min, 0) || math.IsInf(max, 0) {
			return nil
		}
		if min == max {
			return []plot.Tick{{Value: min, Label: fmt.Sprintf(labelFmt, min)}}
		}
		step := (max - min) / float64(maxLabels-1)
		ticks := make([]plot.Tick, 0, maxLabels)
		for i := range maxLabels {
			v := min + float64(i)*step
			ticks = append(ticks, plot.Tick{Value: v, Label: fmt.Sprintf(labelFmt, v)})
		}
		return ticks
	})
}

func stylePlot(p *plot.Plot) {
	p.Title.TextStyle.Font.Size = vg.Points(12)
	p.Title.Padding = vg.Points(6)

	p.X.Label.TextStyle.Font.Size = vg.Points(10)
	p.Y.Label.TextStyle.Font.Size = vg.Points(10)
	p.X.Padding = vg.Points(4)
	p.Y.Padding = vg.Points(4)

	p.X.Tick.Label.Font.Size = vg.Points(8)
	p.Y.Tick.Label.Font.Size = vg.Points(8)

	p.X.Tick.Marker = limitedTicker(6, "%.2f")
	p.Y.Tick.Marker = limitedTicker(5, "%.3g")
	p.Add(plotter.NewGrid())
}

func newPlot(title, ylabel string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "time (s)"
	p.Y.Label.Text = ylabel
	stylePlot(p)
	return p
}

func addLine(p *plot.Plot, pts plotter.XYs) (*plotter.Line, error) {
	line, err := plotter.NewLine(pts)
	if err != nil {
		return nil, errors.Wrapf(err, "could not build %s curve", p.Title.Text)
	}
	line.Color = curveColor
	line.Width = vg.Points(1.5)
	p.Add(line)
	return line, nil
}

// addLimits draws dashed lines at +-limit across the profile duration.
func addLimits(p *plot.Plot, limit, duration float64) {
	for _, sign := range []float64{1, -1} {
		f := plotter.NewFunction(func(float64) float64 { return sign * limit })
		f.XMin = 0
		f.XMax = duration
		f.Samples = 2
		f.Color = limitColor
		f.Width = vg.Points(0.75)
		f.Dashes = []vg.Length{vg.Points(4), vg.Points(3)}
		p.Add(f)
	}
}

// ProfilePlots builds position, velocity, acceleration and jerk plots for p,
// top to bottom. The jerk plot is drawn as steps at the phase boundaries.
func ProfilePlots(p profile.Profile, rate float64) ([]*plot.Plot, error) {
	states, err := p.Samples(rate)
	if err != nil {
		return nil, err
	}
	limits := p.Limits()

	position := make(plotter.XYs, len(states))
	velocity := make(plotter.XYs, len(states))
	acceleration := make(plotter.XYs, len(states))
	for i, s := range states {
		position[i] = plotter.XY{X: s.Time, Y: s.Position}
		velocity[i] = plotter.XY{X: s.Time, Y: s.Velocity}
		acceleration[i] = plotter.XY{X: s.Time, Y: s.Acceleration}
	}

	jerk := plotter.XYs{}
	t := 0.0
	for _, ph := range p.Phases() {
		if ph.Duration <= 0 {
			continue
		}
		jerk = append(jerk, plotter.XY{X: t, Y: ph.Jerk})
		t += ph.Duration
	}
	jerk = append(jerk, plotter.XY{X: p.Duration(), Y: 0})

	plots := []*plot.Plot{
		newPlot("Position", "position"),
		newPlot("Velocity", "velocity"),
		newPlot("Acceleration", "acceleration"),
		newPlot("Jerk", "jerk"),
	}
	for i, pts := range []plotter.XYs{position, velocity, acceleration} {
		if _, err := addLine(plots[i], pts); err != nil {
			return nil, err
		}
	}
	jerkLine, err := addLine(plots[3], jerk)
	if err != nil {
		return nil, err
	}
	jerkLine.StepStyle = plotter.PostStep

	addLimits(plots[1], limits.MaxVelocity, p.Duration())
	addLimits(plots[2], limits.MaxAcceleration, p.Duration())
	addLimits(plots[3], limits.MaxJerk, p.Duration())
	return plots, nil
}

// WriteProfilePNG draws the stacked profile plots to w as a PNG.
func WriteProfilePNG(w io.Writer, p profile.Profile, opts Options) error {
	plots, err := ProfilePlots(p, opts.Rate)
	if err != nil {
		return err
	}

	c := vgimg.NewWith(
		vgimg.UseWH(opts.Width, opts.Height),
		vgimg.UseDPI(opts.DPI),
	)
	dc := draw.New(c)
	tiles := draw.Tiles{
		Rows:      len(plots),
		Cols:      1,
		PadX:      vg.Millimeter,
		PadY:      vg.Millimeter * 2,
		PadTop:    vg.Millimeter * 2,
		PadBottom: vg.Millimeter * 2,
		PadLeft:   vg.Millimeter * 2,
		PadRight:  vg.Millimeter * 2,
	}
	grid := make([][]*plot.Plot, len(plots))
	for i, pl := range plots {
		grid[i] = []*plot.Plot{pl}
	}
	canvases := plot.Align(grid, tiles, dc)
	for i, pl := range plots {
		pl.Draw(canvases[i][0])
	}

	pngc := vgimg.PngCanvas{Canvas: c}
	if _, err := pngc.WriteTo(w); err != nil {
		return errors.Wrap(err, "cannot write png")
	}
	return nil
}

// SaveProfilePNG writes the profile chart to path, creating parent
// directories as needed.
func SaveProfilePNG(p profile.Profile, path string, opts Options) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(err, "cannot create directory")
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "cannot create png")
	}
	defer f.Close()

	bw := bufio.NewWriter(f)
	if err := WriteProfilePNG(bw, p, opts); err != nil {
		return err
	}
	if err := bw.Flush(); err != nil {
		return errors.Wrap(err, "cannot write png")
	}
	return f.Close()
}
