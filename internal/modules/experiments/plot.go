package experiments

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// DefaultPlotFilename is the batch driver's output artifact.
const DefaultPlotFilename = "rq1_entanglement_plot.png"

// WritePlot renders the sweep as a PNG: dashed red classical baseline,
// solid blue quantum curve, γ on the x axis, Alice's payoff on the y axis.
func WritePlot(sweep *SweepResult, path string) error {
	if len(sweep.Points) == 0 {
		return fmt.Errorf("cannot plot an empty sweep")
	}

	p := plot.New()
	p.Title.Text = "Transition from Classical to Quantum"
	p.X.Label.Text = "Entanglement parameter γ"
	p.Y.Label.Text = "Alice's expected payoff"
	p.Add(plotter.NewGrid())

	classical := make(plotter.XYs, len(sweep.Points))
	quantum := make(plotter.XYs, len(sweep.Points))
	for i, pt := range sweep.Points {
		classical[i].X = pt.Gamma
		classical[i].Y = pt.Classical
		quantum[i].X = pt.Gamma
		quantum[i].Y = pt.Quantum
	}

	classicalLine, err := plotter.NewLine(classical)
	if err != nil {
		return fmt.Errorf("classical line: %w", err)
	}
	classicalLine.LineStyle.Color = color.RGBA{R: 0xcc, A: 0xff}
	classicalLine.LineStyle.Dashes = []vg.Length{vg.Points(5), vg.Points(3)}

	quantumLine, err := plotter.NewLine(quantum)
	if err != nil {
		return fmt.Errorf("quantum line: %w", err)
	}
	quantumLine.LineStyle.Color = color.RGBA{B: 0xcc, A: 0xff}
	quantumLine.LineStyle.Width = vg.Points(2)

	p.Add(classicalLine, quantumLine)
	p.Legend.Add("D vs D (classical)", classicalLine)
	p.Legend.Add("Q vs D (quantum)", quantumLine)
	p.Legend.Top = true

	if err := p.Save(8*vg.Inch, 5*vg.Inch, path); err != nil {
		return fmt.Errorf("failed to save plot to %s: %w", path, err)
	}
	return nil
}
