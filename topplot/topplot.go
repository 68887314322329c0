/*
 * topplot.go, part of nbtop.
 *
 * Copyright 2025 Raul Mera A. (rmeraaatacademicosdotutadotcl)
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

// Package topplot draws the exclusions of an nbtop Topology.
package topplot

import (
	"fmt"
	"image/color"
	"math"

	"github.com/rmera/nbtop"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// ExclusionPlot returns a plot with a point at (i, j) for every pair of different
// particles i, j excluded from each other. Points are coloured by molecule name.
func ExclusionPlot(t *nbtop.Topology, title string) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Padding = 3 * vg.Millimeter
	p.Title.Text = title
	p.X.Label.Text = "Particle"
	p.Y.Label.Text = "Particle"
	p.X.Min = -0.5
	p.Y.Min = -0.5
	p.X.Max = math.Max(float64(t.NumParticles())-0.5, 0.5)
	p.Y.Max = p.X.Max
	p.Add(plotter.NewGrid())
	names, pts, err := points(t)
	if err != nil {
		return nil, err
	}
	for key, name := range names {
		if len(pts[key]) == 0 {
			continue
		}
		s, err := plotter.NewScatter(pts[key])
		if err != nil {
			return nil, err
		}
		r, g, b := colors(key, len(names))
		s.GlyphStyle.Color = color.RGBA{R: r, G: g, B: b, A: 255}
		s.GlyphStyle.Shape = draw.BoxGlyph{}
		s.GlyphStyle.Radius = vg.Points(1.5)
		p.Add(s)
		p.Legend.Add(name, s)
	}
	return p, nil
}

// ExclusionMap saves the plot from ExclusionPlot to filename. The format is given
// by the extension of the file name (png, svg, pdf, ...).
func ExclusionMap(t *nbtop.Topology, title, filename string) error {
	p, err := ExclusionPlot(t, title)
	if err != nil {
		return err
	}
	if err := p.Save(5*vg.Inch, 5*vg.Inch, filename); err != nil {
		return fmt.Errorf("ExclusionMap: %w", err)
	}
	return nil
}

// points returns the molecule names, in order of first appearance, and the
// excluded pairs for the particles of each of them.
func points(t *nbtop.Topology) ([]string, []plotter.XYs, error) {
	names := make([]string, 0, 2)
	keys := make(map[string]int)
	pts := make([]plotter.XYs, 0, 2)
	ex := t.Exclusions()
	for i := 0; i < ex.Len(); i++ {
		id, err := t.Identify(i)
		if err != nil {
			return nil, nil, err
		}
		key, ok := keys[id.Molecule]
		if !ok {
			key = len(names)
			keys[id.Molecule] = key
			names = append(names, id.Molecule)
			pts = append(pts, nil)
		}
		for _, j := range ex.At(i) {
			if j != i {
				pts[key] = append(pts[key], plotter.XY{X: float64(i), Y: float64(j)})
			}
		}
	}
	return names, pts, nil
}

// takes hue (0-360), v and s (0-1), returns r,g,b (0-255)
func iHVS2RGB(h, v, s float64) (uint8, uint8, uint8) {
	var i, f, p, q, t float64
	var r, g, b float64
	maxcolor := 255.0
	conversion := maxcolor * v
	if s == 0.0 {
		return uint8(conversion), uint8(conversion), uint8(conversion)
	}
	h = h / 60
	i = math.Floor(h)
	f = h - i
	p = v * (1 - s)
	q = v * (1 - s*f)
	t = v * (1 - s*(1-f))
	switch int(i) {
	case 0:
		r, g, b = v, t, p
	case 1:
		r, g, b = q, v, p
	case 2:
		r, g, b = p, v, t
	case 3:
		r, g, b = p, q, v
	case 4:
		r, g, b = t, p, v
	default: //case 5
		r, g, b = v, p, q
	}
	return uint8(r * conversion), uint8(g * conversion), uint8(b * conversion)
}

// colors returns a color for the key-th of steps series, going
// around the hue circle and skipping the yellows.
func colors(key, steps int) (r, g, b uint8) {
	norm := 260.0 / float64(steps)
	hp := float64(key)*norm + 20.0
	var h float64
	if hp < 55 {
		h = hp - 20.0
	} else {
		h = hp + 20.0
	}
	return iHVS2RGB(h, 1.0, 1.0)
}
