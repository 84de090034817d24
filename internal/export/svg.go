// Package export writes static snapshots of the current selection.
package export

import (
	"fmt"
	"image/color"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/ajstarks/svgo"

	"cocoverse/internal/dataset"
	"cocoverse/internal/domain"
	"cocoverse/internal/selection"
)

const (
	plotMargin = 40
	headerH    = 70
)

var (
	colorBackdrop = color.RGBA{R: 0x16, G: 0x18, B: 0x1d, A: 0xff}
	colorPlot     = color.RGBA{R: 0x21, G: 0x25, B: 0x2b, A: 0xff}
	colorRegion   = color.RGBA{R: 0x1f, G: 0x4e, B: 0x79, A: 0xff}
	colorEdge     = color.RGBA{R: 0x5c, G: 0x63, B: 0x70, A: 0xff}
	colorText     = color.RGBA{R: 0xe6, G: 0xe6, B: 0xe6, A: 0xff}
	colorSubtle   = color.RGBA{R: 0x9d, G: 0xa5, B: 0xb4, A: 0xff}
)

var highlightColors = map[domain.Highlight]color.RGBA{
	domain.HighlightNormal:   {R: 0x61, G: 0xaf, B: 0xef, A: 0xff},
	domain.HighlightLocked:   {R: 0xff, G: 0xd7, B: 0x00, A: 0xff},
	domain.HighlightNeighbor: {R: 0x56, G: 0xd3, B: 0xc2, A: 0xff},
	domain.HighlightDimmed:   {R: 0x4b, G: 0x52, B: 0x63, A: 0xff},
}

// Snapshot is a chart adapter that renders the latest derived view as an SVG scatter plot
type Snapshot struct {
	store  dataset.EntityStore
	state  interface{ State() selection.State }
	width  int
	height int
	title  string

	view selection.DerivedView
}

// NewSnapshot creates a snapshot adapter with a width×height canvas
func NewSnapshot(store dataset.EntityStore, state interface{ State() selection.State }, width, height int, title string) *Snapshot {
	return &Snapshot{store: store, state: state, width: width, height: height, title: title}
}

// Update stores view for the next WriteTo
func (s *Snapshot) Update(view selection.DerivedView) {
	s.view = view
}

type countingWriter struct {
	w   io.Writer
	n   int64
	err error
}

func (c *countingWriter) Write(p []byte) (int, error) {
	if c.err != nil {
		return 0, c.err
	}
	n, err := c.w.Write(p)
	c.n += int64(n)
	c.err = err
	return n, err
}

// WriteTo renders the stored view as an SVG document
func (s *Snapshot) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	canvas := svg.New(cw)

	canvas.Start(s.width, s.height)
	canvas.Title(s.title)
	canvas.Rect(0, 0, s.width, s.height, fmt.Sprintf("fill:%s", css(colorBackdrop)))
	s.drawHeader(canvas)

	px, py, pw, ph := s.plotArea()
	canvas.Rect(px, py, pw, ph, fmt.Sprintf("fill:%s", css(colorPlot)))

	if r := s.state.State().Region; r != nil {
		x0, y0 := s.project(r.X0, r.Y0)
		x1, y1 := s.project(r.X1, r.Y1)
		canvas.Rect(x0, y0, x1-x0, y1-y0, fmt.Sprintf("fill:%s;fill-opacity:0.35", css(colorRegion)))
	}

	// Dimmed entities go underneath everything visible
	for _, e := range s.store.Entities() {
		if s.view.HighlightOf(e.ID) == domain.HighlightDimmed {
			s.drawEntity(canvas, e, domain.HighlightDimmed)
		}
	}

	positions := make(map[string]domain.Entity, len(s.view.Entities))
	for _, e := range s.view.Entities {
		positions[e.ID] = e
	}
	maxWeight := 0.0
	for _, r := range s.view.Relations {
		maxWeight = math.Max(maxWeight, r.Weight)
	}
	for _, r := range s.view.Relations {
		if r.A == r.B {
			continue
		}
		a, b := positions[r.A], positions[r.B]
		x1, y1 := s.project(a.X, a.Y)
		x2, y2 := s.project(b.X, b.Y)
		width := 1.0
		if maxWeight > 0 {
			width += 3 * r.Weight / maxWeight
		}
		canvas.Line(x1, y1, x2, y2, fmt.Sprintf("stroke:%s;stroke-width:%.1f;stroke-opacity:0.6", css(colorEdge), width))
	}

	for _, e := range s.view.Entities {
		s.drawEntity(canvas, e, s.view.HighlightOf(e.ID))
	}

	canvas.End()
	return cw.n, cw.err
}

func (s *Snapshot) drawHeader(canvas *svg.SVG) {
	stats := s.view.Stats()
	canvas.Text(plotMargin, 32, s.title, fmt.Sprintf("fill:%s;font-size:16px;font-family:monospace;font-weight:bold", css(colorText)))

	line := fmt.Sprintf("entities: %d  relations: %d  weight >= %g", stats.Entities, stats.Relations, stats.Threshold)
	if filters := describe(s.state.State()); filters != "" {
		line += "  " + filters
	}
	canvas.Text(plotMargin, 54, line, fmt.Sprintf("fill:%s;font-size:12px;font-family:monospace", css(colorSubtle)))
}

func (s *Snapshot) drawEntity(canvas *svg.SVG, e domain.Entity, h domain.Highlight) {
	x, y := s.project(e.X, e.Y)
	radius := 3 + int(math.Round(8*math.Sqrt(math.Max(e.Scale, 0))))
	if h == domain.HighlightLocked {
		radius += 3
	}
	c := highlightColors[h]
	canvas.Circle(x, y, radius, fmt.Sprintf("fill:%s;fill-opacity:0.85", css(c)))

	if h == domain.HighlightLocked || h == domain.HighlightNeighbor {
		canvas.Text(x+radius+3, y+4, e.Name, fmt.Sprintf("fill:%s;font-size:11px;font-family:monospace", css(colorText)))
	}
}

func (s *Snapshot) plotArea() (x, y, w, h int) {
	return plotMargin, headerH, s.width - 2*plotMargin, s.height - headerH - plotMargin
}

// project maps a unit-square position onto the plot area, y growing downwards
func (s *Snapshot) project(ux, uy float64) (int, int) {
	px, py, pw, ph := s.plotArea()
	ux = math.Min(1, math.Max(0, ux))
	uy = math.Min(1, math.Max(0, uy))
	return px + int(math.Round(ux*float64(pw))), py + int(math.Round(uy*float64(ph)))
}

// SaveFile writes the snapshot to path, creating parent directories
func (s *Snapshot) SaveFile(path string) error {
	if ext := strings.ToLower(filepath.Ext(path)); ext != ".svg" {
		return fmt.Errorf("unsupported snapshot format %q (want .svg)", ext)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	if _, err := s.WriteTo(file); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	return file.Close()
}

func describe(st selection.State) string {
	var parts []string
	if st.Category != "" {
		parts = append(parts, "category="+st.Category)
	}
	if st.Scale != nil {
		parts = append(parts, fmt.Sprintf("scale=[%.3f,%.3f]", st.Scale.Min, st.Scale.Max))
	}
	if st.Locked != "" {
		parts = append(parts, "locked="+st.Locked)
	}
	if n := len(st.Excluded); n > 0 {
		parts = append(parts, fmt.Sprintf("excluded=%d", n))
	}
	return strings.Join(parts, "  ")
}

func css(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
