// Package terminal renders an artifact summary and the served slice as
// ANSI-colored text.
package terminal

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/charmbracelet/x/term"
	"github.com/sonnes/tensorview/core"
)

const (
	defaultWidth = 100
	previewCount = 8
)

// Renderer prints a short, human-readable summary of a view.
type Renderer struct {
	// Width overrides terminal width detection. Zero means auto-detect.
	Width int
}

// New creates a terminal Renderer.
func New() *Renderer {
	return &Renderer{}
}

// Render writes the artifact layout, the selected slice and a preview of the
// payload to w.
func (r *Renderer) Render(w io.Writer, v *core.View) error {
	width := r.termWidth()

	if a := v.Artifact; a != nil {
		fmt.Fprintln(w, styleTitle.Render(a.Path)+"  "+styleMeta.Render(a.Format))
		for i, e := range a.Elements {
			line := "  " + styleIndex.Render(fmt.Sprintf("[%d]", i)) + " " + describe(e)
			if i == v.Slice.Element {
				line += "  " + styleServed.Render("served")
			}
			fmt.Fprintln(w, ansi.Truncate(line, width, "…"))
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, styleLabel.Render("slice  ")+fmt.Sprintf("element %d · column %d · rows ≤ %d",
		v.Slice.Element, v.Slice.Column, v.Slice.Rows))

	p := v.Payload
	stats := styleLabel.Render("values ") + styleStat.Render(strconv.Itoa(len(p.Data)))
	if lo, hi, ok := bounds(p.Data); ok {
		stats += styleLabel.Render("  min ") + styleStat.Render(format(lo)) +
			styleLabel.Render("  max ") + styleStat.Render(format(hi))
	}
	fmt.Fprintln(w, stats)

	fmt.Fprintln(w, ansi.Truncate("  "+preview(p.Data), width, "…"))
	return nil
}

func (r *Renderer) termWidth() int {
	if r.Width > 0 {
		return r.Width
	}
	if w, _, err := term.GetSize(os.Stdout.Fd()); err == nil && w > 0 {
		return w
	}
	return defaultWidth
}

func describe(t *core.Tensor) string {
	if t == nil {
		return styleMeta.Render("not a tensor")
	}
	dims := make([]string, len(t.Shape))
	for i, d := range t.Shape {
		dims[i] = strconv.Itoa(d)
	}
	shape := strings.Join(dims, "×")
	if shape == "" {
		shape = "scalar"
	}
	return fmt.Sprintf("%-8s %s", t.DType, shape)
}

func bounds(data []float64) (lo, hi float64, ok bool) {
	if len(data) == 0 {
		return 0, 0, false
	}
	lo, hi = data[0], data[0]
	for _, v := range data[1:] {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	return lo, hi, true
}

// preview lists the first values, then the last one when some are elided.
func preview(data []float64) string {
	if len(data) <= previewCount {
		return "[" + join(data) + "]"
	}
	return "[" + join(data[:previewCount-1]) + ", …, " + format(data[len(data)-1]) + "]"
}

func join(data []float64) string {
	parts := make([]string, len(data))
	for i, v := range data {
		parts[i] = format(v)
	}
	return strings.Join(parts, ", ")
}

func format(v float64) string {
	return strconv.FormatFloat(v, 'g', 6, 64)
}
