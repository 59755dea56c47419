// Package html renders the served payload as a standalone page with an
// inline SVG line chart.
package html

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"strconv"
	"strings"

	"github.com/sonnes/tensorview/core"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// Chart geometry in SVG user units.
const (
	width        = 960
	height       = 480
	marginTop    = 20
	marginRight  = 20
	marginBottom = 30
	marginLeft   = 40
	xTickCount   = 10
	yTickCount   = 6
)

// Renderer renders a view to an HTML page.
type Renderer struct {
	md   goldmark.Markdown
	tmpl *template.Template

	// Title is the page heading.
	Title string
	// Notes is markdown shown under the chart.
	Notes string
	// YMin and YMax fix the vertical domain. Values outside it are clipped.
	YMin, YMax float64
}

// New creates an HTML Renderer with a [-15, 15] vertical domain.
func New() *Renderer {
	return &Renderer{
		md:   goldmark.New(goldmark.WithExtensions(extension.GFM)),
		tmpl: template.Must(template.New("page.html").Funcs(funcMap()).ParseFS(content, "templates/*.html")),
		YMin: -15,
		YMax: 15,
	}
}

type tick struct {
	Pos   float64
	Label string
}

// pageData is the template data passed to page.html.
type pageData struct {
	Title  string
	Notes  template.HTML
	Source string
	DType  core.DType
	Count  int

	Width, Height            int
	Left, Right, Top, Bottom float64
	Points                   string
	XTicks, YTicks           []tick
}

// Render writes a complete HTML page to w. The payload must be one-dimensional.
func (r *Renderer) Render(w io.Writer, v *core.View) error {
	values, err := v.Payload.Values()
	if err != nil {
		return fmt.Errorf("chart: %w", err)
	}

	notes, err := r.notes()
	if err != nil {
		return err
	}

	data := pageData{
		Title:  r.Title,
		Notes:  notes,
		DType:  v.Payload.DType,
		Count:  len(values),
		Width:  width,
		Height: height,
		Left:   marginLeft,
		Right:  width - marginRight,
		Top:    marginTop,
		Bottom: height - marginBottom,
	}
	if v.Artifact != nil {
		data.Source = v.Artifact.Path
	}

	xs := scale{d0: 0, d1: float64(max(len(values)-1, 1)), r0: data.Left, r1: data.Right}
	ys := scale{d0: r.YMin, d1: r.YMax, r0: data.Bottom, r1: data.Top}

	data.Points = points(values, xs, ys)
	data.XTicks = ticks(xs, xTickCount, true)
	data.YTicks = ticks(ys, yTickCount, false)

	return r.tmpl.ExecuteTemplate(w, "page.html", data)
}

func (r *Renderer) notes() (template.HTML, error) {
	if r.Notes == "" {
		return "", nil
	}
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(r.Notes), &buf); err != nil {
		return "", fmt.Errorf("render notes: %w", err)
	}
	return template.HTML(buf.String()), nil
}

// scale maps the domain [d0, d1] linearly onto the range [r0, r1].
type scale struct {
	d0, d1, r0, r1 float64
}

func (s scale) at(v float64) float64 {
	return s.r0 + (v-s.d0)/(s.d1-s.d0)*(s.r1-s.r0)
}

func points(values []float64, xs, ys scale) string {
	var b strings.Builder
	for i, v := range values {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(coord(xs.at(float64(i))))
		b.WriteByte(',')
		b.WriteString(coord(ys.at(v)))
	}
	return b.String()
}

func ticks(s scale, n int, integer bool) []tick {
	out := make([]tick, 0, n+1)
	step := (s.d1 - s.d0) / float64(n)
	for i := 0; i <= n; i++ {
		v := s.d0 + float64(i)*step
		label := strconv.FormatFloat(v, 'g', 4, 64)
		if integer {
			label = strconv.Itoa(int(v + 0.5))
		}
		out = append(out, tick{Pos: s.at(v), Label: label})
	}
	return out
}

func funcMap() template.FuncMap {
	return template.FuncMap{
		"add": func(a, b float64) float64 { return a + b },
		"sub": func(a, b float64) float64 { return a - b },
	}
}

func coord(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
