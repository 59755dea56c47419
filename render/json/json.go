// Package json renders the served payload as a JSON array, the same document
// the /data endpoint returns.
package json

import (
	"encoding/json"
	"io"

	"github.com/sonnes/tensorview/core"
)

// Renderer renders a view's payload to JSON.
type Renderer struct {
	// Indent controls pretty-printing. When true, output is indented.
	Indent bool
}

// New creates a JSON Renderer.
func New() *Renderer {
	return &Renderer{}
}

// Render writes the payload as nested JSON arrays followed by a newline.
func (r *Renderer) Render(w io.Writer, v *core.View) error {
	enc := json.NewEncoder(w)
	if r.Indent {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v.Payload.List())
}
