// Package render defines the interface for writing a sliced artifact view in
// various output formats.
package render

import (
	"io"

	"github.com/sonnes/tensorview/core"
)

// Renderer writes a view to the given writer in a specific format.
type Renderer interface {
	Render(w io.Writer, v *core.View) error
}
