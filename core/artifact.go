package core

import "fmt"

// Artifact is a decoded tensor file: an ordered container of elements.
type Artifact struct {
	Path   string `json:"path"`
	Format string `json:"format"`
	// Elements holds one entry per top-level item. Items that are not
	// numeric arrays are kept as nil so indices match the source.
	Elements []*Tensor `json:"elements"`
}

// Element returns the tensor stored at index i.
func (a *Artifact) Element(i int) (*Tensor, error) {
	if i < 0 || i >= len(a.Elements) {
		return nil, fmt.Errorf("%w: element %d out of range (artifact has %d)", ErrShape, i, len(a.Elements))
	}
	if a.Elements[i] == nil {
		return nil, fmt.Errorf("element %d: %w", i, ErrNotTensor)
	}
	return a.Elements[i], nil
}
