package core

import "fmt"

// Slice selects what gets served from an artifact: Elements[Element][:Rows, Column].
type Slice struct {
	Element int `json:"element" yaml:"element"`
	Column  int `json:"column" yaml:"column"`
	Rows    int `json:"rows" yaml:"rows"`
}

// DefaultSlice is column 0 of the first 5000 rows of element 0.
var DefaultSlice = Slice{Element: 0, Column: 0, Rows: 5000}

// View is an artifact together with the payload sliced out of it.
type View struct {
	Artifact *Artifact
	Slice    Slice
	Payload  *Tensor
}

// Build applies s to a.
func Build(a *Artifact, s Slice) (*View, error) {
	t, err := a.Element(s.Element)
	if err != nil {
		return nil, err
	}
	payload, err := t.Column(s.Column, s.Rows)
	if err != nil {
		return nil, fmt.Errorf("element %d: %w", s.Element, err)
	}
	return &View{Artifact: a, Slice: s, Payload: payload}, nil
}
