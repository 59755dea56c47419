// Package jsonarr reads artifacts stored as nested JSON arrays, e.g.
// [[[1,10],[2,20],[3,30]]] for a container holding one 3x2 tensor.
package jsonarr

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/sonnes/tensorview/core"
)

// Format is the name this reader is registered under.
const Format = "json"

// Reader decodes JSON array artifacts.
type Reader struct{}

// ReadFile loads the artifact at path. The document must be a JSON array;
// each item that is a number or a rectangular array of numbers becomes a
// tensor, anything else is kept as a non-tensor element.
func (r *Reader) ReadFile(path string) (*core.Artifact, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open artifact: %w", err)
	}
	defer f.Close()

	items, err := decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	a := &core.Artifact{Path: path, Format: Format, Elements: make([]*core.Tensor, len(items))}
	for i, item := range items {
		t, err := toTensor(item)
		if errors.Is(err, core.ErrNotTensor) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("decode %s: element %d: %w", path, i, err)
		}
		a.Elements[i] = t
	}
	return a, nil
}

func decode(r io.Reader) ([]any, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	items, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("top-level value is %T, want array", v)
	}
	return items, nil
}

// toTensor infers the shape from the first item on each level and then
// checks every other item against it.
func toTensor(v any) (*core.Tensor, error) {
	var shape []int
	for cur := v; ; {
		arr, ok := cur.([]any)
		if !ok {
			break
		}
		shape = append(shape, len(arr))
		if len(arr) == 0 {
			break
		}
		cur = arr[0]
	}

	b := builder{shape: shape, dtype: core.Int64}
	if err := b.walk(v, 0); err != nil {
		return nil, err
	}
	return core.NewTensor(b.dtype, shape, b.data)
}

type builder struct {
	shape []int
	dtype core.DType
	data  []float64
}

func (b *builder) walk(v any, depth int) error {
	if depth == len(b.shape) {
		n, ok := v.(json.Number)
		if !ok {
			if depth == 0 {
				return core.ErrNotTensor
			}
			return fmt.Errorf("%w: non-numeric value %v at depth %d", core.ErrNotTensor, v, depth)
		}
		if _, err := n.Int64(); err != nil {
			b.dtype = core.Float64
		}
		f, err := n.Float64()
		if err != nil {
			return fmt.Errorf("parse %s: %w", n, err)
		}
		b.data = append(b.data, f)
		return nil
	}

	arr, ok := v.([]any)
	if !ok || len(arr) != b.shape[depth] {
		return fmt.Errorf("%w: ragged array at depth %d", core.ErrShape, depth)
	}
	for _, item := range arr {
		if err := b.walk(item, depth+1); err != nil {
			return err
		}
	}
	return nil
}
