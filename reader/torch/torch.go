// Package torch reads PyTorch artifacts written by torch.save, both the zip
// container and the legacy pickle format.
package torch

import (
	"fmt"
	"os"

	"github.com/nlpodyssey/gopickle/pytorch"
	"github.com/nlpodyssey/gopickle/types"
	"github.com/sonnes/tensorview/core"
)

// Format is the name this reader is registered under.
const Format = "torch"

// Reader decodes torch.save files.
type Reader struct{}

// ReadFile loads the artifact at path. The top-level object must be a list or
// tuple, or a tensor, which is treated as a container along its first axis
// the way indexing it in Python would.
func (r *Reader) ReadFile(path string) (*core.Artifact, error) {
	// gopickle does not wrap open errors, stat first so callers can match
	// fs.ErrNotExist.
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("open artifact: %w", err)
	}

	obj, err := pytorch.Load(path)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	a := &core.Artifact{Path: path, Format: Format}

	switch v := obj.(type) {
	case *types.List:
		a.Elements, err = elements(v)
	case *types.Tuple:
		a.Elements, err = elements(v)
	case *pytorch.Tensor:
		a.Elements, err = unstack(v)
	default:
		return nil, fmt.Errorf("decode %s: unsupported top-level object %T", path, obj)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return a, nil
}

// sequence is implemented by the Python list and tuple types.
type sequence interface {
	Len() int
	Get(i int) interface{}
}

func elements(seq sequence) ([]*core.Tensor, error) {
	out := make([]*core.Tensor, seq.Len())
	for i := range out {
		pt, ok := seq.Get(i).(*pytorch.Tensor)
		if !ok {
			continue
		}
		t, err := convert(pt)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		out[i] = t
	}
	return out, nil
}

// unstack splits a tensor along axis 0.
func unstack(pt *pytorch.Tensor) ([]*core.Tensor, error) {
	t, err := convert(pt)
	if err != nil {
		return nil, err
	}
	if t.Rank() == 0 {
		return nil, fmt.Errorf("%w: cannot index a 0-d tensor", core.ErrShape)
	}

	n := t.Shape[0]
	inner := len(t.Data) / max(n, 1)
	out := make([]*core.Tensor, n)
	for i := range n {
		out[i] = &core.Tensor{
			DType: t.DType,
			Shape: append([]int(nil), t.Shape[1:]...),
			Data:  t.Data[i*inner : (i+1)*inner],
		}
	}
	return out, nil
}

// convert copies a possibly strided torch tensor into a dense row-major one.
func convert(pt *pytorch.Tensor) (*core.Tensor, error) {
	dtype, size, at, err := storage(pt.Source)
	if err != nil {
		return nil, err
	}
	if len(pt.Stride) != len(pt.Size) {
		return nil, fmt.Errorf("%w: size %v with stride %v", core.ErrShape, pt.Size, pt.Stride)
	}

	shape := append([]int(nil), pt.Size...)
	n := 1
	last := pt.StorageOffset
	for i, d := range shape {
		n *= d
		if d > 0 {
			last += (d - 1) * pt.Stride[i]
		}
	}
	data := make([]float64, n)
	if n == 0 {
		return &core.Tensor{DType: dtype, Shape: shape, Data: data}, nil
	}
	if pt.StorageOffset < 0 || last >= size {
		return nil, fmt.Errorf("%w: view %v@%d exceeds storage of %d", core.ErrShape, shape, pt.StorageOffset, size)
	}

	idx := make([]int, len(shape))
	for i := range data {
		off := pt.StorageOffset
		for d, k := range idx {
			off += k * pt.Stride[d]
		}
		data[i] = at(off)

		for d := len(idx) - 1; d >= 0; d-- {
			idx[d]++
			if idx[d] < shape[d] {
				break
			}
			idx[d] = 0
		}
	}
	return &core.Tensor{DType: dtype, Shape: shape, Data: data}, nil
}

// storage returns an accessor over the typed storage backing a tensor.
func storage(src pytorch.StorageInterface) (core.DType, int, func(int) float64, error) {
	switch s := src.(type) {
	case *pytorch.FloatStorage:
		return core.Float32, len(s.Data), func(i int) float64 { return float64(s.Data[i]) }, nil
	case *pytorch.DoubleStorage:
		return core.Float64, len(s.Data), func(i int) float64 { return s.Data[i] }, nil
	case *pytorch.BFloat16Storage:
		return core.BFloat16, len(s.Data), func(i int) float64 { return float64(s.Data[i]) }, nil
	case *pytorch.HalfStorage:
		return core.Float16, len(s.Data), func(i int) float64 { return float64(s.Data[i]) }, nil
	case *pytorch.LongStorage:
		return core.Int64, len(s.Data), func(i int) float64 { return float64(s.Data[i]) }, nil
	case *pytorch.IntStorage:
		return core.Int32, len(s.Data), func(i int) float64 { return float64(s.Data[i]) }, nil
	case *pytorch.ShortStorage:
		return core.Int16, len(s.Data), func(i int) float64 { return float64(s.Data[i]) }, nil
	case *pytorch.CharStorage:
		return core.Int8, len(s.Data), func(i int) float64 { return float64(s.Data[i]) }, nil
	case *pytorch.ByteStorage:
		return core.Uint8, len(s.Data), func(i int) float64 { return float64(s.Data[i]) }, nil
	default:
		return "", 0, nil, fmt.Errorf("%w: %T", core.ErrDType, src)
	}
}
