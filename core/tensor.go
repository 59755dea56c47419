// Package core defines the in-memory tensor model that every reader produces
// and every renderer consumes, plus the slice the server extracts from it.
package core

import (
	"errors"
	"fmt"
)

var (
	// ErrShape reports that a tensor does not have the dimensions an
	// operation needs.
	ErrShape = errors.New("shape mismatch")
	// ErrNotTensor reports that an artifact element is not a numeric array.
	ErrNotTensor = errors.New("not a tensor")
	// ErrDType reports a storage type that cannot be represented as numbers.
	ErrDType = errors.New("unsupported dtype")
)

// DType names the element type a tensor had in its source artifact. Values
// are always held as float64 in memory; DType only records provenance.
type DType string

const (
	Float16  DType = "float16"
	BFloat16 DType = "bfloat16"
	Float32  DType = "float32"
	Float64  DType = "float64"
	Int8     DType = "int8"
	Int16    DType = "int16"
	Int32    DType = "int32"
	Int64    DType = "int64"
	Uint8    DType = "uint8"
)

// Tensor is a dense row-major array.
type Tensor struct {
	DType DType     `json:"dtype"`
	Shape []int     `json:"shape"`
	Data  []float64 `json:"-"` // len(Data) == product(Shape)
}

// NewTensor checks that data fills shape exactly.
func NewTensor(dtype DType, shape []int, data []float64) (*Tensor, error) {
	n := 1
	for i, d := range shape {
		if d < 0 {
			return nil, fmt.Errorf("%w: negative extent %d on axis %d", ErrShape, d, i)
		}
		n *= d
	}
	if n != len(data) {
		return nil, fmt.Errorf("%w: shape %v needs %d values, got %d", ErrShape, shape, n, len(data))
	}
	return &Tensor{DType: dtype, Shape: shape, Data: data}, nil
}

// Rank returns the number of dimensions.
func (t *Tensor) Rank() int {
	return len(t.Shape)
}

// Column selects column col from the first n rows, i.e. t[:n, col]. The
// result keeps any trailing axes, so a rank-2 tensor yields a vector. When the
// tensor has fewer than n rows, every row is taken.
func (t *Tensor) Column(col, n int) (*Tensor, error) {
	if t.Rank() < 2 {
		return nil, fmt.Errorf("%w: need at least 2 dimensions, got %v", ErrShape, t.Shape)
	}
	if col < 0 || col >= t.Shape[1] {
		return nil, fmt.Errorf("%w: column %d out of range for shape %v", ErrShape, col, t.Shape)
	}
	if n < 0 {
		return nil, fmt.Errorf("%w: negative row count %d", ErrShape, n)
	}
	rows := min(n, t.Shape[0])

	inner := 1
	for _, d := range t.Shape[2:] {
		inner *= d
	}
	stride := t.Shape[1] * inner

	data := make([]float64, 0, rows*inner)
	for i := range rows {
		start := i*stride + col*inner
		data = append(data, t.Data[start:start+inner]...)
	}

	shape := append([]int{rows}, t.Shape[2:]...)
	return &Tensor{DType: t.DType, Shape: shape, Data: data}, nil
}

// List converts the tensor into nested slices mirroring its shape. A rank-1
// tensor becomes []float64; a rank-0 tensor becomes its scalar value.
func (t *Tensor) List() any {
	if t.Rank() == 0 {
		if len(t.Data) == 0 {
			return nil
		}
		return t.Data[0]
	}
	v, _ := nest(t.Shape, t.Data)
	return v
}

func nest(shape []int, data []float64) (any, []float64) {
	if len(shape) == 1 {
		out := make([]float64, shape[0])
		copy(out, data[:shape[0]])
		return out, data[shape[0]:]
	}
	out := make([]any, shape[0])
	for i := range out {
		out[i], data = nest(shape[1:], data)
	}
	return out, data
}

// Values returns a one-dimensional view of the data. It fails for anything
// but a rank-1 tensor.
func (t *Tensor) Values() ([]float64, error) {
	if t.Rank() != 1 {
		return nil, fmt.Errorf("%w: want 1 dimension, got %v", ErrShape, t.Shape)
	}
	return t.Data, nil
}
