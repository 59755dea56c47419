package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seq(n int, f func(i int) float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = f(i)
	}
	return out
}

func TestNewTensor(t *testing.T) {
	_, err := NewTensor(Float32, []int{2, 3}, make([]float64, 5))
	require.ErrorIs(t, err, ErrShape)

	_, err = NewTensor(Float32, []int{-1}, nil)
	require.ErrorIs(t, err, ErrShape)

	tr, err := NewTensor(Float32, []int{2, 3}, make([]float64, 6))
	require.NoError(t, err)
	assert.Equal(t, 2, tr.Rank())
}

func TestColumn(t *testing.T) {
	tests := []struct {
		name      string
		tensor    *Tensor
		col, rows int
		wantShape []int
		want      []float64
		wantErr   bool
	}{
		{
			name:      "three rows two columns",
			tensor:    &Tensor{Shape: []int{3, 2}, Data: []float64{1, 10, 2, 20, 3, 30}},
			col:       0,
			rows:      5000,
			wantShape: []int{3},
			want:      []float64{1, 2, 3},
		},
		{
			name:      "second column",
			tensor:    &Tensor{Shape: []int{3, 2}, Data: []float64{1, 10, 2, 20, 3, 30}},
			col:       1,
			rows:      2,
			wantShape: []int{2},
			want:      []float64{10, 20},
		},
		{
			name:      "trailing axes kept",
			tensor:    &Tensor{Shape: []int{2, 2, 2}, Data: []float64{1, 2, 3, 4, 5, 6, 7, 8}},
			col:       1,
			rows:      5000,
			wantShape: []int{2, 2},
			want:      []float64{3, 4, 7, 8},
		},
		{
			name:      "no rows",
			tensor:    &Tensor{Shape: []int{0, 4}, Data: []float64{}},
			rows:      5000,
			wantShape: []int{0},
			want:      []float64{},
		},
		{
			name:    "zero columns",
			tensor:  &Tensor{Shape: []int{3, 0}, Data: []float64{}},
			rows:    5000,
			wantErr: true,
		},
		{
			name:    "vector",
			tensor:  &Tensor{Shape: []int{3}, Data: []float64{1, 2, 3}},
			rows:    5000,
			wantErr: true,
		},
		{
			name:    "negative column",
			tensor:  &Tensor{Shape: []int{1, 1}, Data: []float64{1}},
			col:     -1,
			rows:    1,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.tensor.Column(tt.col, tt.rows)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrShape)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantShape, got.Shape)
			assert.Equal(t, tt.want, got.Data)
		})
	}
}

func TestColumnTruncatesRows(t *testing.T) {
	tr := &Tensor{DType: Float64, Shape: []int{6000, 2}, Data: seq(12000, func(i int) float64 { return float64(i) })}

	got, err := tr.Column(0, 5000)
	require.NoError(t, err)
	require.Len(t, got.Data, 5000)
	assert.Equal(t, Float64, got.DType)
	for i, v := range got.Data {
		if !assert.Equal(t, float64(2*i), v) {
			break
		}
	}
}

func TestList(t *testing.T) {
	vec := &Tensor{Shape: []int{3}, Data: []float64{1, 2, 3}}
	assert.Equal(t, []float64{1, 2, 3}, vec.List())

	mat := &Tensor{Shape: []int{2, 2}, Data: []float64{1, 2, 3, 4}}
	assert.Equal(t, []any{[]float64{1, 2}, []float64{3, 4}}, mat.List())

	scalar := &Tensor{Shape: []int{}, Data: []float64{7}}
	assert.Equal(t, 7.0, scalar.List())

	empty := &Tensor{Shape: []int{0}, Data: []float64{}}
	assert.Equal(t, []float64{}, empty.List())
}

func TestValues(t *testing.T) {
	_, err := (&Tensor{Shape: []int{1, 1}, Data: []float64{1}}).Values()
	require.ErrorIs(t, err, ErrShape)

	v, err := (&Tensor{Shape: []int{2}, Data: []float64{1, 2}}).Values()
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2}, v)
}
