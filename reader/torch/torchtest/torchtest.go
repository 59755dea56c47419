// Package torchtest writes small torch.save artifacts for tests.
package torchtest

import (
	"archive/zip"
	"bytes"
	"encoding/binary"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
)

// Storage describes one tensor written by Write.
type Storage struct {
	Class  string // torch storage class, e.g. "FloatStorage"
	Raw    []byte // little-endian storage bytes
	Numel  int
	Offset int
	Size   []int
	Stride []int
}

// Floats builds a contiguous float32 tensor.
func Floats(size []int, vals ...float32) Storage {
	var buf bytes.Buffer
	for _, v := range vals {
		binary.Write(&buf, binary.LittleEndian, math.Float32bits(v))
	}
	return Storage{Class: "FloatStorage", Raw: buf.Bytes(), Numel: len(vals), Size: size, Stride: Contiguous(size)}
}

// Longs builds a contiguous int64 tensor.
func Longs(size []int, vals ...int64) Storage {
	var buf bytes.Buffer
	for _, v := range vals {
		binary.Write(&buf, binary.LittleEndian, v)
	}
	return Storage{Class: "LongStorage", Raw: buf.Bytes(), Numel: len(vals), Size: size, Stride: Contiguous(size)}
}

// Contiguous returns row-major strides for size.
func Contiguous(size []int) []int {
	stride := make([]int, len(size))
	acc := 1
	for i := len(size) - 1; i >= 0; i-- {
		stride[i] = acc
		acc *= size[i]
	}
	return stride
}

// pickler emits the handful of protocol 2 opcodes torch.save produces.
type pickler struct{ bytes.Buffer }

func (p *pickler) global(module, name string) { p.WriteString("c" + module + "\n" + name + "\n") }
func (p *pickler) mark()                      { p.WriteByte('(') }
func (p *pickler) tuple()                     { p.WriteByte('t') }
func (p *pickler) reduce()                    { p.WriteByte('R') }

func (p *pickler) str(s string) {
	p.WriteByte('X')
	binary.Write(p, binary.LittleEndian, uint32(len(s)))
	p.WriteString(s)
}

func (p *pickler) binint(v int) {
	p.WriteByte('J')
	binary.Write(p, binary.LittleEndian, int32(v))
}

func (p *pickler) ints(vs []int) {
	p.mark()
	for _, v := range vs {
		p.binint(v)
	}
	p.tuple()
}

func (p *pickler) tensor(key string, s Storage) {
	p.global("torch._utils", "_rebuild_tensor_v2")
	p.mark()

	p.mark()
	p.str("storage")
	p.global("torch", s.Class)
	p.str(key)
	p.str("cpu")
	p.binint(s.Numel)
	p.tuple()
	p.WriteByte('Q') // BINPERSID

	p.binint(s.Offset)
	p.ints(s.Size)
	p.ints(s.Stride)
	p.WriteByte(0x89) // NEWFALSE: requires_grad
	p.global("collections", "OrderedDict")
	p.WriteByte(')')
	p.reduce()

	p.tuple()
	p.reduce()
}

// Write stores the zip layout of torch.save([t0, t1, ...]) as 0.pt in a
// temp directory and returns its path. A nil item is pickled as None.
// Entries are stored uncompressed, as torch.save writes them.
func Write(t *testing.T, items ...*Storage) string {
	t.Helper()

	var p pickler
	p.WriteString("\x80\x02")
	p.WriteByte(']')
	p.mark()
	for i, s := range items {
		if s == nil {
			p.WriteByte('N')
			continue
		}
		p.tensor(strconv.Itoa(i), *s)
	}
	p.WriteByte('e') // APPENDS
	p.WriteByte('.')

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	add := func(name string, data []byte) {
		w, err := zw.CreateHeader(&zip.FileHeader{Name: name, Method: zip.Store})
		require.NoError(t, err)
		_, err = w.Write(data)
		require.NoError(t, err)
	}
	add("archive/data.pkl", p.Bytes())
	for i, s := range items {
		if s != nil {
			add("archive/data/"+strconv.Itoa(i), s.Raw)
		}
	}
	add("archive/version", []byte("3\n"))
	require.NoError(t, zw.Close())

	path := filepath.Join(t.TempDir(), "0.pt")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
	return path
}
