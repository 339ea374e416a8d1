package value

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/hupe1980/tensorcore/cell"
)

// Mapped is the Size of a mapped (sparse) dimension.
const Mapped uint32 = 0

// Dimension is one named tensor dimension.
type Dimension struct {
	Name string
	// Size is the number of coordinates of an indexed dimension, or Mapped.
	Size uint32
}

// MappedDim returns a mapped dimension.
func MappedDim(name string) Dimension { return Dimension{Name: name, Size: Mapped} }

// IndexedDim returns an indexed dimension with the given size.
func IndexedDim(name string, size uint32) Dimension { return Dimension{Name: name, Size: size} }

// IsMapped reports whether d is a sparse dimension.
func (d Dimension) IsMapped() bool { return d.Size == Mapped }

// IsIndexed reports whether d is a dense dimension.
func (d Dimension) IsIndexed() bool { return d.Size != Mapped }

func (d Dimension) String() string {
	if d.IsMapped() {
		return d.Name + "{}"
	}
	return d.Name + "[" + strconv.FormatUint(uint64(d.Size), 10) + "]"
}

// Type is a tensor shape: a cell type plus dimensions sorted by name.
// Type values are immutable.
type Type struct {
	cellType cell.Type
	dims     []Dimension
}

// ErrInvalidType is returned for malformed type specs and dimension lists.
var ErrInvalidType = errors.New("invalid tensor type")

// NewType returns a tensor type with the given dimensions in canonical order.
// Dimension names must be unique and non-empty.
func NewType(ct cell.Type, dims ...Dimension) (Type, error) {
	sorted := slices.Clone(dims)
	slices.SortFunc(sorted, func(a, b Dimension) int { return strings.Compare(a.Name, b.Name) })
	for i, d := range sorted {
		if d.Name == "" {
			return Type{}, fmt.Errorf("%w: empty dimension name", ErrInvalidType)
		}
		if i > 0 && sorted[i-1].Name == d.Name {
			return Type{}, fmt.Errorf("%w: duplicate dimension %q", ErrInvalidType, d.Name)
		}
	}
	return Type{cellType: ct, dims: sorted}, nil
}

// MustType is like NewType but panics on error.
func MustType(ct cell.Type, dims ...Dimension) Type {
	t, err := NewType(ct, dims...)
	if err != nil {
		panic(err)
	}
	return t
}

// ParseType parses a type spec such as "tensor<float>(x{},y[3])".
// The cell type defaults to double; "double" is a scalar.
func ParseType(spec string) (Type, error) {
	s := strings.TrimSpace(spec)
	if s == "double" {
		return Type{cellType: cell.Double}, nil
	}
	rest, ok := strings.CutPrefix(s, "tensor")
	if !ok {
		return Type{}, fmt.Errorf("%w: %q", ErrInvalidType, spec)
	}
	ct := cell.Double
	if strings.HasPrefix(rest, "<") {
		end := strings.IndexByte(rest, '>')
		if end < 0 {
			return Type{}, fmt.Errorf("%w: unterminated cell type in %q", ErrInvalidType, spec)
		}
		if ct, ok = cell.ParseType(rest[1:end]); !ok {
			return Type{}, fmt.Errorf("%w: unknown cell type %q", ErrInvalidType, rest[1:end])
		}
		rest = rest[end+1:]
	}
	if !strings.HasPrefix(rest, "(") || !strings.HasSuffix(rest, ")") {
		return Type{}, fmt.Errorf("%w: missing dimension list in %q", ErrInvalidType, spec)
	}
	body := strings.TrimSpace(rest[1 : len(rest)-1])
	var dims []Dimension
	if body != "" {
		for _, part := range strings.Split(body, ",") {
			d, err := parseDimension(strings.TrimSpace(part))
			if err != nil {
				return Type{}, fmt.Errorf("%w in %q", err, spec)
			}
			dims = append(dims, d)
		}
	}
	return NewType(ct, dims...)
}

func parseDimension(s string) (Dimension, error) {
	if name, ok := strings.CutSuffix(s, "{}"); ok {
		return MappedDim(name), nil
	}
	open := strings.IndexByte(s, '[')
	if open <= 0 || !strings.HasSuffix(s, "]") {
		return Dimension{}, fmt.Errorf("%w: bad dimension %q", ErrInvalidType, s)
	}
	size, err := strconv.ParseUint(s[open+1:len(s)-1], 10, 32)
	if err != nil || size == 0 {
		return Dimension{}, fmt.Errorf("%w: bad size in dimension %q", ErrInvalidType, s)
	}
	return IndexedDim(s[:open], uint32(size)), nil
}

// MustParseType is like ParseType but panics on error.
func MustParseType(spec string) Type {
	t, err := ParseType(spec)
	if err != nil {
		panic(err)
	}
	return t
}

// CellType returns the cell type.
func (t Type) CellType() cell.Type { return t.cellType }

// Dimensions returns the dimensions in canonical order.
// The returned slice must not be modified.
func (t Type) Dimensions() []Dimension { return t.dims }

// WithCellType returns a copy of t with a different cell type.
func (t Type) WithCellType(ct cell.Type) Type {
	return Type{cellType: ct, dims: t.dims}
}

// NumMappedDimensions returns the number of sparse dimensions.
func (t Type) NumMappedDimensions() int {
	n := 0
	for _, d := range t.dims {
		if d.IsMapped() {
			n++
		}
	}
	return n
}

// NumIndexedDimensions returns the number of dense dimensions.
func (t Type) NumIndexedDimensions() int {
	return len(t.dims) - t.NumMappedDimensions()
}

// MappedDimensions returns the sparse dimensions in canonical order.
func (t Type) MappedDimensions() []Dimension {
	return slices.DeleteFunc(slices.Clone(t.dims), Dimension.IsIndexed)
}

// IndexedDimensions returns the dense dimensions in canonical order.
func (t Type) IndexedDimensions() []Dimension {
	return slices.DeleteFunc(slices.Clone(t.dims), Dimension.IsMapped)
}

// DenseSubspaceSize returns the number of cells in one subspace.
func (t Type) DenseSubspaceSize() int {
	size := 1
	for _, d := range t.dims {
		if d.IsIndexed() {
			size *= int(d.Size)
		}
	}
	return size
}

// IsScalar reports whether t has no dimensions.
func (t Type) IsScalar() bool { return len(t.dims) == 0 }

// IsSparse reports whether t has only mapped dimensions (at least one).
func (t Type) IsSparse() bool {
	return len(t.dims) > 0 && t.NumIndexedDimensions() == 0
}

// Equal reports whether t and o have the same cell type and dimensions.
func (t Type) Equal(o Type) bool {
	return t.cellType == o.cellType && slices.Equal(t.dims, o.dims)
}

// SameDimensions reports whether t and o have identical dimension lists,
// ignoring cell type.
func (t Type) SameDimensions(o Type) bool {
	return slices.Equal(t.dims, o.dims)
}

// String returns the canonical type spec.
func (t Type) String() string {
	if t.IsScalar() && t.cellType == cell.Double {
		return "double"
	}
	var sb strings.Builder
	sb.WriteString("tensor")
	if t.cellType != cell.Double {
		sb.WriteString("<" + t.cellType.String() + ">")
	}
	sb.WriteByte('(')
	for i, d := range t.dims {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(d.String())
	}
	sb.WriteByte(')')
	return sb.String()
}
