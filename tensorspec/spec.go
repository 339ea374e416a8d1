// Package tensorspec is a representation-free description of a tensor: a
// type spec plus a map from full cell address to value.
//
// It is the reference format for tests and examples. Values are converted
// with FromValue / ToValue and a Spec can be encoded as JSON:
//
//	{"type":"tensor(x{},y[2])","cells":[{"address":{"x":"a","y":"0"},"value":1}]}
//
// Indexed coordinates are written as decimal strings.
package tensorspec

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	gojson "github.com/goccy/go-json"

	"github.com/hupe1980/tensorcore/value"
)

// Address maps every dimension name to a label (mapped) or a decimal
// coordinate (indexed).
type Address map[string]string

// Key returns a canonical string for the address.
func (a Address) Key() string {
	names := slices.Sorted(maps.Keys(a))
	var sb strings.Builder
	for i, n := range names {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(n)
		sb.WriteByte('=')
		sb.WriteString(strconv.Quote(a[n]))
	}
	return sb.String()
}

// Cell is one addressed cell value.
type Cell struct {
	Address Address `json:"address"`
	Value   float64 `json:"value"`
}

// Spec is a tensor type plus its cells.
type Spec struct {
	typ   string
	cells map[string]Cell
}

// New returns an empty spec of the given type. Valid type specs are
// normalized to canonical dimension order.
func New(typ string) *Spec {
	if t, err := value.ParseType(typ); err == nil {
		typ = t.String()
	}
	return &Spec{typ: typ, cells: make(map[string]Cell)}
}

// Type returns the type spec string.
func (s *Spec) Type() string { return s.typ }

// Add sets the cell at addr, replacing any previous value.
func (s *Spec) Add(addr Address, v float64) *Spec {
	s.cells[addr.Key()] = Cell{Address: maps.Clone(addr), Value: v}
	return s
}

// Get returns the value at addr.
func (s *Spec) Get(addr Address) (float64, bool) {
	c, ok := s.cells[addr.Key()]
	return c.Value, ok
}

// Len returns the number of cells.
func (s *Spec) Len() int { return len(s.cells) }

// Cells returns all cells ordered by address key.
func (s *Spec) Cells() []Cell {
	keys := slices.Sorted(maps.Keys(s.cells))
	out := make([]Cell, len(keys))
	for i, k := range keys {
		out[i] = s.cells[k]
	}
	return out
}

// Equal reports whether both specs have the same type and cells.
func (s *Spec) Equal(o *Spec) bool {
	if s.typ != o.typ || len(s.cells) != len(o.cells) {
		return false
	}
	for k, c := range s.cells {
		oc, ok := o.cells[k]
		if !ok || oc.Value != c.Value {
			return false
		}
	}
	return true
}

// String returns a compact human-readable form.
func (s *Spec) String() string {
	var sb strings.Builder
	sb.WriteString(s.typ)
	sb.WriteString(":{")
	for i, c := range s.Cells() {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(c.Address.Key())
		sb.WriteByte(':')
		sb.WriteString(strconv.FormatFloat(c.Value, 'g', -1, 64))
	}
	sb.WriteByte('}')
	return sb.String()
}

type jsonSpec struct {
	Type  string `json:"type"`
	Cells []Cell `json:"cells"`
}

// MarshalJSON implements json.Marshaler.
func (s *Spec) MarshalJSON() ([]byte, error) {
	return gojson.Marshal(jsonSpec{Type: s.typ, Cells: s.Cells()})
}

// UnmarshalJSON implements json.Unmarshaler.
func (s *Spec) UnmarshalJSON(data []byte) error {
	var aux jsonSpec
	if err := gojson.Unmarshal(data, &aux); err != nil {
		return fmt.Errorf("tensorspec: %w", err)
	}
	if aux.Type == "" {
		return fmt.Errorf("tensorspec: missing type")
	}
	*s = *New(aux.Type)
	for _, c := range aux.Cells {
		s.Add(c.Address, c.Value)
	}
	return nil
}

// Encode returns the JSON form of s.
func Encode(s *Spec) ([]byte, error) { return s.MarshalJSON() }

// Decode parses the JSON form of a spec.
func Decode(data []byte) (*Spec, error) {
	s := New("")
	if err := s.UnmarshalJSON(data); err != nil {
		return nil, err
	}
	return s, nil
}
