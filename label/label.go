// Package label provides interned tensor labels.
//
// A Label is a small comparable handle to an interned string. Two labels are
// equal iff their strings are equal, and equality is a pointer comparison.
// The interned string stays alive as long as any Label referencing it is
// reachable, so a Label never outlives its storage.
package label

import (
	"strconv"
	"strings"
	"unique"
)

// Label identifies one coordinate along a mapped dimension.
// The zero Label is invalid and is never produced by Make.
type Label struct {
	h unique.Handle[string]
}

// Make interns s and returns its label.
func Make(s string) Label {
	return Label{h: unique.Make(s)}
}

// FromIndex returns the label for the decimal representation of i.
func FromIndex(i uint64) Label {
	return Make(strconv.FormatUint(i, 10))
}

// MakeAll interns every string in ss.
func MakeAll(ss ...string) []Label {
	out := make([]Label, len(ss))
	for i, s := range ss {
		out[i] = Make(s)
	}
	return out
}

// String returns the interned string. It returns "" for the zero Label.
func (l Label) String() string {
	if l.IsZero() {
		return ""
	}
	return l.h.Value()
}

// IsZero reports whether l is the zero Label.
func (l Label) IsZero() bool {
	return l == Label{}
}

// AsIndex parses l as a dense coordinate. Any non-empty string of decimal
// digits is accepted, so "01" is coordinate 1. Signs and spaces are not.
func (l Label) AsIndex() (uint64, bool) {
	s := l.String()
	if s == "" {
		return 0, false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, false
		}
	}
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// Compare orders labels by their string value. The zero Label sorts before
// every other label, including Make("").
func Compare(a, b Label) int {
	switch {
	case a == b:
		return 0
	case a.IsZero():
		return -1
	case b.IsZero():
		return 1
	}
	return strings.Compare(a.String(), b.String())
}

// CompareAddress orders two equally long label tuples lexicographically.
func CompareAddress(a, b []Label) int {
	for i := range a {
		if c := Compare(a[i], b[i]); c != 0 {
			return c
		}
	}
	return len(a) - len(b)
}

// Strings returns the string value of every label in ls.
func Strings(ls []Label) []string {
	out := make([]string, len(ls))
	for i, l := range ls {
		out[i] = l.String()
	}
	return out
}
