package args

import (
	"maps"
	"strings"
)

// PositionalKey holds the positional arguments, command first.
const PositionalKey = "_"

// Arguments maps flag names to values.
type Arguments map[string]any

// New returns an empty argument set with the given positional arguments.
func New(positional ...string) Arguments {
	a := Arguments{}
	a[PositionalKey] = append([]string{}, positional...)
	return a
}

// Has reports whether name was set at all.
func (a Arguments) Has(name string) bool {
	_, ok := a[name]
	return ok
}

// Set assigns a value.
func (a Arguments) Set(name string, value any) {
	a[name] = value
}

// Bool returns the boolean value of name. Strings "true"/"false" are honoured;
// any other non-empty value counts as true.
func (a Arguments) Bool(name string) bool {
	switch v := a[name].(type) {
	case bool:
		return v
	case string:
		switch strings.ToLower(v) {
		case "", "false", "0", "no":
			return false
		}
		return true
	case nil:
		return false
	default:
		return true
	}
}

// Flag returns the value of name only when it holds a real boolean.
// ok is false when the flag is unset or carries a non-boolean value.
func (a Arguments) Flag(name string) (value bool, ok bool) {
	v, ok := a[name].(bool)
	return v, ok
}

// String returns the string value of name, or "" when unset or not a string.
func (a Arguments) String(name string) string {
	s, _ := a[name].(string)
	return s
}

// Positional returns the positional arguments.
func (a Arguments) Positional() []string {
	p, _ := a[PositionalKey].([]string)
	return p
}

// Command returns the first positional argument.
func (a Arguments) Command() string {
	if p := a.Positional(); len(p) > 0 {
		return p[0]
	}
	return ""
}

// Clone returns a shallow copy with its own positional slice.
func (a Arguments) Clone() Arguments {
	c := maps.Clone(a)
	if c == nil {
		c = Arguments{}
	}
	if p := a.Positional(); p != nil {
		c[PositionalKey] = append([]string{}, p...)
	}
	return c
}

// Merge copies every key of other into a, overwriting existing values.
// Positional arguments are appended rather than replaced.
func (a Arguments) Merge(other Arguments) Arguments {
	for k, v := range other {
		if k == PositionalKey {
			continue
		}
		a[k] = v
	}
	if p := other.Positional(); len(p) > 0 {
		a[PositionalKey] = append(a.Positional(), p...)
	}
	return a
}

// Reject zeroes every truthy option in names and returns the ones it zeroed,
// in list order. Unset or already-false options are left alone.
func (a Arguments) Reject(names []string) []string {
	var rejected []string
	for _, name := range names {
		if a.Bool(name) {
			a[name] = false
			rejected = append(rejected, name)
		}
	}
	return rejected
}
