package args

import (
	"fmt"
	"strings"

	"github.com/alecthomas/kong"
)

// TriBool is a boolean flag that remembers whether it was given at all.
// It plugs into kong as a boolean flag, so "--flag" means true and
// "--flag=false" means false.
type TriBool struct {
	set   bool
	value bool
}

// True returns a TriBool explicitly set to true.
func True() TriBool { return TriBool{set: true, value: true} }

// False returns a TriBool explicitly set to false.
func False() TriBool { return TriBool{set: true} }

// IsSet reports whether the flag was given.
func (t TriBool) IsSet() bool { return t.set }

// Value returns the flag value; false when unset.
func (t TriBool) Value() bool { return t.value }

// Ptr returns nil when unset.
func (t TriBool) Ptr() *bool {
	if !t.set {
		return nil
	}
	v := t.value
	return &v
}

// String implements fmt.Stringer.
func (t TriBool) String() string {
	if !t.set {
		return "unset"
	}
	return fmt.Sprintf("%t", t.value)
}

// IsBool tells kong the flag takes no mandatory value.
func (t *TriBool) IsBool() bool { return true }

// Decode implements kong.MapperValue. A bare flag carries no value token;
// a following "true" or "false" word is taken as the value.
func (t *TriBool) Decode(ctx *kong.DecodeContext) error {
	next := ctx.Scan.Peek()
	if next.Type != kong.FlagValueToken {
		if v, ok := separateLiteral(next); ok {
			ctx.Scan.Pop()
			t.set, t.value = true, v
			return nil
		}
		t.set, t.value = true, true
		return nil
	}
	token := ctx.Scan.Pop()
	switch v := token.Value.(type) {
	case bool:
		t.set, t.value = true, v
	case string:
		switch strings.ToLower(v) {
		case "true", "1", "yes":
			t.set, t.value = true, true
		case "false", "0", "no":
			t.set, t.value = true, false
		default:
			return fmt.Errorf("invalid boolean value %q", v)
		}
	default:
		return fmt.Errorf("expected bool but got %q (%T)", token.Value, token.Value)
	}
	return nil
}

// separateLiteral matches "--flag true" and "--flag false". Only the two
// words are accepted so an entry path after a bare flag stays positional.
func separateLiteral(tok kong.Token) (bool, bool) {
	if !tok.Type.IsAny(kong.UntypedToken, kong.PositionalArgumentToken) {
		return false, false
	}
	s, ok := tok.Value.(string)
	if !ok {
		return false, false
	}
	switch strings.ToLower(s) {
	case "true":
		return true, true
	case "false":
		return false, true
	}
	return false, false
}
