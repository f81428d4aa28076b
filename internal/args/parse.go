package args

import "strings"

// ParseExtra parses engine pass-through arguments:
//
//	--key=value   string value ("true"/"false" become booleans)
//	--key         true, or the following "true"/"false" token
//	--no-key      false
//	-k            true (single-letter flags, may be grouped)
//	--            every remaining token is positional
//
// Everything else is collected as positional.
func ParseExtra(raw []string) Arguments {
	a := New()
	var positional []string

	for i := 0; i < len(raw); i++ {
		tok := raw[i]
		switch {
		case tok == "--":
			positional = append(positional, raw[i+1:]...)
			i = len(raw)
		case strings.HasPrefix(tok, "--") && strings.Contains(tok, "="):
			k, v, _ := strings.Cut(tok[2:], "=")
			a[k] = coerce(v)
		case strings.HasPrefix(tok, "--no-") && len(tok) > 5:
			a[tok[5:]] = false
		case strings.HasPrefix(tok, "--") && len(tok) > 2:
			k := tok[2:]
			if i+1 < len(raw) && isBoolLiteral(raw[i+1]) {
				a[k] = raw[i+1] == "true"
				i++
				continue
			}
			a[k] = true
		case strings.HasPrefix(tok, "-") && len(tok) > 1:
			for _, r := range tok[1:] {
				a[string(r)] = true
			}
		default:
			positional = append(positional, tok)
		}
	}

	a[PositionalKey] = positional
	if positional == nil {
		a[PositionalKey] = []string{}
	}
	return a
}

func isBoolLiteral(s string) bool {
	return s == "true" || s == "false"
}

func coerce(v string) any {
	if isBoolLiteral(v) {
		return v == "true"
	}
	return v
}
