// Package latex escapes arbitrary values for literal rendering in LaTeX source.
package latex

import (
	"fmt"
	"strings"
)

// nullable is implemented by cell values that carry a missing marker.
type nullable interface {
	IsNull() bool
}

// replacements maps each reserved character to its literal-rendering sequence.
// Backslash comes first: the "{}" it introduces must never be re-escaped.
var replacements = []struct {
	char byte
	seq  string
}{
	{'\\', `\textbackslash{}`},
	{'&', `\&`},
	{'%', `\%`},
	{'$', `\$`},
	{'#', `\#`},
	{'_', `\_`},
	{'{', `\{`},
	{'}', `\}`},
	{'~', `\textasciitilde{}`},
	{'^', `\textasciicircum{}`},
}

// Escape converts v to a string that renders literally in LaTeX.
//
// nil and Null cell values become "". Other non-strings are converted with
// their String method or fmt.Sprint first. Reserved characters are replaced in
// a single left-to-right scan, so sequences produced for one character are
// never touched by a later substitution. Newlines collapse to a space and the
// result is trimmed.
func Escape(v any) string {
	s := stringify(v)
	if s == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(s) + len(s)/4)

	// Reserved characters are all ASCII, so a byte scan leaves UTF-8 intact.
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case '\r':
			if i+1 < len(s) && s[i+1] == '\n' {
				i++
			}
			b.WriteByte(' ')
		case '\n':
			b.WriteByte(' ')
		default:
			if seq, ok := lookup(c); ok {
				b.WriteString(seq)
			} else {
				b.WriteByte(c)
			}
		}
	}

	return strings.TrimSpace(b.String())
}

func lookup(c byte) (string, bool) {
	for _, rep := range replacements {
		if rep.char == c {
			return rep.seq, true
		}
	}
	return "", false
}

func stringify(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case nullable:
		if x.IsNull() {
			return ""
		}
		if s, ok := v.(fmt.Stringer); ok {
			return s.String()
		}
		return fmt.Sprint(v)
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(v)
	}
}
