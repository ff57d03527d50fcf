package render

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
)

// ErrRender indicates a template failed to parse or execute.
var ErrRender = errors.New("template rendering failed")

// Error describes a template failure. Line is 0 when the underlying error
// carries no position.
type Error struct {
	Template string
	Line     int
	Err      error
}

func (e *Error) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("rendering %s (line %d): %v", e.Template, e.Line, e.Err)
	}
	return fmt.Sprintf("rendering %s: %v", e.Template, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is ErrRender.
func (e *Error) Is(target error) bool { return target == ErrRender }

// Both template packages format positions as "template: NAME:LINE[:COL]: ...".
var lineRe = regexp.MustCompile(`template: [^:]*:(\d+)`)

func newError(name string, err error) *Error {
	e := &Error{Template: name, Err: err}
	if m := lineRe.FindStringSubmatch(err.Error()); m != nil {
		e.Line, _ = strconv.Atoi(m[1])
	}
	return e
}
