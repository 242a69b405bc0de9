package errors

import (
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
)

type stackTracer interface {
	error
	StackTrace() errors.StackTrace
}

// stackTrace returns the first found stack trace frame carried by given error
// or any wrapped error. It returns nil if no stack trace is found.
func stackTrace(err error) errors.StackTrace {
	for {
		if st, ok := err.(stackTracer); ok {
			return st.StackTrace()
		}
		if c, ok := err.(causer); ok {
			err = c.Cause()
		} else {
			return nil
		}
	}
}

// trimInternal removes frames that belong to the wrapping helpers of this
// package and the runtime, so that the stack starts at the caller.
func trimInternal(st errors.StackTrace) errors.StackTrace {
	for len(st) > 0 && matchesFunc(st[0], wrappingFuncs...) {
		st = st[1:]
	}
	for len(st) > 0 && matchesFunc(st[len(st)-1], "runtime.") {
		st = st[:len(st)-1]
	}
	return st
}

// wrappingFuncs lists the functions of this package that create a stack trace
// on behalf of the caller.
var wrappingFuncs = []string{
	"github.com/iov-one/custody/errors.Wrap\n",
	"github.com/iov-one/custody/errors.Wrapf\n",
	"github.com/iov-one/custody/errors.WithType\n",
	"github.com/iov-one/custody/errors.Recover\n",
}

func matchesFunc(f errors.Frame, prefixes ...string) bool {
	name := fmt.Sprintf("%+s", f)
	for _, p := range prefixes {
		if strings.HasPrefix(name, p) {
			return true
		}
	}
	return false
}

// Format works like the pkg/errors formatting with the addition of a
// compressed %v form.
//
//   %s    is just the error message
//   %+v   is the full stack trace
//   %v    appends a compressed [filename:line] where the error was created
func (e *wrappedError) Format(s fmt.State, verb rune) {
	// normal output here....
	if verb != 'v' {
		fmt.Fprint(s, e.Error())
		return
	}
	st := stackTrace(e)
	if st == nil {
		fmt.Fprint(s, e.Error())
		return
	}
	st = trimInternal(st)
	if s.Flag('+') {
		io.WriteString(s, e.Error())
		fmt.Fprintf(s, "%+v", st)
		return
	}
	if len(st) == 0 {
		fmt.Fprint(s, e.Error())
		return
	}
	fmt.Fprintf(s, "%s [%s:%d]", e.Error(), st[0], st[0])
}
