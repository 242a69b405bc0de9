package errors

import (
	multierror "github.com/hashicorp/go-multierror"
)

// multi is implemented by errors that club together several other errors.
type multi interface {
	error
	WrappedErrors() []error
}

// Append clubs together all provided errors. Nil values are ignored.
//
// If no error is provided or all of them are nil, nil is returned. A single
// non nil error is returned as it is.
func Append(errs ...error) error {
	var nonnil []error
	for _, err := range errs {
		if isNilErr(err) {
			continue
		}
		if m, ok := err.(multi); ok {
			nonnil = append(nonnil, m.WrappedErrors()...)
			continue
		}
		nonnil = append(nonnil, err)
	}

	switch len(nonnil) {
	case 0:
		return nil
	case 1:
		return nonnil[0]
	default:
		return multierror.Append(nil, nonnil...)
	}
}
