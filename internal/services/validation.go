package services

import (
	"errors"
	"strings"

	"github.com/hashicorp/go-multierror"
)

// ValidationError lists every problem found in a request.
type ValidationError struct {
	errs *multierror.Error
}

func (e *ValidationError) Error() string {
	if e == nil || e.errs == nil {
		return "validation failed"
	}
	return e.errs.Error()
}

func (e *ValidationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.errs.ErrorOrNil()
}

type validator struct {
	errs *multierror.Error
}

func (v *validator) required(field, value string) {
	if strings.TrimSpace(value) == "" {
		v.add(field + " is required")
	}
}

func (v *validator) check(ok bool, msg string) {
	if !ok {
		v.add(msg)
	}
}

func (v *validator) add(msg string) {
	v.errs = multierror.Append(v.errs, errors.New(msg))
	v.errs.ErrorFormat = joinMessages
}

func (v *validator) err() error {
	if v.errs.ErrorOrNil() == nil {
		return nil
	}
	return &ValidationError{errs: v.errs}
}

func joinMessages(errs []error) string {
	msgs := make([]string, len(errs))
	for i, err := range errs {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "; ")
}
