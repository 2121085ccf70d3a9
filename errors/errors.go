// The errors package provides additional error primitives.
//
// The decoders of this module separate fatal errors from warnings. Warnings
// are collected into an Errors list while decoding continues, and are handed
// to the caller alongside the result.
package errors

import (
	"errors"
	"strconv"
	"strings"
)

func New(text string) error {
	return errors.New(text)
}

func Unwrap(err error) error {
	return errors.Unwrap(err)
}

func Is(err, target error) bool {
	return errors.Is(err, target)
}

func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Errors is a list of errors.
type Errors []error

// Error formats the list with one message per line, after a line holding the
// number of errors. Lines within a message are indented along with it.
func (errs Errors) Error() string {
	switch len(errs) {
	case 0:
		return "no errors"
	case 1:
		return errs[0].Error()
	}
	var buf strings.Builder
	buf.WriteString(strconv.Itoa(len(errs)))
	buf.WriteString(" errors:")
	for _, err := range errs {
		buf.WriteString("\n\t")
		buf.WriteString(strings.ReplaceAll(err.Error(), "\n", "\n\t"))
	}
	return buf.String()
}

// Is reports whether any error in the list matches target.
func (errs Errors) Is(target error) bool {
	for _, err := range errs {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// As finds the first error in the list that matches target.
func (errs Errors) As(target interface{}) bool {
	for _, err := range errs {
		if errors.As(err, target) {
			return true
		}
	}
	return false
}

// Append returns errs with each err appended to it. Arguments that are nil are
// skipped.
func (errs Errors) Append(err ...error) Errors {
	for _, err := range err {
		if err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}

// Return prepares errs to be returned by a function by returning nil if errs is
// empty.
func (errs Errors) Return() error {
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// Union receives a number of errors and combines them into one Errors. Any errs
// that are Errors are concatenated directly. Returns nil if all errs are nil or
// empty.
func Union(errs ...error) error {
	var e Errors
	for _, err := range errs {
		switch err := err.(type) {
		case nil:
			continue
		case Errors:
			for _, err := range err {
				if err != nil {
					e = append(e, err)
				}
			}
		default:
			e = append(e, err)
		}
	}
	return e.Return()
}

// Count returns the number of errors held by err. An Errors counts each of
// its elements, nil counts as zero, and any other error counts as one.
func Count(err error) int {
	switch err := err.(type) {
	case nil:
		return 0
	case Errors:
		return len(err)
	default:
		return 1
	}
}
