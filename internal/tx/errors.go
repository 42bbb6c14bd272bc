package tx

import (
	"errors"
	"fmt"

	"github.com/dmitrijs2005/walletcore/internal/common"
)

var (
	errMissing    = errors.New("missing")
	errUnknownKey = errors.New("unknown key")
)

// FieldError reports a field of a transaction that failed validation. Field
// is a path such as "inputs[1].sequence". It matches common.ErrInvalidField
// as well as the underlying cause.
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("invalid field %q: %v", e.Field, e.Err)
}

func (e *FieldError) Unwrap() []error {
	return []error{common.ErrInvalidField, e.Err}
}

func fieldErr(field string, err error) error {
	var fe *FieldError
	if errors.As(err, &fe) {
		return err
	}
	return &FieldError{Field: field, Err: err}
}

func constructionErr(err error) error {
	return fmt.Errorf("%w: %w", common.ErrConstruction, err)
}
