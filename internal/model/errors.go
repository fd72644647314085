package model

import "errors"

// Error categories shared by every usecase. Package level sentinels wrap one
// of these so delivery layers can map them with errors.Is.
var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("conflict")
	ErrInternal   = errors.New("internal error")
)

// Internal joins err with ErrInternal unless it already carries a category.
func Internal(err error) error {
	if err == nil {
		return nil
	}
	for _, category := range []error{ErrValidation, ErrNotFound, ErrConflict, ErrInternal} {
		if errors.Is(err, category) {
			return err
		}
	}
	return errors.Join(ErrInternal, err)
}
