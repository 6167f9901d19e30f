package service

import (
	"errors"
	"fmt"

	"smoothies/internal/model"
)

var (
	ErrDataSourceUnavailable = errors.New("fruit options are unavailable")
	ErrLookupKeyMissing      = errors.New("no search key")
	ErrLookupTransport       = errors.New("nutrition request failed")
	ErrLookupStatus          = errors.New("nutrition service returned an error")
	ErrLookupParse           = errors.New("nutrition response is not valid JSON")
	ErrEmptyName             = errors.New("name on order is required")
	ErrEmptySelection        = errors.New("choose at least one ingredient")
	ErrUnknownFruit          = errors.New("unknown fruit")
	ErrSubmissionFailed      = errors.New("order submission failed")
	ErrOrderNotFound         = errors.New("order not found")
	ErrSubmitInProgress      = errors.New("order is already being submitted")

	ErrTooManySelections = model.ErrTooManySelections
)

// FruitError scopes a failure to a single selected fruit.
type FruitError struct {
	Fruit string
	Err   error
}

func (e *FruitError) Error() string {
	return fmt.Sprintf("%s: %v", e.Fruit, e.Err)
}

func (e *FruitError) Unwrap() error {
	return e.Err
}

// IsPrecondition reports whether err blocks a submission before any write.
func IsPrecondition(err error) bool {
	return errors.Is(err, ErrEmptyName) ||
		errors.Is(err, ErrEmptySelection) ||
		errors.Is(err, ErrTooManySelections) ||
		errors.Is(err, ErrUnknownFruit) ||
		errors.Is(err, model.ErrDuplicateSelection) ||
		errors.Is(err, model.ErrBlankSelection)
}
