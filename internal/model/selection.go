package model

import (
	"errors"
	"fmt"
	"strings"
)

const (
	MaxSelections        = 5
	IngredientsDelimiter = ", "
)

var (
	ErrTooManySelections  = fmt.Errorf("choose up to %d ingredients", MaxSelections)
	ErrDuplicateSelection = errors.New("ingredient already selected")
	ErrBlankSelection     = errors.New("ingredient name is blank")
)

// Selection is an ordered set of at most MaxSelections fruit names.
// The zero value is an empty selection.
type Selection struct {
	names []string
}

func NewSelection(names ...string) (Selection, error) {
	var s Selection
	for _, name := range names {
		if err := s.Add(name); err != nil {
			return Selection{}, err
		}
	}
	return s, nil
}

// Add appends name. The selection is left unchanged when an error is returned.
func (s *Selection) Add(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrBlankSelection
	}
	for _, existing := range s.names {
		if existing == name {
			return fmt.Errorf("%w: %s", ErrDuplicateSelection, name)
		}
	}
	if len(s.names) >= MaxSelections {
		return ErrTooManySelections
	}
	s.names = append(s.names, name)
	return nil
}

func (s Selection) Names() []string {
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}

func (s Selection) Len() int {
	return len(s.names)
}

func (s Selection) Empty() bool {
	return len(s.names) == 0
}

// Ingredients is the value stored in orders.ingredients.
func (s Selection) Ingredients() string {
	return strings.Join(s.names, IngredientsDelimiter)
}

// ParseIngredients reverses Selection.Ingredients.
func ParseIngredients(ingredients string) []string {
	if ingredients == "" {
		return []string{}
	}
	return strings.Split(ingredients, IngredientsDelimiter)
}
