package model

import (
	"errors"
	"fmt"
)

// Category is the classification label assigned to a question
type Category string

const (
	CategoryFactual Category = "factual" // Facts, data, definitions, objective information
	CategoryOpinion Category = "opinion" // Subjective views, preferences, judgments
	CategoryMath    Category = "math"    // Calculations and numerical operations
)

// ErrUnknownCategory is returned when a label is not one of the three categories
var ErrUnknownCategory = errors.New("unknown category")

// Categories returns the recognized categories in canonical order
func Categories() []Category {
	return []Category{CategoryFactual, CategoryOpinion, CategoryMath}
}

// ParseCategory converts a label into a Category. Only the exact lowercase
// names are accepted.
func ParseCategory(s string) (Category, error) {
	switch Category(s) {
	case CategoryFactual:
		return CategoryFactual, nil
	case CategoryOpinion:
		return CategoryOpinion, nil
	case CategoryMath:
		return CategoryMath, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownCategory, s)
	}
}

// Valid reports whether c is one of the recognized categories
func (c Category) Valid() bool {
	switch c {
	case CategoryFactual, CategoryOpinion, CategoryMath:
		return true
	}
	return false
}

func (c Category) String() string {
	return string(c)
}
