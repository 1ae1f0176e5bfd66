package controller

import (
	"errors"
	"fmt"
)

var ErrPlayerNotFound = errors.New("player not found")

// LoadError is returned when the stats file can't be read or is missing a
// required column. Nothing is ranked from a file that fails to load.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("error loading stats: %v", e.Err)
	}
	return fmt.Sprintf("error loading stats from %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// ParseError is returned when a stat that is scored has a value that isn't a number.
type ParseError struct {
	Player string
	Stat   string
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("error parsing %s for %s ('%s'): %v", e.Stat, e.Player, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// NotFoundError names the player that could not be found. It matches
// ErrPlayerNotFound with errors.Is.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%v: '%s'", ErrPlayerNotFound, e.Name)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrPlayerNotFound
}
