package core

import (
	"errors"
	"fmt"
	"strings"
)

// Common errors.
var (
	ErrNotFound         = errors.New("not found")
	ErrCollision        = errors.New("page identifier collision")
	ErrTraversal        = errors.New("traversal error")
	ErrInvariant        = errors.New("invariant violation")
	ErrInvalidPattern   = errors.New("invalid page pattern")
	ErrInvalidMode      = errors.New("invalid build mode")
	ErrInvalidPage      = errors.New("invalid page")
	ErrWatchUnsupported = errors.New("source does not support watching")
)

// Collision lists every source path that derived the same identifier.
type Collision struct {
	ID    PageID
	Paths []string
}

// CollisionError is returned when two or more page modules derive the same
// identifier. It reports all of them.
type CollisionError struct {
	Collisions []Collision
}

func (e *CollisionError) Error() string {
	var b strings.Builder
	b.WriteString(ErrCollision.Error())
	for i, c := range e.Collisions {
		if i == 0 {
			b.WriteString(": ")
		} else {
			b.WriteString("; ")
		}
		fmt.Fprintf(&b, "%q <- %s", c.ID, strings.Join(c.Paths, ", "))
	}
	return b.String()
}

func (e *CollisionError) Is(target error) bool {
	return target == ErrCollision
}

// TraversalError reports a pathological directory structure, such as a
// symlink cycle or a tree deeper than the configured bound.
type TraversalError struct {
	Path   string
	Reason string
}

func (e *TraversalError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrTraversal, e.Path, e.Reason)
}

func (e *TraversalError) Is(target error) bool {
	return target == ErrTraversal
}

// InvariantError means synthesis produced misaligned outputs.
// It indicates a bug and must never be swallowed.
type InvariantError struct {
	Detail string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("%s: %s", ErrInvariant, e.Detail)
}

func (e *InvariantError) Is(target error) bool {
	return target == ErrInvariant
}
