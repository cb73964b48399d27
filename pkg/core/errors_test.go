package core

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestCollisionError_ListsAllPaths(t *testing.T) {
	err := CheckUnique([]Page{
		{ID: "index", Source: "/p/b/index.js"},
		{ID: "index", Source: "/p/a/index.js"},
		{ID: "index", Source: "/p/c/index.js"},
		{ID: "main", Source: "/p/x/main.ts"},
		{ID: "main", Source: "/p/y/main.js"},
	})
	if err == nil {
		t.Fatal("expected collision error")
	}

	msg := err.Error()
	for _, p := range []string{"/p/a/index.js", "/p/b/index.js", "/p/c/index.js", "/p/x/main.ts", "/p/y/main.js"} {
		if !strings.Contains(msg, p) {
			t.Errorf("expected %q in error message, got %q", p, msg)
		}
	}
	if strings.Index(msg, `"index"`) > strings.Index(msg, `"main"`) {
		t.Errorf("expected collisions sorted by identifier, got %q", msg)
	}
}

func TestTypedErrors_Is(t *testing.T) {
	cases := []struct {
		err    error
		target error
	}{
		{&CollisionError{}, ErrCollision},
		{&TraversalError{Path: "/x", Reason: "cycle"}, ErrTraversal},
		{&InvariantError{Detail: "drift"}, ErrInvariant},
	}
	for _, c := range cases {
		wrapped := fmt.Errorf("outer: %w", c.err)
		if !errors.Is(wrapped, c.target) {
			t.Errorf("expected %v to match %v", c.err, c.target)
		}
	}
}

func TestVerify_DetectsDrift(t *testing.T) {
	targets := TargetMap{"a": "/a.js", "b": "/b.js"}

	cases := map[string][]Directive{
		"length mismatch": {newDirective("a", "t")},
		"foreign chunk":   {newDirective("a", "t"), newDirective("c", "t")},
		"duplicate chunk": {newDirective("a", "t"), newDirective("a", "t")},
		"two chunks": {
			newDirective("a", "t"),
			{OutputFilename: "b.html", AllowedChunks: []string{"a", "b"}},
		},
		"wrong filename": {
			newDirective("a", "t"),
			{OutputFilename: "a.html", AllowedChunks: []string{"b"}},
		},
	}

	for name, directives := range cases {
		t.Run(name, func(t *testing.T) {
			err := verify(targets, directives)
			if !errors.Is(err, ErrInvariant) {
				t.Fatalf("expected invariant violation, got %v", err)
			}
		})
	}

	if err := verify(targets, []Directive{newDirective("a", "t"), newDirective("b", "t")}); err != nil {
		t.Fatalf("expected aligned outputs to verify, got %v", err)
	}
}
