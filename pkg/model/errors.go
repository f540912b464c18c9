package model

import (
	"errors"
	"fmt"
	"strings"
)

// Common sentinel errors
var (
	ErrMultipleRoots = errors.New("model has multiple roots")
	ErrNotATree      = errors.New("model is not a tree")
	ErrEmptyModel    = errors.New("model contains no segments")
	ErrSiteNotFound  = errors.New("site not found in model")
	ErrAmbiguousSite = errors.New("ambiguous site name")
)

// MultipleRootsError lists every parentless site found in the model.
type MultipleRootsError struct {
	Roots []string
}

func (e *MultipleRootsError) Error() string {
	return fmt.Sprintf("model has multiple roots: %s", strings.Join(e.Roots, ", "))
}

func (e *MultipleRootsError) Unwrap() error {
	return ErrMultipleRoots
}

// NotATreeError reports a site with more than one parent or a parent chain
// that never reaches the root.
type NotATreeError struct {
	Site    string
	Parents []string
	Cyclic  bool
}

func (e *NotATreeError) Error() string {
	if e.Cyclic {
		return fmt.Sprintf("model is not a tree: site %q is on a cycle", e.Site)
	}
	return fmt.Sprintf("model is not a tree: site %q has multiple parents: %s",
		e.Site, strings.Join(e.Parents, ", "))
}

func (e *NotATreeError) Unwrap() error {
	return ErrNotATree
}

// LookupError reports a failed or ambiguous site resolution. Candidates is
// populated for the ambiguous case so the caller can show every match.
type LookupError struct {
	Target     string
	Candidates []string
	sentinel   error
}

func (e *LookupError) Error() string {
	if len(e.Candidates) > 0 {
		return fmt.Sprintf("site name %q is ambiguous, candidates: %s",
			e.Target, strings.Join(e.Candidates, ", "))
	}
	return fmt.Sprintf("site %q not found in model", e.Target)
}

func (e *LookupError) Unwrap() error {
	return e.sentinel
}

func notFoundError(target string) error {
	return &LookupError{Target: target, sentinel: ErrSiteNotFound}
}

func ambiguousError(target string, candidates []string) error {
	return &LookupError{Target: target, Candidates: candidates, sentinel: ErrAmbiguousSite}
}
