// Package navigation defines the client-visible paths and the capabilities
// controllers use to leave a screen or ask the user for confirmation.
package navigation

import (
	"context"
	"net/url"
)

const (
	ListPath    = "/"
	AddPath     = "/add"
	EditPattern = "/edit/:jmbg"
)

// EditPath is the edit form for the person with the given identity number.
func EditPath(jmbg string) string {
	return "/edit/" + url.PathEscape(jmbg)
}

// Navigator moves the user to another route.
type Navigator interface {
	Navigate(path string)
}

// Recorder is a Navigator that remembers the last requested path.
type Recorder struct {
	Path string
}

func (r *Recorder) Navigate(path string) {
	r.Path = path
}

// Navigated reports whether Navigate was called.
func (r *Recorder) Navigated() bool {
	return r.Path != ""
}

// Confirmer asks the user to confirm a destructive action.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) bool
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(ctx context.Context, prompt string) bool

func (f ConfirmFunc) Confirm(ctx context.Context, prompt string) bool {
	return f(ctx, prompt)
}

// Always answers every prompt with answer.
func Always(answer bool) Confirmer {
	return ConfirmFunc(func(context.Context, string) bool { return answer })
}
