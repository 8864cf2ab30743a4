package view

import (
	"context"
	"errors"
	"sync"
)

type FormState int

const (
	FormClosed FormState = iota
	FormOpen
	FormSubmitting
)

func (s FormState) String() string {
	switch s {
	case FormClosed:
		return "closed"
	case FormOpen:
		return "open"
	default:
		return "submitting"
	}
}

var ErrFormNotOpen = errors.New("form is not open")

// Form is the modal dialog state machine: Closed -> Open(draft) ->
// Submitting -> Closed. The draft never touches the store until Submit,
// and Submitting blocks re-entry so no two mutations from one dialog can
// be in flight at once. The same machine backs destructive-action
// confirmations: open with the target as draft, submit performs the
// delete.
type Form[T any] struct {
	mu       sync.Mutex
	state    FormState
	draft    T
	err      error
	validate func(T) error
	save     func(context.Context, T) error
	onSaved  func()
}

// NewForm wires the local validator, the save action and the hook fired
// after a successful save (typically Synchronizer.Refresh). validate and
// onSaved may be nil.
func NewForm[T any](validate func(T) error, save func(context.Context, T) error, onSaved func()) *Form[T] {
	return &Form[T]{
		state:    FormClosed,
		validate: validate,
		save:     save,
		onSaved:  onSaved,
	}
}

// Open seeds the draft: the zero value for "add", a copy of the existing
// record for "edit". Opening an already-open form replaces the draft.
func (f *Form[T]) Open(draft T) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state == FormSubmitting {
		return
	}
	f.state = FormOpen
	f.draft = draft
	f.err = nil
}

// Update mutates the draft in place. Field edits never write through.
func (f *Form[T]) Update(edit func(*T)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state != FormOpen {
		return
	}
	edit(&f.draft)
}

// Submit validates the draft, runs the save action and closes on
// success. On any failure the form returns to Open with the error
// surfaced so the user can correct and resubmit.
func (f *Form[T]) Submit(ctx context.Context) error {
	f.mu.Lock()
	if f.state != FormOpen {
		f.mu.Unlock()
		return ErrFormNotOpen
	}
	draft := f.draft
	if f.validate != nil {
		if err := f.validate(draft); err != nil {
			f.err = err
			f.mu.Unlock()
			return err
		}
	}
	f.state = FormSubmitting
	f.err = nil
	f.mu.Unlock()

	err := f.save(ctx, draft)

	f.mu.Lock()
	if err != nil {
		f.state = FormOpen
		f.err = err
		f.mu.Unlock()
		return err
	}
	f.state = FormClosed
	var zero T
	f.draft = zero
	f.mu.Unlock()

	if f.onSaved != nil {
		f.onSaved()
	}
	return nil
}

// Close discards the draft unconditionally. A no-op while submitting.
func (f *Form[T]) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state == FormSubmitting {
		return
	}
	f.state = FormClosed
	var zero T
	f.draft = zero
	f.err = nil
}

func (f *Form[T]) State() FormState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

func (f *Form[T]) Draft() T {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.draft
}

func (f *Form[T]) Err() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.err
}
