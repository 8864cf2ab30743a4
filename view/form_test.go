package view

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type draft struct {
	Name string
}

func TestFormSubmitRequiresOpen(t *testing.T) {
	f := NewForm[draft](nil, func(ctx context.Context, d draft) error { return nil }, nil)

	err := f.Submit(context.Background())

	assert.ErrorIs(t, err, ErrFormNotOpen)
	assert.Equal(t, FormClosed, f.State())
}

func TestFormHappyPath(t *testing.T) {
	var saved draft
	refreshed := false
	f := NewForm(
		func(d draft) error {
			if d.Name == "" {
				return errors.New("name required")
			}
			return nil
		},
		func(ctx context.Context, d draft) error {
			saved = d
			return nil
		},
		func() { refreshed = true },
	)

	f.Open(draft{})
	f.Update(func(d *draft) { d.Name = "Forest Rally" })

	require.NoError(t, f.Submit(context.Background()))

	assert.Equal(t, FormClosed, f.State())
	assert.Equal(t, "Forest Rally", saved.Name)
	assert.True(t, refreshed, "a successful save triggers the refresh hook")
	assert.Empty(t, f.Draft().Name, "draft is discarded after save")
}

func TestFormValidationFailureStaysOpen(t *testing.T) {
	saves := 0
	f := NewForm(
		func(d draft) error {
			if d.Name == "" {
				return errors.New("name required")
			}
			return nil
		},
		func(ctx context.Context, d draft) error {
			saves++
			return nil
		},
		nil,
	)

	f.Open(draft{})

	err := f.Submit(context.Background())

	require.Error(t, err)
	assert.Equal(t, FormOpen, f.State(), "the user corrects and resubmits")
	assert.Equal(t, err, f.Err())
	assert.Zero(t, saves, "invalid drafts never reach the store")

	f.Update(func(d *draft) { d.Name = "Forest Rally" })
	require.NoError(t, f.Submit(context.Background()))
	assert.Equal(t, 1, saves)
}

func TestFormSaveFailureReturnsToOpen(t *testing.T) {
	saveErr := errors.New("store unavailable")
	refreshed := false
	f := NewForm[draft](nil,
		func(ctx context.Context, d draft) error { return saveErr },
		func() { refreshed = true },
	)

	f.Open(draft{Name: "Forest Rally"})

	err := f.Submit(context.Background())

	assert.ErrorIs(t, err, saveErr)
	assert.Equal(t, FormOpen, f.State())
	assert.Equal(t, "Forest Rally", f.Draft().Name, "the draft survives a failed save")
	assert.False(t, refreshed)
}

func TestFormCloseDiscardsDraft(t *testing.T) {
	f := NewForm[draft](nil, func(ctx context.Context, d draft) error { return nil }, nil)

	f.Open(draft{Name: "Forest Rally"})
	f.Close()

	assert.Equal(t, FormClosed, f.State())
	assert.Empty(t, f.Draft().Name)
}

func TestFormSubmittingBlocksReentry(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	saves := 0
	f := NewForm[draft](nil, func(ctx context.Context, d draft) error {
		saves++
		close(started)
		<-release
		return nil
	}, nil)

	f.Open(draft{Name: "Forest Rally"})

	done := make(chan error)
	go func() { done <- f.Submit(context.Background()) }()
	<-started

	assert.Equal(t, FormSubmitting, f.State())
	assert.ErrorIs(t, f.Submit(context.Background()), ErrFormNotOpen, "no second mutation while one is in flight")
	f.Close()
	assert.Equal(t, FormSubmitting, f.State(), "close is ignored while submitting")

	close(release)
	require.NoError(t, <-done)
	assert.Equal(t, 1, saves)
	assert.Equal(t, FormClosed, f.State())
}

func TestFormUpdateIgnoredWhenClosed(t *testing.T) {
	f := NewForm[draft](nil, func(ctx context.Context, d draft) error { return nil }, nil)

	f.Update(func(d *draft) { d.Name = "ghost" })

	assert.Empty(t, f.Draft().Name)
}
