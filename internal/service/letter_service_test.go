package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/haierkeys/keepsake-service/internal/domain"
	"github.com/haierkeys/keepsake-service/pkg/code"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLetterCreateSignature(t *testing.T) {
	properties := gopter.NewProperties(gopter.DefaultTestParameters())

	properties.Property("signature is kept or defaulted", prop.ForAll(
		func(title, content, sig string) bool {
			svc := NewLetterService(&memLetterRepo{}, nil)
			l, err := svc.Create(context.Background(), &LetterParams{Title: title, Content: content, Signature: sig})
			if err != nil {
				return false
			}
			if sig == "" {
				return l.Signature == domain.DefaultSignature
			}
			return l.Signature == sig || (l.Signature == domain.DefaultSignature && isBlank(sig))
		},
		gen.AlphaString(),
		gen.AlphaString(),
		gen.OneGenOf(gen.Const(""), gen.Const("   "), gen.AlphaString()),
	))

	properties.TestingRun(t)
}

func isBlank(s string) bool {
	for _, r := range s {
		if r != ' ' && r != '\t' && r != '\n' {
			return false
		}
	}
	return true
}

func TestLetterListCreatesDefaultOnce(t *testing.T) {
	repo := &memLetterRepo{}
	svc := NewLetterService(repo, nil)
	ctx := context.Background()

	first, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.Equal(t, domain.DefaultLetterTitle, first[0].Title)
	assert.Equal(t, domain.DefaultLetterContent, first[0].Content)
	assert.Equal(t, domain.DefaultSignature, first[0].Signature)

	second, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, second, 1)
	assert.Equal(t, first[0].ID, second[0].ID)

	byDefault, err := svc.Get(ctx, domain.DefaultLetterID)
	require.NoError(t, err)
	assert.Equal(t, first[0].ID, byDefault.ID)
	assert.Equal(t, 1, repo.creates)
}

func TestLetterDefaultConcurrentFirstAccess(t *testing.T) {
	repo := &memLetterRepo{lookupDelay: 5 * time.Millisecond}
	svc := NewLetterService(repo, nil)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			var err error
			if i%2 == 0 {
				_, err = svc.List(ctx)
			} else {
				_, err = svc.Get(ctx, domain.DefaultLetterID)
			}
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
	assert.Equal(t, 1, repo.creates)
}

func TestLetterGetDefaultFindsExisting(t *testing.T) {
	repo := &memLetterRepo{}
	existing, _ := repo.Create(context.Background(), &domain.Letter{Title: domain.DefaultLetterTitle, Content: "edited"})
	repo.creates = 0

	svc := NewLetterService(repo, nil)
	l, err := svc.Get(context.Background(), "default")
	require.NoError(t, err)
	assert.Equal(t, existing.ID, l.ID)
	assert.Equal(t, "edited", l.Content)
	assert.Equal(t, 0, repo.creates)
}

func TestLetterUpdate(t *testing.T) {
	repo := &memLetterRepo{}
	svc := NewLetterService(repo, nil).(*letterService)
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	edited := created.Add(24 * time.Hour)
	svc.now = func() time.Time { return created }

	ctx := context.Background()
	l, err := svc.Create(ctx, &LetterParams{Title: "t", Content: "c", Signature: "me"})
	require.NoError(t, err)

	tests := []struct {
		name   string
		params LetterParams
	}{
		{"empty title", LetterParams{Title: "", Content: "x"}},
		{"blank content", LetterParams{Title: "x", Content: "  "}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := tt.params
			_, err := svc.Update(ctx, l.ID, &params)
			assert.ErrorIs(t, err, code.ErrorLetterInvalid)

			stored, err := repo.GetByID(ctx, l.ID)
			require.NoError(t, err)
			assert.Equal(t, "t", stored.Title)
			assert.Equal(t, "c", stored.Content)
			assert.True(t, stored.Date.Equal(created))
		})
	}

	svc.now = func() time.Time { return edited }
	updated, err := svc.Update(ctx, l.ID, &LetterParams{Title: "t2", Content: "c2"})
	require.NoError(t, err)
	assert.Equal(t, "t2", updated.Title)
	assert.Equal(t, domain.DefaultSignature, updated.Signature)
	assert.True(t, updated.Date.Equal(edited))

	_, err = svc.Update(ctx, "missing", &LetterParams{Title: "a", Content: "b"})
	assert.ErrorIs(t, err, code.ErrorLetterNotFound)
}

func TestLetterGetAndDeleteNotFound(t *testing.T) {
	svc := NewLetterService(&memLetterRepo{}, nil)
	ctx := context.Background()

	_, err := svc.Get(ctx, "nope")
	assert.ErrorIs(t, err, code.ErrorLetterNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, "nope"), code.ErrorLetterNotFound)

	l, err := svc.Create(ctx, &LetterParams{Title: "a", Content: "b"})
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, l.ID))
	_, err = svc.Get(ctx, l.ID)
	assert.ErrorIs(t, err, code.ErrorLetterNotFound)
}
