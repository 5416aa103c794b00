package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/dropsearch/internal/core/domain"
)

func TestSearch_EmptyTermIsInvalid(t *testing.T) {
	s := NewSearchService(newMockIndex())

	for _, term := range []string{"", "   ", "\t\n"} {
		_, err := s.Search(context.Background(), term, 0)
		assert.ErrorIs(t, err, domain.ErrInvalidQuery, "term %q", term)
	}
}

func TestSearch_ReturnsHitsInEngineOrder(t *testing.T) {
	index := newMockIndex()
	index.searchRes = []domain.SearchHit{
		{Filename: "best.txt", Score: 2.5, Excerpt: "the <mark>term</mark> here"},
		{Filename: "second.txt", Score: 1.1},
	}

	s := NewSearchService(index)
	hits, err := s.Search(context.Background(), "term", 10)

	require.NoError(t, err)
	require.Len(t, hits, 2)
	// Engine rank order is preserved, not re-sorted.
	assert.Equal(t, "best.txt", hits[0].Filename)
	assert.Equal(t, "second.txt", hits[1].Filename)
}

func TestSearch_EngineFailurePropagates(t *testing.T) {
	index := newMockIndex()
	index.searchErr = errors.New("index corrupted")

	s := NewSearchService(index)
	_, err := s.Search(context.Background(), "term", 0)

	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrInvalidQuery)
}

func TestSearch_NilIndexUnavailable(t *testing.T) {
	s := NewSearchService(nil)

	_, err := s.Search(context.Background(), "term", 0)
	assert.ErrorIs(t, err, domain.ErrIndexUnavailable)
}

func TestSearch_HitFieldsPassThrough(t *testing.T) {
	mod := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	index := newMockIndex()
	index.searchRes = []domain.SearchHit{{
		Filename:     "note.txt",
		URL:          "https://dl.dropboxusercontent.com/s/abc",
		LastModified: mod,
		Score:        0.7,
		Excerpt:      "a <mark>hello</mark> excerpt",
	}}

	s := NewSearchService(index)
	hits, err := s.Search(context.Background(), "hello", 0)

	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "note.txt", hits[0].Filename)
	assert.Equal(t, mod, hits[0].LastModified)
	assert.Greater(t, hits[0].Score, 0.0)
	assert.Contains(t, hits[0].Excerpt, "<mark>hello</mark>")
}
