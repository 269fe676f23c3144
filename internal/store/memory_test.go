package store

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrSnakeDoc/homey/internal/domain"
)

func makeDocument(tag string, n int) domain.Document {
	doc := domain.Document{Title: tag, Links: make([]domain.Link, n)}
	for i := range doc.Links {
		doc.Links[i] = domain.Link{
			Name: fmt.Sprintf("%s-%d", tag, i),
			URL:  fmt.Sprintf("http://%s/%d", tag, i),
		}
	}
	return doc
}

func TestNewConfigStore(t *testing.T) {
	initial := makeDocument("boot", 2)
	s := NewConfigStore(initial)

	assert.Equal(t, initial, s.Read())
	assert.Equal(t, 2, s.Count())
	assert.Zero(t, s.Revision())
	assert.True(t, s.LastReplaced().IsZero())
	assert.False(t, s.LoadedAt().IsZero())
}

func TestReplace(t *testing.T) {
	s := NewConfigStore(makeDocument("old", 1))

	next := makeDocument("new", 3)
	s.Replace(next)

	assert.Equal(t, next, s.Read())
	assert.Equal(t, 3, s.Count())
	assert.Equal(t, uint64(1), s.Revision())
	assert.False(t, s.LastReplaced().IsZero())
}

func TestReadReturnsIndependentSnapshot(t *testing.T) {
	s := NewConfigStore(domain.Document{
		Title: "t",
		Links: []domain.Link{{Name: "a", URL: "b", AltName: domain.StringPtr("alt")}},
	})

	snap := s.Read()
	snap.Title = "mutated"
	snap.Links[0].URL = "mutated"
	*snap.Links[0].AltName = "mutated"

	again := s.Read()
	assert.Equal(t, "t", again.Title)
	assert.Equal(t, "b", again.Links[0].URL)
	assert.Equal(t, "alt", *again.Links[0].AltName)
}

func TestReplaceDoesNotAliasCallerDocument(t *testing.T) {
	s := NewConfigStore(makeDocument("old", 1))

	next := makeDocument("new", 1)
	s.Replace(next)
	next.Links[0].Name = "mutated after replace"

	assert.Equal(t, "new-0", s.Read().Links[0].Name)
}

// Every read must observe either the old or the new document in full.
func TestConcurrentReadersSeeWholeDocuments(t *testing.T) {
	const (
		readers = 16
		reads   = 500
		links   = 20
	)

	oldDoc := makeDocument("old", links)
	newDoc := makeDocument("new", links+5)
	s := NewConfigStore(oldDoc)

	var wg sync.WaitGroup
	errs := make(chan string, readers)

	for r := 0; r < readers; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < reads; i++ {
				snap := s.Read()
				var want domain.Document
				switch snap.Title {
				case "old":
					want = oldDoc
				case "new":
					want = newDoc
				default:
					errs <- "unexpected title " + snap.Title
					return
				}
				if !assert.ObjectsAreEqual(want, snap) {
					errs <- "mixed snapshot observed for " + snap.Title
					return
				}
			}
		}()
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 50; i++ {
			if i%2 == 0 {
				s.Replace(newDoc)
			} else {
				s.Replace(oldDoc)
			}
		}
		s.Replace(newDoc)
	}()

	wg.Wait()
	close(errs)

	for msg := range errs {
		t.Error(msg)
	}
	require.Equal(t, newDoc, s.Read())
	assert.Equal(t, uint64(51), s.Revision())
}
