package gc

import (
	"sync"
	"testing"

	"github.com/hupe1980/querycache/model"
	"github.com/stretchr/testify/assert"
)

func TestCollectorFunc(t *testing.T) {
	var got []model.DocumentKey
	var c Collector = CollectorFunc(func(k model.DocumentKey) { got = append(got, k) })

	c.AddPotentialGarbageKey(model.MustDocumentKey("a/1"))
	assert.Equal(t, []model.DocumentKey{model.MustDocumentKey("a/1")}, got)
}

func TestCandidateSet_DedupsAndDrains(t *testing.T) {
	c := NewCandidateSet()
	c.AddPotentialGarbageKey(model.MustDocumentKey("b/2"))
	c.AddPotentialGarbageKey(model.MustDocumentKey("a/1"))
	c.AddPotentialGarbageKey(model.MustDocumentKey("b/2"))
	assert.Equal(t, 2, c.Len())

	drained := c.Drain()
	assert.Equal(t, []model.DocumentKey{
		model.MustDocumentKey("a/1"),
		model.MustDocumentKey("b/2"),
	}, drained.Slice())
	assert.Equal(t, 0, c.Len())
	assert.True(t, c.Drain().IsEmpty())
}

func TestCandidateSet_Concurrent(t *testing.T) {
	c := NewCandidateSet()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				c.AddPotentialGarbageKey(model.MustDocumentKey("docs/shared"))
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, c.Len())
}
