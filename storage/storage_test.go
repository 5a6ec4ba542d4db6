package storage

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStores(t *testing.T) map[string]Store {
	t.Helper()

	badger, err := NewBadgerStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { badger.Close() })

	return map[string]Store{
		"memory": NewMemoryStore(),
		"badger": badger,
	}
}

func TestStoreCreateGetList(t *testing.T) {
	ctx := context.Background()

	for name, store := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			first := &Record{Content: "First article."}
			second := &Record{Content: "Second article."}
			require.NoError(t, store.Create(ctx, first))
			require.NoError(t, store.Create(ctx, second))

			assert.Equal(t, uint64(1), first.ID)
			assert.Equal(t, uint64(2), second.ID)
			assert.False(t, first.CreatedAt.IsZero())

			got, err := store.Get(ctx, second.ID)
			require.NoError(t, err)
			assert.Equal(t, "Second article.", got.Content)
			assert.Equal(t, second.ID, got.ID)
			assert.Nil(t, got.ReadabilityScore)
			assert.Nil(t, got.SEOScore)
			assert.Nil(t, got.KeywordDensity)
			assert.Nil(t, got.SuggestedKeywords)

			all, err := store.List(ctx)
			require.NoError(t, err)
			require.Len(t, all, 2)
			assert.Equal(t, uint64(1), all[0].ID)
			assert.Equal(t, uint64(2), all[1].ID)

			_, err = store.Get(ctx, 99)
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestMemoryStoreReturnsCopies(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	rec := &Record{Content: "original"}
	require.NoError(t, store.Create(ctx, rec))
	rec.Content = "mutated by caller"

	got, err := store.Get(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, "original", got.Content)
}

func TestBadgerStoreResumesIDs(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	store, err := NewBadgerStore(dir)
	require.NoError(t, err)
	for _, content := range []string{"a", "b", "c"} {
		require.NoError(t, store.Create(ctx, &Record{Content: content}))
	}
	require.NoError(t, store.Close())

	reopened, err := NewBadgerStore(dir)
	require.NoError(t, err)
	defer reopened.Close()

	rec := &Record{Content: "d"}
	require.NoError(t, reopened.Create(ctx, rec))
	assert.Equal(t, uint64(4), rec.ID)

	all, err := reopened.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 4)
}

func TestMemoryStoreConcurrentCreate(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, store.Create(ctx, &Record{Content: "x"}))
		}()
	}
	wg.Wait()

	all, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 50)
	for i, rec := range all {
		assert.Equal(t, uint64(i+1), rec.ID)
	}
}
