// Package contracttest holds behaviour every NoteRepository driver must share.
package contracttest

import (
	"context"
	"errors"
	"sync"
	"testing"

	"notes-app/internal/entity"
	"notes-app/internal/repository/contract"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

// RunNoteRepositorySuite exercises repo. newRepo must return an empty store.
func RunNoteRepositorySuite(t *testing.T, newRepo func(t *testing.T) contract.NoteRepository) {
	ctx := context.Background()

	t.Run("create assigns increasing ids", func(t *testing.T) {
		repo := newRepo(t)

		a := &entity.Note{Title: "A", Body: "B"}
		b := &entity.Note{Title: "C", Body: "D"}
		require.NoError(t, repo.Create(ctx, a))
		require.NoError(t, repo.Create(ctx, b))

		assert.Equal(t, int64(1), a.Id)
		assert.Equal(t, int64(2), b.Id)
	})

	t.Run("get returns stored fields", func(t *testing.T) {
		repo := newRepo(t)

		n := &entity.Note{Title: "A", Body: "B"}
		require.NoError(t, repo.Create(ctx, n))

		got, err := repo.FindById(ctx, n.Id)
		require.NoError(t, err)
		assert.Equal(t, "A", got.Title)
		assert.Equal(t, "B", got.Body)
		assert.Equal(t, n.Id, got.Id)
	})

	t.Run("list is empty then insertion ordered", func(t *testing.T) {
		repo := newRepo(t)

		notes, err := repo.FindAll(ctx)
		require.NoError(t, err)
		assert.NotNil(t, notes)
		assert.Empty(t, notes)

		for _, title := range []string{"first", "second", "third"} {
			require.NoError(t, repo.Create(ctx, &entity.Note{Title: title, Body: "x"}))
		}

		notes, err = repo.FindAll(ctx)
		require.NoError(t, err)
		require.Len(t, notes, 3)
		assert.Equal(t, "first", notes[0].Title)
		assert.Equal(t, "second", notes[1].Title)
		assert.Equal(t, "third", notes[2].Title)

		count, err := repo.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(3), count)
	})

	t.Run("update merges supplied fields only", func(t *testing.T) {
		repo := newRepo(t)

		n := &entity.Note{Title: "t", Body: "b"}
		require.NoError(t, repo.Create(ctx, n))

		updated, err := repo.Update(ctx, n.Id, entity.NotePatch{Title: strPtr("t2")})
		require.NoError(t, err)
		assert.Equal(t, "t2", updated.Title)
		assert.Equal(t, "b", updated.Body)
		assert.Equal(t, n.Id, updated.Id)

		updated, err = repo.Update(ctx, n.Id, entity.NotePatch{Extra: map[string]interface{}{"pinned": true}})
		require.NoError(t, err)
		assert.Equal(t, "t2", updated.Title)
		assert.Equal(t, true, updated.Extra["pinned"])

		got, err := repo.FindById(ctx, n.Id)
		require.NoError(t, err)
		assert.Equal(t, "t2", got.Title)
		assert.Equal(t, "b", got.Body)
		assert.Equal(t, true, got.Extra["pinned"])
	})

	t.Run("missing ids report not found", func(t *testing.T) {
		repo := newRepo(t)

		_, err := repo.FindById(ctx, 999)
		assert.True(t, errors.Is(err, contract.ErrNoteNotFound))

		_, err = repo.Update(ctx, 999, entity.NotePatch{Title: strPtr("x")})
		assert.True(t, errors.Is(err, contract.ErrNoteNotFound))

		err = repo.Delete(ctx, 999)
		assert.True(t, errors.Is(err, contract.ErrNoteNotFound))
	})

	t.Run("delete removes and ids are not reused", func(t *testing.T) {
		repo := newRepo(t)

		a := &entity.Note{Title: "a", Body: "a"}
		b := &entity.Note{Title: "b", Body: "b"}
		require.NoError(t, repo.Create(ctx, a))
		require.NoError(t, repo.Create(ctx, b))

		require.NoError(t, repo.Delete(ctx, b.Id))
		_, err := repo.FindById(ctx, b.Id)
		assert.True(t, errors.Is(err, contract.ErrNoteNotFound))

		c := &entity.Note{Title: "c", Body: "c"}
		require.NoError(t, repo.Create(ctx, c))
		assert.Equal(t, int64(3), c.Id)

		assert.True(t, errors.Is(repo.Delete(ctx, b.Id), contract.ErrNoteNotFound))
	})

	t.Run("reset clears records and restarts ids", func(t *testing.T) {
		repo := newRepo(t)

		for i := 0; i < 3; i++ {
			require.NoError(t, repo.Create(ctx, &entity.Note{Title: "x", Body: "y"}))
		}
		require.NoError(t, repo.Reset(ctx))

		notes, err := repo.FindAll(ctx)
		require.NoError(t, err)
		assert.Empty(t, notes)

		n := &entity.Note{Title: "fresh", Body: "slate"}
		require.NoError(t, repo.Create(ctx, n))
		assert.Equal(t, int64(1), n.Id)
	})

	t.Run("returned notes are copies", func(t *testing.T) {
		repo := newRepo(t)

		n := &entity.Note{Title: "orig", Body: "body", Extra: map[string]interface{}{"k": "v"}}
		require.NoError(t, repo.Create(ctx, n))

		n.Title = "changed by caller"
		got, err := repo.FindById(ctx, n.Id)
		require.NoError(t, err)
		assert.Equal(t, "orig", got.Title)

		got.Title = "mutated"
		got.Extra["k"] = "mutated"
		again, err := repo.FindById(ctx, n.Id)
		require.NoError(t, err)
		assert.Equal(t, "orig", again.Title)
		assert.Equal(t, "v", again.Extra["k"])
	})

	t.Run("concurrent creates get unique ids", func(t *testing.T) {
		repo := newRepo(t)

		const workers = 20
		ids := make(chan int64, workers)
		var wg sync.WaitGroup
		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				n := &entity.Note{Title: "t", Body: "b"}
				if assert.NoError(t, repo.Create(ctx, n)) {
					ids <- n.Id
				}
			}()
		}
		wg.Wait()
		close(ids)

		seen := make(map[int64]bool)
		for id := range ids {
			assert.False(t, seen[id], "duplicate id %d", id)
			seen[id] = true
		}
		assert.Len(t, seen, workers)
	})
}
