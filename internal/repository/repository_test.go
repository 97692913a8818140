package repository

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sumire/backlog/internal/domain"
)

// fakeClock returns a clock that advances by step on every call.
func fakeClock(start time.Time, step time.Duration) func() time.Time {
	var mu sync.Mutex
	current := start
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		t := current
		current = current.Add(step)
		return t
	}
}

func newTicketInput(title string, status domain.TicketStatus) domain.TicketInput {
	return domain.TicketInput{
		Title:    title,
		Status:   status,
		Priority: domain.TicketPriorityMedium,
	}
}

func TestIDGenerator(t *testing.T) {
	g := NewIDGenerator()

	assert.Equal(t, "ticket-1", g.Next(domain.KindTicket))
	assert.Equal(t, "ticket-2", g.Next(domain.KindTicket))
	assert.Equal(t, "label-1", g.Next(domain.KindLabel))
	assert.Equal(t, "ticket-3", g.Next(domain.KindTicket))
}

func TestIDGeneratorConcurrent(t *testing.T) {
	g := NewIDGenerator()
	const n = 200

	var wg sync.WaitGroup
	ids := make(chan string, n)
	for range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ids <- g.Next(domain.KindTicket)
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[string]bool, n)
	for id := range ids {
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
	assert.Len(t, seen, n)
}

func TestTicketRepositoryCreate(t *testing.T) {
	store := NewStore(fakeClock(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), time.Second))

	first := store.Tickets.Create(newTicketInput("First", domain.TicketStatusTodo))
	second := store.Tickets.Create(newTicketInput("Second", domain.TicketStatusTodo))

	assert.Equal(t, "ticket-1", first.ID)
	assert.Equal(t, "ticket-2", second.ID)
	assert.Equal(t, first.CreatedAt, first.UpdatedAt)
	assert.Equal(t, second.CreatedAt, second.UpdatedAt)
	assert.NotNil(t, first.Labels)

	got, err := store.Tickets.FindByID(first.ID)
	require.NoError(t, err)
	assert.Equal(t, first, *got)
}

func TestTicketRepositoryFindByIDNotFound(t *testing.T) {
	store := NewStore(nil)

	_, err := store.Tickets.FindByID("ticket-99")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestTicketRepositoryReturnsCopies(t *testing.T) {
	store := NewStore(nil)
	in := newTicketInput("Copy", domain.TicketStatusTodo)
	in.Labels = []domain.Label{{ID: "label-1", Name: "Bug"}}
	created := store.Tickets.Create(in)

	in.Labels[0].Name = "mutated input"
	created.Labels[0].Name = "mutated output"

	got, err := store.Tickets.FindByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Bug", got.Labels[0].Name)
}

func TestTicketRepositoryUpdate(t *testing.T) {
	store := NewStore(fakeClock(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), time.Minute))
	created := store.Tickets.Create(newTicketInput("Original", domain.TicketStatusBacklog))

	t.Run("merges set fields only", func(t *testing.T) {
		status := domain.TicketStatusReview
		updated, err := store.Tickets.Update(created.ID, domain.TicketPatch{Status: &status})
		require.NoError(t, err)

		assert.Equal(t, created.ID, updated.ID)
		assert.Equal(t, created.CreatedAt, updated.CreatedAt)
		assert.Equal(t, "Original", updated.Title)
		assert.Equal(t, domain.TicketStatusReview, updated.Status)
		assert.True(t, updated.UpdatedAt.After(created.UpdatedAt))
	})

	t.Run("empty patch only refreshes updatedAt", func(t *testing.T) {
		before, err := store.Tickets.FindByID(created.ID)
		require.NoError(t, err)

		first, err := store.Tickets.Update(created.ID, domain.TicketPatch{})
		require.NoError(t, err)
		second, err := store.Tickets.Update(created.ID, domain.TicketPatch{})
		require.NoError(t, err)

		assert.Equal(t, before.Title, second.Title)
		assert.Equal(t, before.Status, second.Status)
		assert.Equal(t, before.Priority, second.Priority)
		assert.Equal(t, before.Labels, second.Labels)
		assert.Equal(t, before.CreatedAt, second.CreatedAt)
		assert.False(t, first.UpdatedAt.Before(before.UpdatedAt))
		assert.False(t, second.UpdatedAt.Before(first.UpdatedAt))
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := store.Tickets.Update("ticket-404", domain.TicketPatch{})
		assert.True(t, errors.Is(err, domain.ErrNotFound))
		assert.Equal(t, 1, store.Tickets.Count())
	})
}

func TestTicketRepositoryUpdateNeverMovesBackwards(t *testing.T) {
	times := []time.Time{
		time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	i := 0
	store := NewStore(func() time.Time {
		t := times[i]
		i++
		return t
	})

	created := store.Tickets.Create(newTicketInput("Clock", domain.TicketStatusTodo))
	updated, err := store.Tickets.Update(created.ID, domain.TicketPatch{})
	require.NoError(t, err)
	assert.Equal(t, created.UpdatedAt, updated.UpdatedAt)
}

func TestTicketRepositoryDelete(t *testing.T) {
	store := NewStore(nil)
	created := store.Tickets.Create(newTicketInput("Doomed", domain.TicketStatusTodo))
	kept := store.Tickets.Create(newTicketInput("Kept", domain.TicketStatusTodo))

	assert.True(t, store.Tickets.Delete(created.ID))
	assert.False(t, store.Tickets.Delete(created.ID))
	assert.False(t, store.Tickets.Delete("ticket-404"))

	_, err := store.Tickets.FindByID(created.ID)
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	all := store.Tickets.FindAll()
	require.Len(t, all, 1)
	assert.Equal(t, kept.ID, all[0].ID)

	next := store.Tickets.Create(newTicketInput("After", domain.TicketStatusTodo))
	assert.Equal(t, "ticket-3", next.ID)
}

func TestTicketRepositoryProjections(t *testing.T) {
	store := NewStore(nil)
	a := store.Tickets.Create(newTicketInput("a", domain.TicketStatusDone))
	store.Tickets.Create(newTicketInput("b", domain.TicketStatusTodo))
	c := store.Tickets.Create(newTicketInput("c", domain.TicketStatusDone))

	epic := newTicketInput("EPIC: d", domain.TicketStatusBacklog)
	epic.IsEpic = true
	epic.Priority = domain.TicketPriorityHigh
	d := store.Tickets.Create(epic)

	done := store.Tickets.FindByStatus(domain.TicketStatusDone)
	require.Len(t, done, 2)
	assert.Equal(t, a.ID, done[0].ID)
	assert.Equal(t, c.ID, done[1].ID)

	assert.Empty(t, store.Tickets.FindByStatus(domain.TicketStatus("archived")))

	high := store.Tickets.FindByPriority(domain.TicketPriorityHigh)
	require.Len(t, high, 1)
	assert.Equal(t, d.ID, high[0].ID)

	epics := store.Tickets.FindEpics()
	require.Len(t, epics, 1)
	assert.Equal(t, d.ID, epics[0].ID)

	all := store.Tickets.FindAll()
	require.Len(t, all, 4)
	for i, id := range []string{"ticket-1", "ticket-2", "ticket-3", "ticket-4"} {
		assert.Equal(t, id, all[i].ID)
	}
}

func TestTicketRepositoryConcurrentCreate(t *testing.T) {
	store := NewStore(nil)
	const n = 100

	var wg sync.WaitGroup
	for range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			store.Tickets.Create(newTicketInput("parallel", domain.TicketStatusTodo))
		}()
	}
	wg.Wait()

	all := store.Tickets.FindAll()
	require.Len(t, all, n)
	seen := make(map[string]bool, n)
	for _, tk := range all {
		seen[tk.ID] = true
	}
	assert.Len(t, seen, n)
}

func TestLabelRepository(t *testing.T) {
	store := NewStore(nil)

	bug := store.Labels.Create("Bug", "#EF4444")
	docs := store.Labels.Create("Docs", "#F59E0B")
	assert.Equal(t, "label-1", bug.ID)
	assert.Equal(t, "label-2", docs.ID)

	got, err := store.Labels.FindByID("label-2")
	require.NoError(t, err)
	assert.Equal(t, docs, *got)

	_, err = store.Labels.FindByID("label-3")
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	assert.Equal(t, []domain.Label{bug, docs}, store.Labels.FindAll())
}

func TestTicketsKeepLabelSnapshots(t *testing.T) {
	store := NewStore(nil)
	label := store.Labels.Create("Bug", "#EF4444")

	in := newTicketInput("Snapshot", domain.TicketStatusTodo)
	in.Labels = []domain.Label{label}
	created := store.Tickets.Create(in)

	stored, err := store.Labels.FindByID(label.ID)
	require.NoError(t, err)
	stored.Name = "Renamed"

	got, err := store.Tickets.FindByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Bug", got.Labels[0].Name)
}
