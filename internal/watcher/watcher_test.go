package watcher

import (
	"context"
	"database/sql"
	"errors"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/movie-night/picker/internal/db"
	"github.com/movie-night/picker/internal/model"
)

type fakeAcquirer struct {
	enabled bool
	failFor map[string]bool
	calls   []string
}

func (f *fakeAcquirer) Enabled() bool { return f.enabled }

func (f *fakeAcquirer) Acquire(title string) error {
	f.calls = append(f.calls, title)
	if f.failFor[title] {
		return errors.New("radarr unavailable")
	}
	return nil
}

type fakeAnnouncer struct {
	announced []model.Winner
}

func (f *fakeAnnouncer) Announce(w model.Winner) { f.announced = append(f.announced, w) }

// countingStore tracks how often the watcher asks for RSVPs, so tests can
// assert that resolved events trigger no further selection work.
type countingStore struct {
	*db.MemStore
	rsvpListCalls int
}

func (s *countingStore) ListRSVPsForEvent(eventID int64) ([]model.RSVP, error) {
	s.rsvpListCalls++
	return s.MemStore.ListRSVPsForEvent(eventID)
}

func newTestWatcher(store db.Store, acq Acquirer, ann Announcer, now time.Time) *Watcher {
	w := New(store, acq, ann)
	w.rng = rand.New(rand.NewPCG(1, 2))
	w.now = func() time.Time { return now }
	return w
}

// base keeps test events well clear of midnight so adding an hour never
// crosses a date boundary.
var base = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

func addEventAt(t *testing.T, store db.Store, start time.Time) model.Event {
	t.Helper()
	date := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())
	e, err := store.CreateEvent("Movie Night", nil, date, start.Format("15:04"), "123 Main St", "Alice")
	require.NoError(t, err)
	return e
}

func TestTickResolvesDueEventOnce(t *testing.T) {
	store := &countingStore{MemStore: db.NewMemStore()}
	acq := &fakeAcquirer{enabled: false}
	w := newTestWatcher(store, acq, nil, base)

	event := addEventAt(t, store, base.Add(20*time.Minute))
	_, err := store.UpsertRSVP(event.ID, "Alice", "Inception", 1)
	require.NoError(t, err)
	_, err = store.UpsertRSVP(event.ID, "Bob", "The Matrix", 3)
	require.NoError(t, err)

	w.RunTick(context.Background())

	winner, err := store.GetWinnerForEvent(event.ID)
	require.NoError(t, err)
	assert.Contains(t, []string{"Inception", "The Matrix"}, winner.Movie)
	// no Radarr configured, so the row must stay unsent
	assert.Equal(t, model.AcquisitionUnsent, winner.AcquisitionStatus)
	assert.Nil(t, winner.AcquisitionSentAt)
	assert.Equal(t, 1, store.rsvpListCalls)

	// a second tick right after must not select again
	w.RunTick(context.Background())

	again, err := store.GetWinnerForEvent(event.ID)
	require.NoError(t, err)
	assert.Equal(t, winner.ID, again.ID)
	assert.Equal(t, winner.Movie, again.Movie)
	assert.Equal(t, 1, store.rsvpListCalls, "resolved event triggered another selection")
}

func TestDueWindowBoundaries(t *testing.T) {
	store := db.NewMemStore()
	w := newTestWatcher(store, &fakeAcquirer{}, nil, base)

	in30 := addEventAt(t, store, base.Add(30*time.Minute))
	in90 := addEventAt(t, store, base.Add(90*time.Minute))
	ago10 := addEventAt(t, store, base.Add(-10*time.Minute))
	atNow := addEventAt(t, store, base)
	atEdge := addEventAt(t, store, base.Add(time.Hour))
	for _, e := range []model.Event{in30, in90, ago10, atNow, atEdge} {
		_, err := store.UpsertRSVP(e.ID, "Alice", "Inception", 1)
		require.NoError(t, err)
	}

	w.RunTick(context.Background())

	_, err := store.GetWinnerForEvent(in30.ID)
	assert.NoError(t, err, "event starting in 30 minutes should be resolved")

	_, err = store.GetWinnerForEvent(in90.ID)
	assert.ErrorIs(t, err, sql.ErrNoRows, "event starting in 90 minutes is outside the window")

	_, err = store.GetWinnerForEvent(ago10.ID)
	assert.ErrorIs(t, err, sql.ErrNoRows, "event that already started is outside the window")

	// window is inclusive at now, exclusive at now+1h
	_, err = store.GetWinnerForEvent(atNow.ID)
	assert.NoError(t, err)
	_, err = store.GetWinnerForEvent(atEdge.ID)
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestEventWithoutRSVPsIsSkippedNotResolved(t *testing.T) {
	store := db.NewMemStore()
	w := newTestWatcher(store, &fakeAcquirer{enabled: true}, nil, base)

	event := addEventAt(t, store, base.Add(20*time.Minute))

	w.RunTick(context.Background())

	_, err := store.GetWinnerForEvent(event.ID)
	assert.ErrorIs(t, err, sql.ErrNoRows)

	// still due next tick: no winner row blocks it
	due, err := store.ListDueEvents(base)
	require.NoError(t, err)
	require.Len(t, due, 1)
	assert.Equal(t, event.ID, due[0].ID)
}

func TestAcquisitionFailureIsIsolatedPerEvent(t *testing.T) {
	store := db.NewMemStore()
	acq := &fakeAcquirer{enabled: true, failFor: map[string]bool{"Doomed": true}}
	ann := &fakeAnnouncer{}
	w := newTestWatcher(store, acq, ann, base)

	e1 := addEventAt(t, store, base.Add(10*time.Minute))
	_, err := store.UpsertRSVP(e1.ID, "Alice", "Doomed", 1)
	require.NoError(t, err)

	e2 := addEventAt(t, store, base.Add(15*time.Minute))
	_, err = store.UpsertRSVP(e2.ID, "Bob", "The Matrix", 1)
	require.NoError(t, err)

	w.RunTick(context.Background())

	w1, err := store.GetWinnerForEvent(e1.ID)
	require.NoError(t, err)
	assert.Equal(t, model.AcquisitionFailed, w1.AcquisitionStatus)
	assert.Nil(t, w1.AcquisitionSentAt)

	w2, err := store.GetWinnerForEvent(e2.ID)
	require.NoError(t, err, "failure for the first event must not abort the batch")
	assert.Equal(t, model.AcquisitionSent, w2.AcquisitionStatus)
	require.NotNil(t, w2.AcquisitionSentAt)
	assert.Equal(t, base, *w2.AcquisitionSentAt)

	assert.Equal(t, []string{"Doomed", "The Matrix"}, acq.calls)
	assert.Len(t, ann.announced, 2)
}

// raceStore simulates a second watcher instance inserting the winner
// between the due query and the insert.
type raceStore struct {
	*db.MemStore
	event model.Event
}

func (s *raceStore) ListDueEvents(now time.Time) ([]model.Event, error) {
	return []model.Event{s.event}, nil
}

func (s *raceStore) CreateWinner(eventID int64, rsvp model.RSVP) (model.Winner, bool, error) {
	return model.Winner{}, false, nil
}

func TestLostInsertRaceIsBenign(t *testing.T) {
	mem := db.NewMemStore()
	event, err := mem.CreateEvent("Movie Night", nil, base, "12:30", "123 Main St", "Alice")
	require.NoError(t, err)
	_, err = mem.UpsertRSVP(event.ID, "Alice", "Inception", 1)
	require.NoError(t, err)

	store := &raceStore{MemStore: mem, event: event}
	acq := &fakeAcquirer{enabled: true}
	ann := &fakeAnnouncer{}
	w := newTestWatcher(store, acq, ann, base)

	w.RunTick(context.Background())

	// the other instance's row stands: no acquisition, no announcement
	assert.Empty(t, acq.calls)
	assert.Empty(t, ann.announced)
}
