package db

import (
	"database/sql"
	"sort"
	"sync"
	"time"

	"github.com/movie-night/picker/internal/model"
)

// MemStore is an in-memory Store so the watcher and the API can be tested
// without PostgreSQL. The winners map is keyed by event id, mirroring the
// UNIQUE(event_id) constraint.
type MemStore struct {
	mu           sync.Mutex
	events       map[int64]model.Event
	rsvps        map[int64]model.RSVP
	winners      map[int64]model.Winner
	nextEventID  int64
	nextRSVPID   int64
	nextWinnerID int64
}

var _ Store = (*MemStore)(nil)

func NewMemStore() *MemStore {
	return &MemStore{
		events:  map[int64]model.Event{},
		rsvps:   map[int64]model.RSVP{},
		winners: map[int64]model.Winner{},
	}
}

func (s *MemStore) CreateEvent(title string, genre *string, date time.Time, timeOfDay, location, author string) (model.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextEventID++
	now := time.Now()
	e := model.Event{
		ID:        s.nextEventID,
		Title:     title,
		Genre:     genre,
		Date:      date,
		Time:      timeOfDay,
		Location:  location,
		Author:    author,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.events[e.ID] = e
	return e, nil
}

func (s *MemStore) ListEvents() ([]model.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.Event, 0, len(s.events))
	for _, e := range s.events {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	if len(out) > 15 {
		out = out[:15]
	}
	return out, nil
}

func (s *MemStore) GetEventByID(id int64) (model.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.events[id]
	if !ok {
		return model.Event{}, sql.ErrNoRows
	}
	return e, nil
}

func (s *MemStore) UpdateEvent(id int64, title, genre *string, date *time.Time, timeOfDay, location *string) (model.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.events[id]
	if !ok {
		return model.Event{}, sql.ErrNoRows
	}
	if title != nil {
		e.Title = *title
	}
	if genre != nil {
		e.Genre = genre
	}
	if date != nil {
		e.Date = *date
	}
	if timeOfDay != nil {
		e.Time = *timeOfDay
	}
	if location != nil {
		e.Location = *location
	}
	e.UpdatedAt = time.Now()
	s.events[id] = e
	return e, nil
}

func (s *MemStore) DeleteEvent(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.events, id)
	for rid, r := range s.rsvps {
		if r.EventID == id {
			delete(s.rsvps, rid)
		}
	}
	delete(s.winners, id)
	return nil
}

func (s *MemStore) UpsertRSVP(eventID int64, author, movie string, weight int) (model.RSVP, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	for id, r := range s.rsvps {
		if r.EventID == eventID && r.Author == author {
			r.Movie = movie
			r.Weight = weight
			r.UpdatedAt = now
			s.rsvps[id] = r
			return r, nil
		}
	}

	s.nextRSVPID++
	r := model.RSVP{
		ID:        s.nextRSVPID,
		EventID:   eventID,
		Author:    author,
		Movie:     movie,
		Weight:    weight,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.rsvps[r.ID] = r
	return r, nil
}

func (s *MemStore) ListRSVPsForEvent(eventID int64) ([]model.RSVP, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []model.RSVP{}
	for _, r := range s.rsvps {
		if r.EventID == eventID {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (s *MemStore) UpdateRSVP(id int64, movie *string, weight *int) (model.RSVP, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.rsvps[id]
	if !ok {
		return model.RSVP{}, sql.ErrNoRows
	}
	if movie != nil {
		r.Movie = *movie
	}
	if weight != nil {
		r.Weight = *weight
	}
	r.UpdatedAt = time.Now()
	s.rsvps[id] = r
	return r, nil
}

func (s *MemStore) DeleteRSVP(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.rsvps, id)
	return nil
}

// eventStart combines the separate date and time columns into one instant,
// the same way the SQL window check does.
func eventStart(e model.Event) (time.Time, bool) {
	t, err := time.Parse("15:04", e.Time)
	if err != nil {
		return time.Time{}, false
	}
	d := e.Date
	return time.Date(d.Year(), d.Month(), d.Day(), t.Hour(), t.Minute(), 0, 0, d.Location()), true
}

func (s *MemStore) ListDueEvents(now time.Time) ([]model.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []model.Event{}
	for _, e := range s.events {
		if _, resolved := s.winners[e.ID]; resolved {
			continue
		}
		start, ok := eventStart(e)
		if !ok {
			continue
		}
		if !start.Before(now) && start.Before(now.Add(time.Hour)) {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *MemStore) CreateWinner(eventID int64, rsvp model.RSVP) (model.Winner, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.winners[eventID]; exists {
		return model.Winner{}, false, nil
	}

	s.nextWinnerID++
	w := model.Winner{
		ID:                s.nextWinnerID,
		EventID:           eventID,
		RSVPID:            rsvp.ID,
		Movie:             rsvp.Movie,
		Author:            rsvp.Author,
		AcquisitionStatus: model.AcquisitionUnsent,
		CreatedAt:         time.Now(),
	}
	s.winners[eventID] = w
	return w, true, nil
}

func (s *MemStore) GetWinnerForEvent(eventID int64) (model.Winner, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	w, ok := s.winners[eventID]
	if !ok {
		return model.Winner{}, sql.ErrNoRows
	}
	return w, nil
}

func (s *MemStore) SetAcquisitionStatus(winnerID int64, status string, sentAt *time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for eventID, w := range s.winners {
		if w.ID == winnerID {
			w.AcquisitionStatus = status
			w.AcquisitionSentAt = sentAt
			s.winners[eventID] = w
			return nil
		}
	}
	return sql.ErrNoRows
}
