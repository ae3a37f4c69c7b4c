// exposes a Store interface that is passed to API controllers and the
// watcher, so both can run against a substitutable implementation in tests.
package db

import (
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/movie-night/picker/internal/model"
)

type Store interface {
	// event functions
	CreateEvent(title string, genre *string, date time.Time, timeOfDay, location, author string) (model.Event, error)
	ListEvents() ([]model.Event, error)
	GetEventByID(id int64) (model.Event, error)
	UpdateEvent(id int64, title, genre *string, date *time.Time, timeOfDay, location *string) (model.Event, error)
	DeleteEvent(id int64) error

	// rsvp functions
	UpsertRSVP(eventID int64, author, movie string, weight int) (model.RSVP, error)
	ListRSVPsForEvent(eventID int64) ([]model.RSVP, error)
	UpdateRSVP(id int64, movie *string, weight *int) (model.RSVP, error)
	DeleteRSVP(id int64) error

	// watcher functions
	ListDueEvents(now time.Time) ([]model.Event, error)
	CreateWinner(eventID int64, rsvp model.RSVP) (model.Winner, bool, error)
	GetWinnerForEvent(eventID int64) (model.Winner, error)
	SetAcquisitionStatus(winnerID int64, status string, sentAt *time.Time) error
}

type pgStore struct {
	db *sqlx.DB
}

// compile-time check that pgStore implements Store
// required so linter doesn't complain
var _ Store = (*pgStore)(nil)

func NewStore() Store {
	return &pgStore{db: DB}
}

func (s *pgStore) CreateEvent(title string, genre *string, date time.Time, timeOfDay, location, author string) (model.Event, error) {
	return CreateEvent(title, genre, date, timeOfDay, location, author)
}

func (s *pgStore) ListEvents() ([]model.Event, error) { return ListEvents() }

func (s *pgStore) GetEventByID(id int64) (model.Event, error) { return GetEventByID(id) }

func (s *pgStore) UpdateEvent(id int64, title, genre *string, date *time.Time, timeOfDay, location *string) (model.Event, error) {
	return UpdateEvent(id, title, genre, date, timeOfDay, location)
}

func (s *pgStore) DeleteEvent(id int64) error { return DeleteEvent(id) }

func (s *pgStore) UpsertRSVP(eventID int64, author, movie string, weight int) (model.RSVP, error) {
	return UpsertRSVP(eventID, author, movie, weight)
}

func (s *pgStore) ListRSVPsForEvent(eventID int64) ([]model.RSVP, error) {
	return ListRSVPsForEvent(eventID)
}

func (s *pgStore) UpdateRSVP(id int64, movie *string, weight *int) (model.RSVP, error) {
	return UpdateRSVP(id, movie, weight)
}

func (s *pgStore) DeleteRSVP(id int64) error { return DeleteRSVP(id) }

func (s *pgStore) ListDueEvents(now time.Time) ([]model.Event, error) { return ListDueEvents(now) }

func (s *pgStore) CreateWinner(eventID int64, rsvp model.RSVP) (model.Winner, bool, error) {
	return CreateWinner(eventID, rsvp)
}

func (s *pgStore) GetWinnerForEvent(eventID int64) (model.Winner, error) {
	return GetWinnerForEvent(eventID)
}

func (s *pgStore) SetAcquisitionStatus(winnerID int64, status string, sentAt *time.Time) error {
	return SetAcquisitionStatus(winnerID, status, sentAt)
}
