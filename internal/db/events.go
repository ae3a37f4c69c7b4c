package db

import (
	"database/sql"
	"errors"
	"time"

	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"

	"github.com/movie-night/picker/internal/model"
)

func CreateEvent(title string, genre *string, date time.Time, timeOfDay, location, author string) (model.Event, error) {
	var e model.Event
	const q = `
	INSERT INTO events (title, genre, date, time, location, author, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, now(), now())
	RETURNING id, title, genre, date, time, location, author, created_at, updated_at;`
	if err := DB.Get(&e, q, title, genre, date, timeOfDay, location, author); err != nil {
		log.Error().Err(err).Msg("CreateEvent failed")
		return model.Event{}, err
	}
	return e, nil
}

// newest events first, capped so the landing page stays small.
func ListEvents() ([]model.Event, error) {
	var out []model.Event
	const q = `
	SELECT id, title, genre, date, time, location, author, created_at, updated_at
	  FROM events
	 ORDER BY id DESC
	 LIMIT 15;`
	if err := DB.Select(&out, q); err != nil {
		log.Error().Err(err).Msg("ListEvents failed")
		return nil, err
	}
	return out, nil
}

func GetEventByID(id int64) (model.Event, error) {
	var e model.Event
	err := DB.Get(&e, `
		SELECT id, title, genre, date, time, location, author, created_at, updated_at
		FROM events
		WHERE id = $1;`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Event{}, sql.ErrNoRows
		}
		log.Error().Err(err).Int64("event_id", id).Msg("GetEventByID failed")
	}
	return e, err
}

// patches only the provided fields and bumps updated_at.
func UpdateEvent(id int64, title, genre *string, date *time.Time, timeOfDay, location *string) (model.Event, error) {
	var e model.Event
	const q = `
	UPDATE events
	   SET title      = COALESCE($2, title),
	       genre      = COALESCE($3, genre),
	       date       = COALESCE($4, date),
	       time       = COALESCE($5, time),
	       location   = COALESCE($6, location),
	       updated_at = now()
	 WHERE id = $1
	RETURNING id, title, genre, date, time, location, author, created_at, updated_at;`
	err := DB.Get(&e, q, id, title, genre, date, timeOfDay, location)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Event{}, sql.ErrNoRows
		}
		log.Error().Err(err).Int64("event_id", id).Msg("UpdateEvent failed")
	}
	return e, err
}

// rsvps and the winner row go with the event via ON DELETE CASCADE.
func DeleteEvent(id int64) error {
	_, err := DB.Exec(`DELETE FROM events WHERE id = $1;`, id)
	if err != nil {
		log.Error().Err(err).Int64("event_id", id).Msg("DeleteEvent failed")
	}
	return err
}

// ListDueEvents returns events whose start instant falls in [now, now+1h)
// and that have no winner row yet. date and time live in separate columns,
// so the window check combines them into one timestamp first.
func ListDueEvents(now time.Time) ([]model.Event, error) {
	var out []model.Event
	const q = `
	SELECT e.id, e.title, e.genre, e.date, e.time, e.location, e.author, e.created_at, e.updated_at
	  FROM events e
	 WHERE (e.date + e.time::time) >= $1
	   AND (e.date + e.time::time) <  $1 + interval '1 hour'
	   AND NOT EXISTS (SELECT 1 FROM event_winners w WHERE w.event_id = e.id)
	 ORDER BY e.id;`
	if err := DB.Select(&out, q, now); err != nil {
		log.Error().Err(err).Msg("ListDueEvents failed")
		return nil, err
	}
	return out, nil
}
