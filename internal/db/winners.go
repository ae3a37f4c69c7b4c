package db

import (
	"database/sql"
	"errors"
	"time"

	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"

	"github.com/movie-night/picker/internal/model"
)

// CreateWinner records the resolved RSVP for an event. The UNIQUE(event_id)
// constraint is the at-most-one-winner guarantee: when another watcher run
// already inserted a row, ON CONFLICT DO NOTHING returns no rows and the
// call reports recorded=false with no error. That race is benign.
func CreateWinner(eventID int64, rsvp model.RSVP) (model.Winner, bool, error) {
	var w model.Winner
	const q = `
	INSERT INTO event_winners (event_id, rsvp_id, movie, author, acquisition_status, created_at)
	VALUES ($1, $2, $3, $4, 'unsent', now())
	ON CONFLICT (event_id) DO NOTHING
	RETURNING id, event_id, rsvp_id, movie, author, acquisition_status, acquisition_sent_at, created_at;`
	err := DB.Get(&w, q, eventID, rsvp.ID, rsvp.Movie, rsvp.Author)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// winner already exists, nothing inserted
			return model.Winner{}, false, nil
		}
		log.Error().Err(err).Int64("event_id", eventID).Msg("CreateWinner failed")
		return model.Winner{}, false, err
	}
	return w, true, nil
}

func GetWinnerForEvent(eventID int64) (model.Winner, error) {
	var w model.Winner
	err := DB.Get(&w, `
		SELECT id, event_id, rsvp_id, movie, author, acquisition_status, acquisition_sent_at, created_at
		FROM event_winners
		WHERE event_id = $1;`, eventID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Winner{}, sql.ErrNoRows
		}
		log.Error().Err(err).Int64("event_id", eventID).Msg("GetWinnerForEvent failed")
	}
	return w, err
}

// SetAcquisitionStatus updates the Radarr outcome on an existing winner row.
// sentAt is nil for failed attempts.
func SetAcquisitionStatus(winnerID int64, status string, sentAt *time.Time) error {
	var sentAtVal sql.NullTime
	if sentAt != nil {
		sentAtVal = sql.NullTime{Time: *sentAt, Valid: true}
	}
	_, err := DB.Exec(`
		UPDATE event_winners
		   SET acquisition_status = $2,
		       acquisition_sent_at = $3
		 WHERE id = $1;`, winnerID, status, sentAtVal)
	if err != nil {
		log.Error().Err(err).Int64("winner_id", winnerID).Msg("SetAcquisitionStatus failed")
	}
	return err
}
