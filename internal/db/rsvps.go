package db

import (
	"database/sql"
	"errors"

	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"

	"github.com/movie-night/picker/internal/model"
)

// UpsertRSVP inserts a participant's candidate movie. A participant has one
// active RSVP per event, so re-posting replaces the movie and weight.
func UpsertRSVP(eventID int64, author, movie string, weight int) (model.RSVP, error) {
	var r model.RSVP
	const q = `
	INSERT INTO rsvps (event_id, author, movie, weight, created_at, updated_at)
	VALUES ($1, $2, $3, $4, now(), now())
	ON CONFLICT (event_id, author)
	DO UPDATE SET movie = EXCLUDED.movie, weight = EXCLUDED.weight, updated_at = now()
	RETURNING id, event_id, author, movie, weight, created_at, updated_at;`
	if err := DB.Get(&r, q, eventID, author, movie, weight); err != nil {
		log.Error().Err(err).Int64("event_id", eventID).Msg("UpsertRSVP failed")
		return model.RSVP{}, err
	}
	return r, nil
}

func ListRSVPsForEvent(eventID int64) ([]model.RSVP, error) {
	var out []model.RSVP
	const q = `
	SELECT id, event_id, author, movie, weight, created_at, updated_at
	  FROM rsvps
	 WHERE event_id = $1
	 ORDER BY id DESC;`
	if err := DB.Select(&out, q, eventID); err != nil {
		log.Error().Err(err).Int64("event_id", eventID).Msg("ListRSVPsForEvent failed")
		return nil, err
	}
	return out, nil
}

func UpdateRSVP(id int64, movie *string, weight *int) (model.RSVP, error) {
	var r model.RSVP
	const q = `
	UPDATE rsvps
	   SET movie      = COALESCE($2, movie),
	       weight     = COALESCE($3, weight),
	       updated_at = now()
	 WHERE id = $1
	RETURNING id, event_id, author, movie, weight, created_at, updated_at;`
	err := DB.Get(&r, q, id, movie, weight)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.RSVP{}, sql.ErrNoRows
		}
		log.Error().Err(err).Int64("rsvp_id", id).Msg("UpdateRSVP failed")
	}
	return r, err
}

func DeleteRSVP(id int64) error {
	_, err := DB.Exec(`DELETE FROM rsvps WHERE id = $1;`, id)
	if err != nil {
		log.Error().Err(err).Int64("rsvp_id", id).Msg("DeleteRSVP failed")
	}
	return err
}
