package model

import "time"

// RSVP is one participant's candidate movie for an event. A participant has
// at most one active RSVP per event (UNIQUE(event_id, author)); Weight is
// the relative selection probability and is always >= 1.
type RSVP struct {
	ID        int64     `db:"id"         json:"id"`
	EventID   int64     `db:"event_id"   json:"event_id"`
	Author    string    `db:"author"     json:"author"`
	Movie     string    `db:"movie"      json:"movie"`
	Weight    int       `db:"weight"     json:"weight"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
