package model

import "time"

// Acquisition states for a winner row. The watcher moves a row from unsent
// to sent or failed after talking to Radarr; a failed acquisition never
// triggers a second selection.
const (
	AcquisitionUnsent = "unsent"
	AcquisitionSent   = "sent"
	AcquisitionFailed = "failed"
)

// Winner is the resolved RSVP for an event. UNIQUE(event_id) at the storage
// layer is what enforces at-most-one-winner, including across concurrent
// watcher instances.
type Winner struct {
	ID                int64      `db:"id"                  json:"id"`
	EventID           int64      `db:"event_id"            json:"event_id"`
	RSVPID            int64      `db:"rsvp_id"             json:"rsvp_id"`
	Movie             string     `db:"movie"               json:"movie"`
	Author            string     `db:"author"              json:"author"`
	AcquisitionStatus string     `db:"acquisition_status"  json:"acquisition_status"`
	AcquisitionSentAt *time.Time `db:"acquisition_sent_at" json:"acquisition_sent_at"`
	CreatedAt         time.Time  `db:"created_at"          json:"created_at"`
}
