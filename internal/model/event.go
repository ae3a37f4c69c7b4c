package model

import "time"

// Event is one scheduled movie night. Rows are created and edited through
// the CRUD API; the watcher only ever reads them.
type Event struct {
	ID        int64     `db:"id"         json:"id"`
	Title     string    `db:"title"      json:"title"`
	Genre     *string   `db:"genre"      json:"genre"`
	Date      time.Time `db:"date"       json:"date"`
	Time      string    `db:"time"       json:"time"`
	Location  string    `db:"location"   json:"location"`
	Author    string    `db:"author"     json:"author"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
