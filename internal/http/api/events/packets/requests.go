package packets

// CreateEventRequest Request for scheduling a new movie night.
type CreateEventRequest struct {
	Title    string  `json:"title"    binding:"required"`
	Genre    *string `json:"genre"`
	Date     string  `json:"date"     binding:"required,datetime=2006-01-02"`
	Time     string  `json:"time"     binding:"required,datetime=15:04"`
	Location string  `json:"location" binding:"required"`
	Author   string  `json:"author"   binding:"required"`
}

type UpdateEventRequest struct {
	Title    *string `json:"title"`
	Genre    *string `json:"genre"`
	Date     *string `json:"date" binding:"omitempty,datetime=2006-01-02"`
	Time     *string `json:"time" binding:"omitempty,datetime=15:04"`
	Location *string `json:"location"`
}

// CreateRSVPRequest Request for proposing a movie; re-posting for the same
// event and author replaces the earlier proposal.
type CreateRSVPRequest struct {
	EventID int64  `json:"event_id" binding:"required"`
	Movie   string `json:"movie"    binding:"required"`
	Author  string `json:"author"   binding:"required"`
	Weight  *int   `json:"weight"   binding:"omitempty,min=1"` // nil = weight 1
}

type UpdateRSVPRequest struct {
	Movie  *string `json:"movie"`
	Weight *int    `json:"weight" binding:"omitempty,min=1"`
}
