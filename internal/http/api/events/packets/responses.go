package packets

type EventResponse struct {
	ID        int64   `json:"id"`
	Title     string  `json:"title"`
	Genre     *string `json:"genre"`
	Date      string  `json:"date"`
	Time      string  `json:"time"`
	Location  string  `json:"location"`
	Author    string  `json:"author"`
	CreatedAt string  `json:"created_at"`
	UpdatedAt string  `json:"updated_at"`
}

type EventListResponse struct {
	Events []EventResponse `json:"events"`
}

type RSVPResponse struct {
	ID        int64  `json:"id"`
	EventID   int64  `json:"event_id"`
	Author    string `json:"author"`
	Movie     string `json:"movie"`
	Weight    int    `json:"weight"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type RSVPListResponse struct {
	RSVPs []RSVPResponse `json:"rsvps"`
}

type WinnerResponse struct {
	ID                int64   `json:"id"`
	EventID           int64   `json:"event_id"`
	RSVPID            int64   `json:"rsvp_id"`
	Movie             string  `json:"movie"`
	Author            string  `json:"author"`
	AcquisitionStatus string  `json:"acquisition_status"`
	AcquisitionSentAt *string `json:"acquisition_sent_at"`
	CreatedAt         string  `json:"created_at"`
}
