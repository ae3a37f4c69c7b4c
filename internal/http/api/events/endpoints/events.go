package endpoints

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/movie-night/picker/internal/db"
	"github.com/movie-night/picker/internal/http/api"
	"github.com/movie-night/picker/internal/http/api/events/packets"
	"github.com/movie-night/picker/internal/model"
)

const dateLayout = "2006-01-02"

type EventController struct {
	store db.Store
}

func newEventController(store db.Store) *EventController {
	return &EventController{store: store}
}

// EventModule mounts all /events endpoints.
func EventModule(store db.Store) api.Module {
	ctl := newEventController(store)
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/events", ctl.listEvents)
		c.POST("/events", ctl.createEvent)
		c.PATCH("/events/:id", ctl.updateEvent)
		c.DELETE("/events/:id", ctl.deleteEvent)

		// resolution outcome, written by the watcher
		c.GET("/events/:id/winner", ctl.getWinner)
	})
}

func eventResponse(e model.Event) packets.EventResponse {
	return packets.EventResponse{
		ID:        e.ID,
		Title:     e.Title,
		Genre:     e.Genre,
		Date:      e.Date.Format(dateLayout),
		Time:      e.Time,
		Location:  e.Location,
		Author:    e.Author,
		CreatedAt: e.CreatedAt.Format(time.RFC3339),
		UpdatedAt: e.UpdatedAt.Format(time.RFC3339),
	}
}

// GET /api/events
func (t *EventController) listEvents(ctx *gin.Context) (any, *api.APIError) {
	all, err := t.store.ListEvents()
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not list events"}
	}

	out := packets.EventListResponse{Events: make([]packets.EventResponse, 0, len(all))}
	for _, e := range all {
		out.Events = append(out.Events, eventResponse(e))
	}

	return out, nil
}

// POST /api/events
func (t *EventController) createEvent(ctx *gin.Context) (any, *api.APIError) {
	var request packets.CreateEventRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	date, err := time.Parse(dateLayout, request.Date)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid date"}
	}

	event, err := t.store.CreateEvent(request.Title, request.Genre, date, request.Time, request.Location, request.Author)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not create event"}
	}

	return eventResponse(event), nil
}

// PATCH /api/events/:id
func (t *EventController) updateEvent(ctx *gin.Context) (any, *api.APIError) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		log.Error().Err(err).Str("id_raw", ctx.Param("id")).Msg("invalid id in request")
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid id"}
	}

	var request packets.UpdateEventRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	var date *time.Time
	if request.Date != nil {
		parsed, err := time.Parse(dateLayout, *request.Date)
		if err != nil {
			return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid date"}
		}
		date = &parsed
	}

	event, err := t.store.UpdateEvent(id, request.Title, request.Genre, date, request.Time, request.Location)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &api.APIError{Code: http.StatusNotFound, Message: "event not found"}
		}
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not update event"}
	}

	return eventResponse(event), nil
}

// DELETE /api/events/:id
func (t *EventController) deleteEvent(ctx *gin.Context) (any, *api.APIError) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid id"}
	}

	if err := t.store.DeleteEvent(id); err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not delete event"}
	}

	return gin.H{"message": "event deleted"}, nil
}

// GET /api/events/:id/winner
func (t *EventController) getWinner(ctx *gin.Context) (any, *api.APIError) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid id"}
	}

	winner, err := t.store.GetWinnerForEvent(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &api.APIError{Code: http.StatusNotFound, Message: "no winner yet"}
		}
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not get winner"}
	}

	var sentAt *string
	if winner.AcquisitionSentAt != nil {
		s := winner.AcquisitionSentAt.Format(time.RFC3339)
		sentAt = &s
	}

	return packets.WinnerResponse{
		ID:                winner.ID,
		EventID:           winner.EventID,
		RSVPID:            winner.RSVPID,
		Movie:             winner.Movie,
		Author:            winner.Author,
		AcquisitionStatus: winner.AcquisitionStatus,
		AcquisitionSentAt: sentAt,
		CreatedAt:         winner.CreatedAt.Format(time.RFC3339),
	}, nil
}
