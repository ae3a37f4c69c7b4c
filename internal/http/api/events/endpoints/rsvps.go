package endpoints

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/movie-night/picker/internal/db"
	"github.com/movie-night/picker/internal/http/api"
	"github.com/movie-night/picker/internal/http/api/events/packets"
	"github.com/movie-night/picker/internal/model"
)

type RSVPController struct {
	store db.Store
}

func newRSVPController(store db.Store) *RSVPController {
	return &RSVPController{store: store}
}

// RSVPModule mounts all /rsvps endpoints.
func RSVPModule(store db.Store) api.Module {
	ctl := newRSVPController(store)
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/rsvps/:event_id", ctl.listRSVPs)
		c.POST("/rsvps", ctl.createRSVP)
		c.PATCH("/rsvps/:id", ctl.updateRSVP)
		c.DELETE("/rsvps/:id", ctl.deleteRSVP)
	})
}

func rsvpResponse(r model.RSVP) packets.RSVPResponse {
	return packets.RSVPResponse{
		ID:        r.ID,
		EventID:   r.EventID,
		Author:    r.Author,
		Movie:     r.Movie,
		Weight:    r.Weight,
		CreatedAt: r.CreatedAt.Format(time.RFC3339),
		UpdatedAt: r.UpdatedAt.Format(time.RFC3339),
	}
}

// GET /api/rsvps/:event_id
func (t *RSVPController) listRSVPs(ctx *gin.Context) (any, *api.APIError) {
	eventID, err := strconv.ParseInt(ctx.Param("event_id"), 10, 64)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid event id"}
	}

	all, err := t.store.ListRSVPsForEvent(eventID)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not list rsvps"}
	}

	out := packets.RSVPListResponse{RSVPs: make([]packets.RSVPResponse, 0, len(all))}
	for _, r := range all {
		out.RSVPs = append(out.RSVPs, rsvpResponse(r))
	}

	return out, nil
}

// POST /api/rsvps
func (t *RSVPController) createRSVP(ctx *gin.Context) (any, *api.APIError) {
	var request packets.CreateRSVPRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	if _, err := t.store.GetEventByID(request.EventID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &api.APIError{Code: http.StatusNotFound, Message: "event not found"}
		}
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not look up event"}
	}

	weight := 1
	if request.Weight != nil {
		weight = *request.Weight
	}

	rsvp, err := t.store.UpsertRSVP(request.EventID, request.Author, request.Movie, weight)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not create rsvp"}
	}

	return rsvpResponse(rsvp), nil
}

// PATCH /api/rsvps/:id
func (t *RSVPController) updateRSVP(ctx *gin.Context) (any, *api.APIError) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid id"}
	}

	var request packets.UpdateRSVPRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	rsvp, err := t.store.UpdateRSVP(id, request.Movie, request.Weight)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &api.APIError{Code: http.StatusNotFound, Message: "rsvp not found"}
		}
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not update rsvp"}
	}

	return rsvpResponse(rsvp), nil
}

// DELETE /api/rsvps/:id
func (t *RSVPController) deleteRSVP(ctx *gin.Context) (any, *api.APIError) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid id"}
	}

	if err := t.store.DeleteRSVP(id); err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not delete rsvp"}
	}

	return gin.H{"message": "rsvp deleted"}, nil
}
