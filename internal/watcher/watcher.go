// The watcher resolves events shortly before they start: once per
// wall-clock minute it finds events starting within the hour that have no
// winner yet, picks one RSVP by weighted random selection, records it, and
// asks Radarr to fetch the movie.
package watcher

import (
	"context"
	"errors"
	"math/rand/v2"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/movie-night/picker/internal/db"
	"github.com/movie-night/picker/internal/model"
	"github.com/movie-night/picker/internal/redis"
)

// Acquirer asks the external media library to fetch a movie by title.
// Satisfied by *radarr.Client.
type Acquirer interface {
	Enabled() bool
	Acquire(title string) error
}

// Announcer pushes a recorded winner to interested clients. Satisfied by
// *announce.Publisher.
type Announcer interface {
	Announce(w model.Winner)
}

type Watcher struct {
	store     db.Store
	acquirer  Acquirer
	announcer Announcer
	rng       *rand.Rand
	now       func() time.Time
}

func New(store db.Store, acquirer Acquirer, announcer Announcer) *Watcher {
	return &Watcher{
		store:     store,
		acquirer:  acquirer,
		announcer: announcer,
		rng:       rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		now:       time.Now,
	}
}

// Run executes one tick per wall-clock minute until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	log.Info().Msg("watcher started")
	for {
		if err := w.waitForMinute(ctx); err != nil {
			return err
		}
		w.RunTick(ctx)
	}
}

// waitForMinute blocks until the next wall-clock minute boundary. The
// target is recomputed from the current clock on every wake, so a slow tick
// skips boundaries instead of accumulating drift.
func (w *Watcher) waitForMinute(ctx context.Context) error {
	now := time.Now()
	next := now.Truncate(time.Minute).Add(time.Minute)

	timer := time.NewTimer(next.Sub(now))
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// RunTick processes every currently due event once. Each event's pipeline
// is isolated: a failure is logged and the loop moves on to the next event.
func (w *Watcher) RunTick(ctx context.Context) {
	now := w.now()
	events, err := w.store.ListDueEvents(now)
	if err != nil {
		log.Error().Err(err).Msg("could not list due events")
		return
	}
	log.Info().Time("tick", now).Int("count", len(events)).
		Msg("found events within the hour that need processing")

	redis.RecordTick(ctx, now, len(events))

	for _, event := range events {
		w.resolveEvent(event)
	}
}

func (w *Watcher) resolveEvent(event model.Event) {
	rsvps, err := w.store.ListRSVPsForEvent(event.ID)
	if err != nil {
		log.Error().Err(err).Int64("event_id", event.ID).Msg("could not list rsvps for due event")
		return
	}

	chosen, err := pickWinner(rsvps, w.rng)
	if err != nil {
		if errors.Is(err, errNoCandidates) {
			// stays due until it leaves the window; not an error
			log.Info().Int64("event_id", event.ID).Msg("event has no rsvps, skipping")
		} else {
			log.Error().Err(err).Int64("event_id", event.ID).Msg("selection failed")
		}
		return
	}

	winner, recorded, err := w.store.CreateWinner(event.ID, chosen)
	if err != nil {
		log.Error().Err(err).Int64("event_id", event.ID).Msg("could not record winner")
		return
	}
	if !recorded {
		// another watcher instance won the race; its row stands
		log.Info().Int64("event_id", event.ID).Msg("winner already recorded, skipping")
		return
	}

	log.Info().Int64("event_id", event.ID).Str("movie", winner.Movie).Str("author", winner.Author).
		Msg("winner recorded")

	if w.announcer != nil {
		w.announcer.Announce(winner)
	}

	w.acquire(winner)
}

func (w *Watcher) acquire(winner model.Winner) {
	if w.acquirer == nil || !w.acquirer.Enabled() {
		// acquisition stays unsent; selection and recording are still useful
		log.Warn().Int64("event_id", winner.EventID).Msg("radarr not configured, skipping acquisition")
		return
	}

	if err := w.acquirer.Acquire(winner.Movie); err != nil {
		log.Error().Err(err).Int64("event_id", winner.EventID).Str("movie", winner.Movie).
			Msg("acquisition failed")
		if err := w.store.SetAcquisitionStatus(winner.ID, model.AcquisitionFailed, nil); err != nil {
			log.Error().Err(err).Int64("winner_id", winner.ID).Msg("could not mark acquisition failed")
		}
		return
	}

	sentAt := w.now()
	if err := w.store.SetAcquisitionStatus(winner.ID, model.AcquisitionSent, &sentAt); err != nil {
		log.Error().Err(err).Int64("winner_id", winner.ID).Msg("could not mark acquisition sent")
		return
	}
	log.Info().Int64("event_id", winner.EventID).Str("movie", winner.Movie).
		Msg("acquisition request sent")
}
