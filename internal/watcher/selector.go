package watcher

import (
	"errors"
	"math/rand/v2"

	"github.com/movie-night/picker/internal/model"
)

// errNoCandidates means an event is due but nobody proposed a movie yet.
var errNoCandidates = errors.New("no candidate rsvps")

// pickWinner samples one RSVP with probability weight_i / sum(weights).
// Weights below 1 are clamped to 1 so the sum is always positive; the
// database CHECK keeps such rows out anyway. The caller owns the rand
// source, which lets tests seed it.
func pickWinner(rsvps []model.RSVP, rng *rand.Rand) (model.RSVP, error) {
	if len(rsvps) == 0 {
		return model.RSVP{}, errNoCandidates
	}

	total := 0
	for _, r := range rsvps {
		total += max(r.Weight, 1)
	}

	n := rng.IntN(total)
	for _, r := range rsvps {
		n -= max(r.Weight, 1)
		if n < 0 {
			return r, nil
		}
	}

	// unreachable: n < total by construction
	return rsvps[len(rsvps)-1], nil
}
