package watcher

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/movie-night/picker/internal/model"
)

func testRng(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed+1))
}

func TestPickWinnerEmptyList(t *testing.T) {
	_, err := pickWinner(nil, testRng(1))
	assert.ErrorIs(t, err, errNoCandidates)
}

func TestPickWinnerSingleCandidate(t *testing.T) {
	rsvps := []model.RSVP{{ID: 7, Movie: "Inception", Author: "Alice", Weight: 1}}
	for i := 0; i < 50; i++ {
		got, err := pickWinner(rsvps, testRng(uint64(i)))
		require.NoError(t, err)
		assert.Equal(t, int64(7), got.ID)
	}
}

func TestPickWinnerDeterministicForFixedSeed(t *testing.T) {
	rsvps := []model.RSVP{
		{ID: 1, Movie: "A", Weight: 1},
		{ID: 2, Movie: "B", Weight: 2},
		{ID: 3, Movie: "C", Weight: 3},
	}

	first := make([]int64, 20)
	rng := testRng(42)
	for i := range first {
		got, err := pickWinner(rsvps, rng)
		require.NoError(t, err)
		first[i] = got.ID
	}

	rng = testRng(42)
	for i := range first {
		got, err := pickWinner(rsvps, rng)
		require.NoError(t, err)
		assert.Equal(t, first[i], got.ID, "draw %d diverged for the same seed", i)
	}
}

// With weights [1,1,2] the heavier candidate should win about half the
// draws, twice as often as either of the others.
func TestPickWinnerWeightedDistribution(t *testing.T) {
	rsvps := []model.RSVP{
		{ID: 1, Movie: "A", Weight: 1},
		{ID: 2, Movie: "B", Weight: 1},
		{ID: 3, Movie: "C", Weight: 2},
	}

	const trials = 40000
	counts := map[int64]int{}
	rng := testRng(99)
	for i := 0; i < trials; i++ {
		got, err := pickWinner(rsvps, rng)
		require.NoError(t, err)
		counts[got.ID]++
	}

	freqA := float64(counts[1]) / trials
	freqB := float64(counts[2]) / trials
	freqC := float64(counts[3]) / trials

	assert.InDelta(t, 0.25, freqA, 0.02)
	assert.InDelta(t, 0.25, freqB, 0.02)
	assert.InDelta(t, 0.50, freqC, 0.02)
}

// Weights below 1 are clamped to 1, so a zero-weight RSVP stays selectable
// and the total weight stays positive.
func TestPickWinnerClampsNonPositiveWeights(t *testing.T) {
	rsvps := []model.RSVP{
		{ID: 1, Movie: "A", Weight: 0},
		{ID: 2, Movie: "B", Weight: -5},
	}

	seen := map[int64]bool{}
	rng := testRng(7)
	for i := 0; i < 2000; i++ {
		got, err := pickWinner(rsvps, rng)
		require.NoError(t, err)
		seen[got.ID] = true
	}

	assert.True(t, seen[1], "zero-weight rsvp was never selected")
	assert.True(t, seen[2], "negative-weight rsvp was never selected")
}
