// Package scoring turns a user's event history into the rolling 7-day
// aggregate and the feedback tier shown to the user.
//
// The window rule is day-truncated on purpose: an event is inside the window
// when the integer day difference between now and its timestamp is at most 6.
// An event 6 days and 23 hours old is still counted; switching to a strict
// 168-hour cutoff would silently change every score near the boundary, so
// the truncation is part of the contract.
//
// Every function here is pure: same events plus same clock reading, same
// result. Nothing is cached and nothing is persisted.
package scoring

import (
	"fmt"
	"math"
	"time"

	"github.com/habithack/habithack/internal/models"
)

// windowDays is the maximum integer day difference for an event to count
// toward the rolling window.
const windowDays = 6

// startingThreshold is the grace period: fewer windowed events than this
// always classify as TierStarting.
const startingThreshold = 3

// highScoreThreshold is the lower bound of the high-laziness tier.
const highScoreThreshold = 5

// InWindow reports whether an event stamped at ts falls inside the rolling
// window ending at now. The difference is truncated to whole days, not
// compared against an elapsed duration.
func InWindow(ts, now time.Time) bool {
	return int(now.Sub(ts)/(24*time.Hour)) <= windowDays
}

// ComputeAggregate derives the rolling-window aggregate from a user's full
// event history. Counts include every known category, defaulting to 0;
// unknown categories count toward totals but not toward a known bucket.
func ComputeAggregate(events []models.Event, now time.Time) models.Aggregate {
	agg := models.Aggregate{Counts: make(map[models.Category]int, len(models.Categories()))}
	for _, c := range models.Categories() {
		agg.Counts[c] = 0
	}

	for _, e := range events {
		if !InWindow(e.Timestamp, now) {
			continue
		}
		if e.Category.Known() {
			agg.Counts[e.Category]++
		}
		agg.Score += e.Weight
		agg.TotalLogs++
		if e.Category.Lazy() {
			agg.LazyLogs++
		}
	}

	if agg.TotalLogs > 0 {
		agg.LazyRatePercent = int(math.Round(100 * float64(agg.LazyLogs) / float64(agg.TotalLogs)))
	}
	return agg
}

// Classify maps an aggregate to its tier and the feedback message relayed to
// the user. The boundaries operate on the signed score: a strongly negative
// score always lands in the best tier, with no upper clamp on either side.
func Classify(agg models.Aggregate) (models.Tier, string) {
	switch {
	case agg.TotalLogs < startingThreshold:
		return models.TierStarting,
			"✅ Logged! You’ve started tracking. Keep it up!"
	case agg.Score >= highScoreThreshold:
		return models.TierHighLaziness,
			fmt.Sprintf("⚠️ Your laziness score this week is %d. Try a no-spend challenge tomorrow?", agg.Score)
	case agg.Score >= 0:
		return models.TierModerate,
			fmt.Sprintf("💡 Score: %d. You can still reduce lazy spending this week!", agg.Score)
	default:
		return models.TierLowLaziness,
			fmt.Sprintf("🔥 Great work! Your laziness score is %d. Keep the saving streak alive!", agg.Score)
	}
}

// Summarize derives the full-history summary for a user. Unlike
// ComputeAggregate it applies no time window, and only categories that
// actually occurred appear in the counts.
func Summarize(username string, events []models.Event) models.Summary {
	s := models.Summary{Username: username, Counts: make(map[models.Category]int)}
	for _, e := range events {
		s.TotalActions++
		s.TotalScore += e.Weight
		s.Counts[e.Category]++
	}
	return s
}
