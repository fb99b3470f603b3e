package models

// Tier is the discrete classification a user's rolling window lands in.
type Tier string

const (
	// TierStarting is the grace period: fewer than three windowed events,
	// regardless of score.
	TierStarting Tier = "starting"
	// TierHighLaziness is a windowed score of 5 or more.
	TierHighLaziness Tier = "high_laziness"
	// TierModerate is a windowed score in [0, 5).
	TierModerate Tier = "moderate"
	// TierLowLaziness is a negative windowed score.
	TierLowLaziness Tier = "low_laziness"
)

// Aggregate is the derived view of a user's rolling 7-day window. It is
// recomputed on every query and never persisted.
type Aggregate struct {
	Counts          map[Category]int // all known categories present, default 0
	Score           int              // signed sum of stored weights
	TotalLogs       int
	LazyLogs        int
	LazyRatePercent int
}

// Summary is the full-history view used by the export/summary collaborators.
// Unlike Aggregate it applies no time window.
type Summary struct {
	Username     string
	TotalActions int
	TotalScore   int
	Counts       map[Category]int // only categories that actually occurred
}
