// Package tracker coordinates the conversation state, the event log, and the
// scoring engine. It is the transport-agnostic core: the Telegram layer hands
// it (user, text, now) tuples and relays the returned message, nothing more.
package tracker

import (
	"errors"
	"fmt"
	"time"

	"github.com/habithack/habithack/internal/metrics"
	"github.com/habithack/habithack/internal/models"
	"github.com/habithack/habithack/internal/scoring"
	"github.com/habithack/habithack/internal/session"
	"github.com/habithack/habithack/internal/storage"
)

// ErrUnknownCategory is returned by LogAction in strict mode when the answer
// text is not a known category. The prompt stays armed so the user can retry.
var ErrUnknownCategory = errors.New("unknown category")

// Result is the outcome of one successfully logged action.
type Result struct {
	Event     models.Event
	Aggregate models.Aggregate
	Tier      models.Tier
	Message   string
}

// Tracker is the event logging and scoring core.
type Tracker struct {
	store    storage.EventStore
	sessions *session.Manager
	strict   bool
}

// New creates a tracker. With strict enabled, free text that is not a known
// category is rejected instead of being logged with weight 0.
func New(store storage.EventStore, sessions *session.Manager, strict bool) *Tracker {
	return &Tracker{store: store, sessions: sessions, strict: strict}
}

// Begin arms the category prompt for a user. Idempotent.
func (t *Tracker) Begin(userID string) {
	t.sessions.Start(userID)
}

// Pending reports whether the next text from this user should be consumed as
// a category answer.
func (t *Tracker) Pending(userID string) bool {
	return t.sessions.Awaiting(userID)
}

// LogAction consumes a category answer: the event is stamped at now, appended
// to the log, and the user's rolling window is recomputed and classified.
//
// The session is cleared only after the append succeeds. On a storage
// failure the error is surfaced and the prompt stays armed, so an event can
// never be lost while the bot reports success.
func (t *Tracker) LogAction(userID, username, text string, now time.Time) (Result, error) {
	category := models.Category(text)
	if t.strict && !category.Known() {
		return Result{}, ErrUnknownCategory
	}

	event := models.NewEvent(username, category, now)
	if err := t.store.Append(event); err != nil {
		metrics.AppendFailures.Inc()
		return Result{}, fmt.Errorf("failed to log action: %w", err)
	}
	t.sessions.Clear(userID)
	metrics.EventsLogged.WithLabelValues(metricCategory(category)).Inc()

	history, err := t.store.ScanByUser(username)
	if err != nil {
		// The event is durable at this point; a read failure only degrades
		// the feedback to an empty aggregate.
		history = nil
	}
	agg := scoring.ComputeAggregate(history, now)
	tier, msg := scoring.Classify(agg)

	return Result{Event: event, Aggregate: agg, Tier: tier, Message: msg}, nil
}

// WeeklyReport recomputes the rolling-window aggregate for a user.
func (t *Tracker) WeeklyReport(username string, now time.Time) (models.Aggregate, error) {
	history, err := t.store.ScanByUser(username)
	if err != nil {
		return models.Aggregate{}, fmt.Errorf("failed to read history: %w", err)
	}
	return scoring.ComputeAggregate(history, now), nil
}

// FullSummary derives the full-history summary for a user, with no window.
func (t *Tracker) FullSummary(username string) (models.Summary, error) {
	history, err := t.store.ScanByUser(username)
	if err != nil {
		return models.Summary{}, fmt.Errorf("failed to read history: %w", err)
	}
	return scoring.Summarize(username, history), nil
}

// metricCategory keeps the label cardinality bounded: free text collapses
// into a single "unknown" bucket.
func metricCategory(c models.Category) string {
	if c.Known() {
		return string(c)
	}
	return "unknown"
}
