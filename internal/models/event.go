// Package models defines the core domain entities for the HabitHack bot:
// spending events, the closed category set with its weight table, and the
// derived rolling-window aggregate. All models include built-in validation
// to ensure data integrity throughout the application.
package models

import (
	"errors"
	"time"
)

// TimeLayout is the serialization format for event timestamps in the log.
const TimeLayout = "2006-01-02 15:04:05"

// Event is one logged user action. Events are immutable once written: the
// weight is fixed at write time from the category table and is never
// recomputed, so historical records keep their stored weight even if the
// table changes later.
type Event struct {
	Username  string    // "@handle", or first name when the user has no handle
	Timestamp time.Time // stamped by the server at write time, second precision
	Category  Category
	Weight    int
}

// NewEvent builds an event stamped at now with the weight taken from the
// category table. Unknown categories get weight 0.
func NewEvent(username string, category Category, now time.Time) Event {
	return Event{
		Username:  username,
		Timestamp: now.Truncate(time.Second),
		Category:  category,
		Weight:    category.Weight(),
	}
}

// Validate checks that all event fields are valid.
func (e *Event) Validate() error {
	if e.Username == "" {
		return errors.New("event username must not be empty")
	}
	if e.Timestamp.IsZero() {
		return errors.New("event timestamp must not be zero")
	}
	if e.Category == "" {
		return errors.New("event category must not be empty")
	}
	if e.Category.Known() && e.Weight != e.Category.Weight() {
		return errors.New("event weight must match the category table")
	}
	return nil
}
