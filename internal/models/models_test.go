package models

import (
	"testing"
	"time"
)

func TestCategoryWeights(t *testing.T) {
	tests := []struct {
		category   Category
		wantWeight int
		wantLazy   bool
		wantKnown  bool
	}{
		{CategoryTaxi, 1, true, true},
		{CategoryFoodDelivery, 2, true, true},
		{CategoryNoSpending, -3, false, true},
		{Category("something else"), 0, false, false},
		{Category(""), 0, false, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.category), func(t *testing.T) {
			if got := tt.category.Weight(); got != tt.wantWeight {
				t.Errorf("Weight() = %d, want %d", got, tt.wantWeight)
			}
			if got := tt.category.Lazy(); got != tt.wantLazy {
				t.Errorf("Lazy() = %v, want %v", got, tt.wantLazy)
			}
			if got := tt.category.Known(); got != tt.wantKnown {
				t.Errorf("Known() = %v, want %v", got, tt.wantKnown)
			}
		})
	}
}

func TestCategoriesCoverTable(t *testing.T) {
	cats := Categories()
	if len(cats) != len(categoryTable) {
		t.Fatalf("Categories() returned %d entries, table has %d", len(cats), len(categoryTable))
	}
	for _, c := range cats {
		if !c.Known() {
			t.Errorf("category %q listed but not in table", c)
		}
	}
}

func TestNewEvent(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 30, 45, 999_000_000, time.UTC)

	e := NewEvent("@alice", CategoryNoSpending, now)
	if e.Weight != -3 {
		t.Errorf("Expected weight -3, got %d", e.Weight)
	}
	if e.Timestamp.Nanosecond() != 0 {
		t.Errorf("Expected second-precision timestamp, got %v", e.Timestamp)
	}

	// Unknown categories are still recorded, with weight 0.
	e = NewEvent("@alice", Category("free text"), now)
	if e.Weight != 0 {
		t.Errorf("Expected weight 0 for unknown category, got %d", e.Weight)
	}
}

func TestEventValidate(t *testing.T) {
	now := time.Now()
	tests := []struct {
		name    string
		event   Event
		wantErr bool
	}{
		{
			name:    "valid event",
			event:   Event{Username: "@alice", Timestamp: now, Category: CategoryTaxi, Weight: 1},
			wantErr: false,
		},
		{
			name:    "valid unknown category",
			event:   Event{Username: "@alice", Timestamp: now, Category: "whatever", Weight: 0},
			wantErr: false,
		},
		{
			name:    "empty username",
			event:   Event{Timestamp: now, Category: CategoryTaxi, Weight: 1},
			wantErr: true,
		},
		{
			name:    "zero timestamp",
			event:   Event{Username: "@alice", Category: CategoryTaxi, Weight: 1},
			wantErr: true,
		},
		{
			name:    "weight diverges from table",
			event:   Event{Username: "@alice", Timestamp: now, Category: CategoryTaxi, Weight: 5},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.event.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Event.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
