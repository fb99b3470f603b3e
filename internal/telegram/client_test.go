package telegram

import (
	"strings"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/habithack/habithack/internal/models"
)

func TestFormatReport(t *testing.T) {
	agg := models.Aggregate{
		Counts: map[models.Category]int{
			models.CategoryTaxi:         2,
			models.CategoryFoodDelivery: 1,
			models.CategoryNoSpending:   1,
		},
		Score:           1,
		TotalLogs:       4,
		LazyLogs:        3,
		LazyRatePercent: 75,
	}

	got := formatReport(agg)
	for _, want := range []string{
		"🚕 Taxi: 2 times",
		"🍔 Food Delivery: 1 times",
		"🙌 No Spending: 1 times",
		"⚖️ Laziness Score: 1",
		"💡 Lazy Spending Rate: 75%",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("Report missing %q:\n%s", want, got)
		}
	}
}

func TestFormatSummary(t *testing.T) {
	s := models.Summary{
		Username:     "@alice",
		TotalActions: 3,
		TotalScore:   -1,
		Counts: map[models.Category]int{
			models.CategoryTaxi:        2,
			models.Category("zz misc"): 1,
		},
	}

	got := formatSummary(s)
	for _, want := range []string{
		"👤 User: @alice",
		"🗓️ Actions Logged: 3",
		"💸 Laziness Score: -1",
		"• 🚕 Taxi: 2x",
		"• zz misc: 1x",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("Summary missing %q:\n%s", want, got)
		}
	}
}

func TestEscapeMarkdown(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain", "plain"},
		{"with_underscore", "with\\_underscore"},
		{"*bold*", "\\*bold\\*"},
		{"[link", "\\[link"},
		{"`code`", "\\`code\\`"},
	}
	for _, tt := range tests {
		if got := escapeMarkdown(tt.in); got != tt.want {
			t.Errorf("escapeMarkdown(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDisplayName(t *testing.T) {
	tests := []struct {
		name string
		user tgbotapi.User
		want string
	}{
		{"handle set", tgbotapi.User{UserName: "alice", FirstName: "Alice"}, "@alice"},
		{"no handle", tgbotapi.User{FirstName: "Alice"}, "Alice"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := displayName(&tt.user); got != tt.want {
				t.Errorf("displayName() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWelcomeText(t *testing.T) {
	want := "👋 Welcome back to HabitHack 2.0!\nWhat did you do today?"
	if welcomeText != want {
		t.Errorf("welcomeText = %q, want %q", welcomeText, want)
	}
}

func TestCategoryKeyboard(t *testing.T) {
	kb := categoryKeyboard()
	if !kb.OneTimeKeyboard || !kb.ResizeKeyboard {
		t.Error("Keyboard should be one-time and resized")
	}
	if len(kb.Keyboard) != 1 {
		t.Fatalf("Expected a single keyboard row, got %d", len(kb.Keyboard))
	}
	if len(kb.Keyboard[0]) != len(models.Categories()) {
		t.Errorf("Expected %d buttons, got %d", len(models.Categories()), len(kb.Keyboard[0]))
	}
	if kb.Keyboard[0][0].Text != string(models.CategoryTaxi) {
		t.Errorf("First button should be %q, got %q", models.CategoryTaxi, kb.Keyboard[0][0].Text)
	}
}
