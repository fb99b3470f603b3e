package telegram

import (
	"fmt"
	"strings"

	"github.com/habithack/habithack/internal/models"
)

// formatReport renders the rolling 7-day report.
func formatReport(agg models.Aggregate) string {
	var sb strings.Builder
	sb.WriteString("📊 Your 7-Day Report:\n")
	sb.WriteString(fmt.Sprintf("🚕 Taxi: %d times\n", agg.Counts[models.CategoryTaxi]))
	sb.WriteString(fmt.Sprintf("🍔 Food Delivery: %d times\n", agg.Counts[models.CategoryFoodDelivery]))
	sb.WriteString(fmt.Sprintf("🙌 No Spending: %d times\n", agg.Counts[models.CategoryNoSpending]))
	sb.WriteString(fmt.Sprintf("\n⚖️ Laziness Score: %d\n", agg.Score))
	sb.WriteString(fmt.Sprintf("💡 Lazy Spending Rate: %d%%", agg.LazyRatePercent))
	return sb.String()
}

// formatSummary renders the full-history summary in Markdown. Known
// categories are listed in table order, free-text entries after them.
func formatSummary(s models.Summary) string {
	var sb strings.Builder
	sb.WriteString("📊 *Your Summary*\n\n")
	sb.WriteString(fmt.Sprintf("👤 User: %s\n", escapeMarkdown(s.Username)))
	sb.WriteString(fmt.Sprintf("🗓️ Actions Logged: %d\n", s.TotalActions))
	sb.WriteString(fmt.Sprintf("💸 Laziness Score: %d\n\n", s.TotalScore))

	for _, c := range models.Categories() {
		if count := s.Counts[c]; count > 0 {
			sb.WriteString(fmt.Sprintf("• %s: %dx\n", c, count))
		}
	}
	for c, count := range s.Counts {
		if !c.Known() {
			sb.WriteString(fmt.Sprintf("• %s: %dx\n", escapeMarkdown(string(c)), count))
		}
	}
	return sb.String()
}

// escapeMarkdown escapes the characters that break legacy Markdown parse mode.
func escapeMarkdown(text string) string {
	var sb strings.Builder
	for _, char := range text {
		switch char {
		case '_', '*', '`', '[':
			sb.WriteByte('\\')
		}
		sb.WriteRune(char)
	}
	return sb.String()
}
