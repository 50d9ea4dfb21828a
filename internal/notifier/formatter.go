package notifier

import (
	"fmt"
	"html"
	"strings"

	"github.com/guregu/null/v5"

	"TickerReport/internal/model"
	"TickerReport/internal/report"
	"TickerReport/internal/signal"
)

// FormatRunSummary formats a collection pass into a Telegram HTML message.
func FormatRunSummary(result *model.RunResult, reportPath string) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("📊 <b>Stock report</b> | %s\n", result.StartedAt.Format("2006-01-02 15:04")))
	b.WriteString(fmt.Sprintf("Tickers: %d ok, %d dropped\n\n", len(result.Records), len(result.Dropped)))

	result.Each(func(rec *model.TickerRecord) {
		ind := rec.Indicators
		bull, bear := signal.Summary(signal.Classify(rec))
		b.WriteString(fmt.Sprintf("<b>%s</b> %s  %s  RSI %s",
			html.EscapeString(rec.Symbol),
			report.FormatValue(null.FloatFrom(rec.Quote.CurrentPrice)),
			report.FormatChange(ind.PercentChange, ind.AbsChange),
			report.FormatValue(ind.RSI)))
		if bull > 0 || bear > 0 {
			b.WriteString(fmt.Sprintf("  🟢%d 🔴%d", bull, bear))
		}
		b.WriteString("\n")
	})

	if len(result.Dropped) > 0 {
		b.WriteString("\n⚠️ <b>No data:</b>\n")
		for _, d := range result.Dropped {
			b.WriteString(fmt.Sprintf("  %s (%d attempts): %s\n",
				html.EscapeString(d.Symbol), d.Attempts, html.EscapeString(d.Reason)))
		}
	}

	if reportPath != "" {
		b.WriteString(fmt.Sprintf("\nReport: <code>%s</code>", html.EscapeString(reportPath)))
	}
	return b.String()
}
