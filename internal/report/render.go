package report

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"net/url"
	"time"

	"github.com/guregu/null/v5"
	"github.com/shopspring/decimal"

	"TickerReport/internal/model"
	"TickerReport/internal/signal"
)

// QuoteURL is the page a symbol links to.
const QuoteURL = "https://finance.yahoo.com/quote/"

// TimeLayout formats the collection time in the report header.
const TimeLayout = "Monday January 02, 2006 (15:04:05)"

// NoData is shown in place of an unavailable metric.
const NoData = "no data"

//go:embed templates/report.html.tmpl
var templateFS embed.FS

var reportTemplate = template.Must(template.ParseFS(templateFS, "templates/report.html.tmpl"))

var headers = []string{"Stock", "Price", "Price Change", "RSI", "Stochastic", "MACD", "PEG"}

type cell struct {
	Text  string
	Class string
}

type row struct {
	Symbol string
	URL    string
	Cells  []cell
}

// TableRow is one entry of the script data table. Unavailable values
// marshal to null.
type TableRow struct {
	Name          string     `json:"Name"`
	Price         null.Float `json:"Price"`
	PercentChange null.Float `json:"PercentChange"`
	AbsChange     null.Float `json:"AbsChange"`
	BidAskSpread  null.Float `json:"BidAskSpread"`
	PEG           null.Float `json:"PEG"`
	RSI           null.Float `json:"RSI"`
	KStochastic   null.Float `json:"KStochastic"`
	MACD          null.Float `json:"MACD"`
}

type page struct {
	Generated string
	Headers   []string
	Rows      []row
	Dropped   []model.DroppedSymbol
	Table     []TableRow
}

// Round2 rounds v half away from zero to two decimal places.
func Round2(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}

func round(v null.Float) null.Float {
	if !v.Valid {
		return v
	}
	return null.FloatFrom(Round2(v.Float64))
}

// FormatValue renders v with two decimals, or NoData.
func FormatValue(v null.Float) string {
	if !v.Valid {
		return NoData
	}
	return decimal.NewFromFloat(v.Float64).StringFixed(2)
}

// FormatChange renders a day change as "+1.25% (2.10)".
func FormatChange(pct, abs null.Float) string {
	if !pct.Valid || !abs.Valid {
		return NoData
	}
	sign := ""
	if pct.Float64 > 0 {
		sign = "+"
	}
	return fmt.Sprintf("%s%s%% (%s)", sign, FormatValue(pct), FormatValue(abs))
}

func toneClass(t model.Tone) string {
	switch t {
	case model.ToneBullish:
		return "bullish"
	case model.ToneBearish:
		return "bearish"
	case model.ToneNoData:
		return "nodata"
	default:
		return "neutral"
	}
}

func buildRow(rec *model.TickerRecord) row {
	ind := rec.Indicators
	r := row{
		Symbol: rec.Symbol,
		URL:    QuoteURL + url.PathEscape(rec.Symbol),
	}
	for _, s := range signal.Classify(rec) {
		text := FormatValue(null.NewFloat(s.Value, s.Valid))
		if s.Metric == model.MetricChange {
			text = FormatChange(ind.PercentChange, ind.AbsChange)
		}
		r.Cells = append(r.Cells, cell{Text: text, Class: toneClass(s.Tone)})
	}
	return r
}

func buildTableRow(rec *model.TickerRecord) TableRow {
	ind := rec.Indicators
	return TableRow{
		Name:          rec.Symbol,
		Price:         round(null.FloatFrom(rec.Quote.CurrentPrice)),
		PercentChange: round(ind.PercentChange),
		AbsChange:     round(ind.AbsChange),
		BidAskSpread:  round(ind.BidAskSpread),
		PEG:           round(ind.PEG),
		RSI:           round(ind.RSI),
		KStochastic:   round(ind.StochasticK),
		MACD:          round(ind.MACD),
	}
}

// Render writes the HTML report for result to w. Rows follow the order in
// which the symbols were collected.
func Render(w io.Writer, result *model.RunResult, generatedAt time.Time) error {
	p := page{
		Generated: generatedAt.Format(TimeLayout),
		Headers:   headers,
		Dropped:   result.Dropped,
		Table:     []TableRow{},
	}
	result.Each(func(rec *model.TickerRecord) {
		p.Rows = append(p.Rows, buildRow(rec))
		p.Table = append(p.Table, buildTableRow(rec))
	})
	if err := reportTemplate.Execute(w, p); err != nil {
		return fmt.Errorf("render report: %w", err)
	}
	return nil
}
