package report

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/guregu/null/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"TickerReport/internal/model"
)

var generated = time.Date(2025, 3, 7, 16, 5, 9, 0, time.UTC)

func sampleResult() *model.RunResult {
	result := model.NewRunResult("run-1", generated)

	nvda := model.NewTickerRecord("NVDA")
	nvda.Quote.CurrentPrice = 112.694
	nvda.Indicators = model.Indicators{
		RSI:           null.FloatFrom(25.126),
		MACD:          null.FloatFrom(-1.5),
		StochasticK:   null.FloatFrom(50),
		PercentChange: null.FloatFrom(1.255),
		AbsChange:     null.FloatFrom(1.4),
		PEG:           null.FloatFrom(0.9),
		BidAskSpread:  null.FloatFrom(0.02),
		SpreadPercent: null.FloatFrom(0.0177),
	}
	result.Add(nvda)

	spx := model.NewTickerRecord("^GSPC")
	spx.Quote.CurrentPrice = 5770.2
	spx.Indicators = model.Indicators{
		PercentChange: null.FloatFrom(-0.52),
		AbsChange:     null.FloatFrom(-30.1),
	}
	result.Add(spx)

	result.Dropped = append(result.Dropped, model.DroppedSymbol{Symbol: "ZZZZ", Attempts: 5, Reason: "all 5 attempts exhausted"})
	return result
}

func render(t *testing.T, result *model.RunResult) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, result, generated))
	return buf.String()
}

func TestRender_Table(t *testing.T) {
	out := render(t, sampleResult())

	assert.Contains(t, out, "Collected Friday March 07, 2025 (16:05:09)")
	assert.Contains(t, out, `<a href="https://finance.yahoo.com/quote/NVDA">NVDA</a>`)
	assert.Contains(t, out, `<td class="bullish">112.69</td>`)
	assert.Contains(t, out, `<td class="bullish">&#43;1.26% (1.40)</td>`)
	assert.Contains(t, out, `<td class="bullish">25.13</td>`)
	assert.Contains(t, out, `<td class="bearish">-1.50</td>`)
	assert.Contains(t, out, `<td class="neutral">50.00</td>`)
	assert.Contains(t, out, `<td class="bearish">-0.52% (-30.10)</td>`)
	assert.Contains(t, out, `<td class="nodata">no data</td>`)

	// Rows keep collection order.
	assert.Less(t, strings.Index(out, ">NVDA<"), strings.Index(out, ">^GSPC<"))
}

func TestRender_ScriptTable(t *testing.T) {
	out := render(t, sampleResult())

	assert.Contains(t, out, `"Name":"NVDA","Price":112.69,"PercentChange":1.26,"AbsChange":1.4,"BidAskSpread":0.02,"PEG":0.9,"RSI":25.13,"KStochastic":50,"MACD":-1.5`)
	assert.Contains(t, out, `"Name":"^GSPC","Price":5770.2,"PercentChange":-0.52,"AbsChange":-30.1,"BidAskSpread":null,"PEG":null,"RSI":null,"KStochastic":null,"MACD":null`)
}

func TestRender_DroppedFooter(t *testing.T) {
	out := render(t, sampleResult())
	assert.Contains(t, out, `<span title="all 5 attempts exhausted">ZZZZ</span>`)

	empty := render(t, model.NewRunResult("run-2", generated))
	assert.NotContains(t, empty, "No data for")
	assert.Contains(t, empty, "var g_StockTable = [];")
}

func TestFormatChange(t *testing.T) {
	assert.Equal(t, "+2.50% (3.00)", FormatChange(null.FloatFrom(2.5), null.FloatFrom(3)))
	assert.Equal(t, "-0.10% (-0.05)", FormatChange(null.FloatFrom(-0.1), null.FloatFrom(-0.05)))
	assert.Equal(t, "0.00% (0.00)", FormatChange(null.FloatFrom(0), null.FloatFrom(0)))
	assert.Equal(t, NoData, FormatChange(null.Float{}, null.FloatFrom(1)))
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 1.01, Round2(1.005))
	assert.Equal(t, -2.35, Round2(-2.345))
	assert.Equal(t, 100.0, Round2(99.999))
}

func TestWriteFile_AtomicAndSkipsUnchanged(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reports", "stockReport.htm")
	result := sampleResult()

	first, err := WriteFile(path, result, generated)
	require.NoError(t, err)
	assert.False(t, first.Skipped)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, first.Checksum, xxhash.Sum64(content))
	assert.Equal(t, first.Bytes, len(content))

	second, err := WriteFile(path, result, generated)
	require.NoError(t, err)
	assert.True(t, second.Skipped)
	assert.Equal(t, first.Checksum, second.Checksum)

	third, err := WriteFile(path, result, generated.Add(time.Minute))
	require.NoError(t, err)
	assert.False(t, third.Skipped)
	assert.NotEqual(t, first.Checksum, third.Checksum)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files left behind")
}
