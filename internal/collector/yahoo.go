package collector

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"sync"
	"time"

	"TickerReport/internal/model"
)

const (
	yahooQueryURL  = "https://query2.finance.yahoo.com"
	yahooCookieURL = "https://fc.yahoo.com"
	yahooUserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"
)

// quoteSummary modules, in the order their fields take precedence.
var yahooModules = []string{"financialData", "summaryDetail", "defaultKeyStatistics", "price"}

var errInvalidCrumb = errors.New("yahoo: invalid crumb")

// YahooProvider implements Provider using the Yahoo Finance public API.
type YahooProvider struct {
	Client    *http.Client
	BaseURL   string
	CookieURL string            // empty skips the cookie/crumb handshake
	SymbolMap map[string]string // maps internal symbol to Yahoo ticker

	mu    sync.Mutex
	crumb string
}

// NewYahooProvider creates a Yahoo Finance provider with optional proxy support.
func NewYahooProvider(proxyURL string, timeout time.Duration) *YahooProvider {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	jar, _ := cookiejar.New(nil)
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &YahooProvider{
		Client: &http.Client{
			Timeout:   timeout,
			Transport: transport,
			Jar:       jar,
		},
		BaseURL:   yahooQueryURL,
		CookieURL: yahooCookieURL,
		SymbolMap: map[string]string{
			"SPX500": "^GSPC",
			"SPX":    "^GSPC",
			"SP500":  "^GSPC",
		},
	}
}

func (f *YahooProvider) Name() string { return "yahoo" }

func (f *YahooProvider) yahooSymbol(symbol string) string {
	if mapped, ok := f.SymbolMap[symbol]; ok {
		return mapped
	}
	return symbol
}

func (f *YahooProvider) get(ctx context.Context, u string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("User-Agent", yahooUserAgent)

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("yahoo fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 64<<20))
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("yahoo read body: %w", err)
	}
	return body, resp.StatusCode, nil
}

// ensureCrumb performs the cookie/crumb handshake quoteSummary requires.
func (f *YahooProvider) ensureCrumb(ctx context.Context) (string, error) {
	if f.CookieURL == "" {
		return "", nil
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.crumb != "" {
		return f.crumb, nil
	}

	// The cookie endpoint answers 404 but still sets the session cookie.
	if _, _, err := f.get(ctx, f.CookieURL); err != nil {
		return "", fmt.Errorf("yahoo cookie: %w", err)
	}
	body, status, err := f.get(ctx, f.BaseURL+"/v1/test/getcrumb")
	if err != nil {
		return "", fmt.Errorf("yahoo crumb: %w", err)
	}
	crumb := strings.TrimSpace(string(body))
	if status != http.StatusOK || crumb == "" || strings.Contains(crumb, "<") {
		return "", fmt.Errorf("yahoo crumb: status %d", status)
	}
	f.crumb = crumb
	return crumb, nil
}

func (f *YahooProvider) resetCrumb() {
	f.mu.Lock()
	f.crumb = ""
	f.mu.Unlock()
}

// yahooSummary is the response structure from the quoteSummary API. Each
// module is kept raw and flattened field by field.
type yahooSummary struct {
	QuoteSummary struct {
		Result []map[string]map[string]json.RawMessage `json:"result"`
		Error  *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"quoteSummary"`
}

// FetchSnapshot loads the quote fields of symbol. A symbol Yahoo knows
// nothing about yields an empty snapshot, not an error.
func (f *YahooProvider) FetchSnapshot(ctx context.Context, symbol string) (*model.Snapshot, error) {
	crumb, err := f.ensureCrumb(ctx)
	if err != nil {
		return nil, err
	}

	q := url.Values{}
	q.Set("modules", strings.Join(yahooModules, ","))
	if crumb != "" {
		q.Set("crumb", crumb)
	}
	u := fmt.Sprintf("%s/v10/finance/quoteSummary/%s?%s",
		f.BaseURL, url.PathEscape(f.yahooSymbol(symbol)), q.Encode())

	body, status, err := f.get(ctx, u)
	if err != nil {
		return nil, err
	}
	if status == http.StatusUnauthorized {
		f.resetCrumb()
		return nil, errInvalidCrumb
	}
	if status == http.StatusNotFound {
		return model.NewSnapshot(), nil
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("yahoo: status %d, body: %s", status, truncate(body, 200))
	}

	var summary yahooSummary
	if err := json.Unmarshal(body, &summary); err != nil {
		return nil, fmt.Errorf("yahoo decode: %w", err)
	}
	if e := summary.QuoteSummary.Error; e != nil {
		return nil, fmt.Errorf("yahoo api error: %s: %s", e.Code, e.Description)
	}

	snap := model.NewSnapshot()
	for _, result := range summary.QuoteSummary.Result {
		for _, module := range yahooModules {
			flattenModule(snap, result[module])
		}
	}
	return snap, nil
}

// flattenModule copies a module's fields into snap. Yahoo encodes numbers
// as {"raw": 1.2, "fmt": "1.20"}; an empty object means no value.
func flattenModule(snap *model.Snapshot, fields map[string]json.RawMessage) {
	for name, raw := range fields {
		var v interface{}
		if err := json.Unmarshal(raw, &v); err != nil {
			continue
		}
		switch val := v.(type) {
		case float64:
			snap.SetNumber(name, val)
		case string:
			snap.SetString(name, val)
		case map[string]interface{}:
			if n, ok := val["raw"].(float64); ok {
				snap.SetNumber(name, n)
			}
		}
	}
}

// yahooChart is the response structure from Yahoo Finance chart API.
type yahooChart struct {
	Chart struct {
		Result []struct {
			Meta struct {
				ExchangeTimezoneName string `json:"exchangeTimezoneName"`
				GMTOffset            int    `json:"gmtoffset"`
			} `json:"meta"`
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []*float64 `json:"open"`
					High   []*float64 `json:"high"`
					Low    []*float64 `json:"low"`
					Close  []*float64 `json:"close"`
					Volume []*float64 `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

func at(series []*float64, i int) (float64, bool) {
	if i >= len(series) || series[i] == nil {
		return 0, false
	}
	return *series[i], true
}

// FetchHistory returns the daily bars of symbol over window in the order
// Yahoo sends them. Bars missing the close, high or low (holidays, halts,
// partial prints) are skipped; a missing open falls back to the close.
func (f *YahooProvider) FetchHistory(ctx context.Context, symbol string, window model.Window) ([]model.OHLCV, error) {
	if !window.Valid() {
		return nil, fmt.Errorf("yahoo: unsupported window %q", window)
	}
	u := fmt.Sprintf("%s/v8/finance/chart/%s?interval=1d&range=%s",
		f.BaseURL, url.PathEscape(f.yahooSymbol(symbol)), window)

	body, status, err := f.get(ctx, u)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("yahoo: status %d, body: %s", status, truncate(body, 200))
	}

	var chart yahooChart
	if err := json.Unmarshal(body, &chart); err != nil {
		return nil, fmt.Errorf("yahoo decode: %w", err)
	}
	if chart.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo api error: %s", chart.Chart.Error.Description)
	}
	if len(chart.Chart.Result) == 0 || len(chart.Chart.Result[0].Timestamp) == 0 ||
		len(chart.Chart.Result[0].Indicators.Quote) == 0 {
		return nil, nil
	}

	result := chart.Chart.Result[0]
	loc := time.FixedZone("exchange", result.Meta.GMTOffset)
	if result.Meta.ExchangeTimezoneName != "" {
		if l, err := time.LoadLocation(result.Meta.ExchangeTimezoneName); err == nil {
			loc = l
		}
	}

	quote := result.Indicators.Quote[0]
	bars := make([]model.OHLCV, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		o, okO := at(quote.Open, i)
		h, okH := at(quote.High, i)
		l, okL := at(quote.Low, i)
		c, okC := at(quote.Close, i)
		if !okH || !okL || !okC {
			continue
		}
		if !okO {
			o = c
		}
		vol, _ := at(quote.Volume, i)
		bars = append(bars, model.OHLCV{
			Time:   model.CalendarDate(time.Unix(ts, 0), loc),
			Open:   o,
			High:   h,
			Low:    l,
			Close:  c,
			Volume: vol,
		})
	}
	return bars, nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
