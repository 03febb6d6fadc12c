// AngelaMos | 2026
// exchange.go

package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/etuitionbd/server/internal/core"
)

// RateSource resolves how many units of the settlement currency one unit
// of the posting's local currency is worth.
type RateSource interface {
	Rate(ctx context.Context, from, to string) (float64, error)
}

type exchangeClient struct {
	baseURL string
	http    *http.Client
}

func NewExchangeClient(baseURL string, timeout time.Duration) RateSource {
	return &exchangeClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *exchangeClient) Rate(
	ctx context.Context,
	from, to string,
) (float64, error) {
	url := fmt.Sprintf("%s/%s", c.baseURL, strings.ToUpper(from))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, fmt.Errorf("exchange rate request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, fmt.Errorf("exchange rate fetch: %v: %w", err, core.ErrUpstream)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf(
			"exchange rate fetch: status %d: %w",
			resp.StatusCode,
			core.ErrUpstream,
		)
	}

	var payload struct {
		Rates map[string]float64 `json:"rates"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return 0, fmt.Errorf("exchange rate decode: %v: %w", err, core.ErrUpstream)
	}

	rate, ok := payload.Rates[strings.ToUpper(to)]
	if !ok || rate <= 0 {
		return 0, fmt.Errorf(
			"exchange rate missing for %s: %w",
			to,
			core.ErrUpstream,
		)
	}

	return rate, nil
}
