package binance

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"options_go/internal/domain"
	"options_go/internal/infra"
)

// MetadataClient fetches the tradable option universe from the exchange
// metadata endpoint and filters it by underlying asset.
type MetadataClient struct {
	url         string
	underlyings map[string]struct{}
	quoteSuffix string
	httpClient  *http.Client
}

// NewMetadataClient creates a metadata client for the given endpoint. Only
// instruments whose underlying (minus quoteSuffix) is in underlyings survive.
func NewMetadataClient(url string, underlyings []string, quoteSuffix string) *MetadataClient {
	allow := make(map[string]struct{}, len(underlyings))
	for _, u := range underlyings {
		allow[u] = struct{}{}
	}
	return &MetadataClient{
		url:         url,
		underlyings: allow,
		quoteSuffix: quoteSuffix,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// FetchUniverse returns the ordered option symbol list for the allow-listed
// underlyings. Network, status or decode failures yield a TransportError;
// a universe of zero instruments yields an EmptyResultError.
func (c *MetadataClient) FetchUniverse(ctx context.Context) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, domain.NewTransportError("fetch universe", err)
	}
	req.Header.Set("User-Agent", infra.DefaultUserAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, domain.NewTransportError("fetch universe", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, domain.NewTransportError("fetch universe",
			fmt.Errorf("unexpected status code: %d", resp.StatusCode))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, domain.NewTransportError("fetch universe", err)
	}

	var info exchangeInfoResponse
	if err := json.Unmarshal(body, &info); err != nil {
		return nil, domain.NewTransportError("decode universe", err)
	}

	if len(info.OptionSymbols) == 0 {
		return nil, &domain.EmptyResultError{Endpoint: c.url}
	}

	symbols := make([]string, 0, len(info.OptionSymbols))
	for _, opt := range info.OptionSymbols {
		base := strings.TrimSuffix(opt.Underlying, c.quoteSuffix)
		if _, ok := c.underlyings[base]; ok {
			symbols = append(symbols, opt.Symbol)
		}
	}
	return symbols, nil
}
