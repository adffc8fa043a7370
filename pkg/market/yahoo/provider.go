package yahoo

import (
	"context"
	"net/http"
	"time"

	"folio-api/pkg/market"
	"folio-api/pkg/portfolio"
)

const defaultProviderTimeout = 8 * time.Second

// Provider adapts the Yahoo client to the generic market.Provider contract,
// bounding every call with a per-request timeout.
type Provider struct {
	client  *Client
	timeout time.Duration
}

type providerConfig struct {
	timeout       time.Duration
	clientOptions []Option
}

// ProviderOption customises the Yahoo provider.
type ProviderOption func(*providerConfig)

// WithTimeout overrides the default per-call timeout.
func WithTimeout(timeout time.Duration) ProviderOption {
	return func(cfg *providerConfig) {
		if timeout > 0 {
			cfg.timeout = timeout
		}
	}
}

// WithClientOptions passes options to the underlying client.
func WithClientOptions(options ...Option) ProviderOption {
	return func(cfg *providerConfig) {
		cfg.clientOptions = append(cfg.clientOptions, options...)
	}
}

// NewProvider constructs a Yahoo market provider.
func NewProvider(opts ...ProviderOption) *Provider {
	cfg := &providerConfig{timeout: defaultProviderTimeout}
	for _, opt := range opts {
		opt(cfg)
	}
	return &Provider{
		client:  NewClient(cfg.clientOptions...),
		timeout: cfg.timeout,
	}
}

func (p *Provider) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if p.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, p.timeout)
}

func (p *Provider) Quotes(ctx context.Context, symbols []string) ([]portfolio.Quote, error) {
	ctx, cancel := p.withTimeout(ctx)
	defer cancel()
	return p.client.FetchQuotes(ctx, symbols)
}

func (p *Provider) History(ctx context.Context, symbol string, rng market.Range, interval market.Interval) (*market.Series, error) {
	ctx, cancel := p.withTimeout(ctx)
	defer cancel()
	return p.client.FetchHistory(ctx, symbol, rng, interval)
}

func (p *Provider) MarketSummary(ctx context.Context) ([]market.IndexQuote, error) {
	ctx, cancel := p.withTimeout(ctx)
	defer cancel()
	return p.client.FetchMarketSummary(ctx)
}

func (p *Provider) Search(ctx context.Context, query string) ([]market.SearchResult, error) {
	ctx, cancel := p.withTimeout(ctx)
	defer cancel()
	return p.client.FetchSearch(ctx, query)
}

var _ market.Provider = (*Provider)(nil)

func init() {
	market.RegisterProvider("yahoo", func(name string, cfg *market.ProviderConfig) (market.Provider, error) {
		opts := []ProviderOption{}
		clientOptions := []Option{}
		if cfg.Timeout > 0 {
			opts = append(opts, WithTimeout(cfg.Timeout))
		}
		if cfg.HTTPTimeout > 0 {
			clientOptions = append(clientOptions, WithHTTPClient(&http.Client{Timeout: cfg.HTTPTimeout}))
		}
		if cfg.BaseURL != "" {
			clientOptions = append(clientOptions, WithBaseURL(cfg.BaseURL))
		}
		if cfg.APIKey != "" {
			clientOptions = append(clientOptions, WithAPIKey(cfg.APIKey))
		}
		if cfg.Region != "" {
			clientOptions = append(clientOptions, WithRegion(cfg.Region))
		}
		if cfg.Lang != "" {
			clientOptions = append(clientOptions, WithLang(cfg.Lang))
		}
		if cfg.MaxRetries > 0 {
			clientOptions = append(clientOptions, WithMaxRetries(cfg.MaxRetries))
		}
		if len(clientOptions) > 0 {
			opts = append(opts, WithClientOptions(clientOptions...))
		}
		return NewProvider(opts...), nil
	})
}
