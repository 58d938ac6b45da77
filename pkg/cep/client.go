package cep

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/casadosaber/signup/pkg/logger"
	"github.com/casadosaber/signup/pkg/mask"
)

const (
	// DefaultBaseURL is the public ViaCEP endpoint.
	DefaultBaseURL = "https://viacep.com.br/ws"
	// DefaultTimeout bounds a single upstream request.
	DefaultTimeout = 5 * time.Second

	maxResponseSize = 64 << 10
)

// viaCEPResponse mirrors the ViaCEP JSON payload. "erro" has been served
// both as a boolean and as the string "true".
type viaCEPResponse struct {
	CEP         string `json:"cep"`
	Logradouro  string `json:"logradouro"`
	Complemento string `json:"complemento"`
	Bairro      string `json:"bairro"`
	Localidade  string `json:"localidade"`
	UF          string `json:"uf"`
	IBGE        string `json:"ibge"`
	Erro        any    `json:"erro"`
}

func (r viaCEPResponse) notFound() bool {
	switch v := r.Erro.(type) {
	case bool:
		return v
	case string:
		return strings.EqualFold(v, "true")
	default:
		return false
	}
}

// Client looks addresses up on a ViaCEP compatible service.
type Client struct {
	baseURL string
	http    *http.Client
	breaker *Breaker
	logger  *slog.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

func WithBaseURL(u string) ClientOption {
	return func(c *Client) {
		if u != "" {
			c.baseURL = u
		}
	}
}

func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithTimeout sets the per-request timeout of the default HTTP client.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithBreaker replaces the circuit breaker. Nil disables it.
func WithBreaker(b *Breaker) ClientOption {
	return func(c *Client) {
		c.breaker = b
	}
}

func WithLogger(l *slog.Logger) ClientOption {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewClient creates a client for DefaultBaseURL with a default breaker.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		http:    &http.Client{Timeout: DefaultTimeout},
		breaker: NewBreaker(0, 0, 0),
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.baseURL = strings.TrimRight(c.baseURL, "/")
	return c
}

// NewClientFromConfig creates a client from environment configuration.
func NewClientFromConfig(cfg Config, opts ...ClientOption) *Client {
	base := []ClientOption{
		WithBaseURL(cfg.BaseURL),
		WithTimeout(cfg.Timeout),
		WithBreaker(NewBreaker(cfg.BreakerFailures, 0, cfg.BreakerCooldown)),
	}
	return NewClient(append(base, opts...)...)
}

// Lookup fetches the address of cep. Malformed input is rejected with
// ErrInvalidCEP before any request is made.
func (c *Client) Lookup(ctx context.Context, cep string) (Address, error) {
	digits, err := Normalize(cep)
	if err != nil {
		return Address{}, err
	}

	if c.breaker != nil && !c.breaker.Allow() {
		return Address{}, errors.Join(ErrUnavailable, ErrCircuitOpen)
	}

	addr, err := c.fetch(ctx, digits)
	c.record(ctx, err)

	if errors.Is(err, ErrUnavailable) && ctx.Err() == nil {
		c.logger.WarnContext(ctx, "address lookup failed",
			logger.Component("cep"),
			logger.CEP(digits),
			logger.Error(err),
		)
	}
	return addr, err
}

// Breaker returns the client's circuit breaker, or nil.
func (c *Client) Breaker() *Breaker {
	return c.breaker
}

func (c *Client) fetch(ctx context.Context, digits string) (Address, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/"+digits+"/json/", nil)
	if err != nil {
		return Address{}, errors.Join(ErrUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return Address{}, errors.Join(ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusBadRequest:
		return Address{}, ErrInvalidCEP
	case resp.StatusCode == http.StatusNotFound:
		return Address{}, ErrNotFound
	case resp.StatusCode != http.StatusOK:
		return Address{}, fmt.Errorf("%w: unexpected status %d", ErrUnavailable, resp.StatusCode)
	}

	var payload viaCEPResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseSize)).Decode(&payload); err != nil {
		return Address{}, errors.Join(ErrUnavailable, err)
	}
	if payload.notFound() {
		return Address{}, ErrNotFound
	}

	return Address{
		CEP:          mask.Apply(digits, mask.CEP),
		Street:       payload.Logradouro,
		Complement:   payload.Complemento,
		Neighborhood: payload.Bairro,
		City:         payload.Localidade,
		State:        payload.UF,
		IBGE:         payload.IBGE,
	}, nil
}

// record feeds the outcome to the breaker. Answers from upstream, even
// negative ones, count as success; cancellations by the caller are ignored.
func (c *Client) record(ctx context.Context, err error) {
	if c.breaker == nil {
		return
	}
	switch {
	case err == nil, errors.Is(err, ErrNotFound), errors.Is(err, ErrInvalidCEP):
		c.breaker.RecordSuccess()
	case ctx.Err() != nil:
	default:
		c.breaker.RecordFailure()
	}
}
