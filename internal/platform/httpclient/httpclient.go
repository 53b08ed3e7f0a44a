package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"cat-shelter/internal/platform/sentinel"
)

const (
	DefaultTimeout = 10 * time.Second

	DefaultAPIKeyHeader = "X-Api-Key"
)

// Client envuelve *http.Client con helpers comunes para adapters.
type Client struct {
	HTTP    *http.Client
	BaseURL string // sin "/" final; DoJSON le concatena paths relativos

	// Headers se agregan a todos los requests (p.ej. API key del servicio).
	Headers map[string]string
}

// Config agrupa lo que cada adapter remoto necesita para construir su Client.
type Config struct {
	BaseURL string
	APIKey  string

	// Si está vacío, se usa "X-Api-Key".
	APIKeyHeader string

	Timeout time.Duration

	// Opcional, para tests.
	Transport http.RoundTripper
}

// NewFromConfig arma el Client de un adapter remoto. BaseURL es obligatoria:
// los adapters solo usan paths relativos.
func NewFromConfig(cfg Config) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		return nil, errors.New("httpclient: base url required")
	}
	if _, err := url.ParseRequestURI(base); err != nil {
		return nil, fmt.Errorf("httpclient: invalid base url %q: %w", base, err)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	c := &Client{
		HTTP:    &http.Client{Timeout: timeout, Transport: cfg.Transport},
		BaseURL: base,
	}
	if key := strings.TrimSpace(cfg.APIKey); key != "" {
		h := strings.TrimSpace(cfg.APIKeyHeader)
		if h == "" {
			h = DefaultAPIKeyHeader
		}
		c.Headers = map[string]string{h: key}
	}
	return c, nil
}

// HTTPError representa una respuesta no-2xx.
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	msg := fmt.Sprintf("upstream responded %d %s", e.StatusCode, http.StatusText(e.StatusCode))
	if e.Body != "" {
		msg += ": " + e.Body
	}
	return msg
}

// Unwrap traduce el status a un sentinel:
// 404 => ErrNotFound; 408/429/5xx => ErrUnavailable (reintentable).
func (e *HTTPError) Unwrap() error {
	switch {
	case e.StatusCode == http.StatusNotFound:
		return sentinel.ErrNotFound
	case e.StatusCode == http.StatusRequestTimeout,
		e.StatusCode == http.StatusTooManyRequests,
		e.StatusCode >= 500:
		return sentinel.ErrUnavailable
	default:
		return nil
	}
}

// StatusCode devuelve el status de un *HTTPError dentro de err, o 0.
func StatusCode(err error) int {
	var he *HTTPError
	if errors.As(err, &he) {
		return he.StatusCode
	}
	return 0
}

// maxBody acota lo que se lee de una respuesta (las fotos viajan en base64).
const maxBody = 8 << 20

// DoJSON envía in como JSON (si no es nil) y decodifica la respuesta 2xx en out
// (si no es nil). pathOrURL es relativo a BaseURL o absoluto.
// Un status no-2xx es *HTTPError; una falla de transporte es sentinel.ErrUnavailable,
// salvo que el ctx ya esté cancelado.
func (c *Client) DoJSON(ctx context.Context, method, pathOrURL string, headers map[string]string, in, out any) error {
	if c == nil || c.HTTP == nil {
		return errors.New("httpclient: nil client")
	}

	req, err := c.newRequest(ctx, method, pathOrURL, headers, in)
	if err != nil {
		return err
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("httpclient: %s %s: %w", method, req.URL.Path, ctxErr)
		}
		return fmt.Errorf("%w: httpclient: %s %s: %w", sentinel.ErrUnavailable, method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return fmt.Errorf("%w: httpclient: read body: %w", sentinel.ErrUnavailable, err)
	}

	if resp.StatusCode/100 != 2 {
		return &HTTPError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(raw))}
	}
	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("httpclient: decode %s response: %w", req.URL.Path, err)
	}
	return nil
}

func (c *Client) newRequest(ctx context.Context, method, pathOrURL string, headers map[string]string, in any) (*http.Request, error) {
	target, err := c.resolveURL(pathOrURL)
	if err != nil {
		return nil, err
	}

	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return nil, fmt.Errorf("httpclient: encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("httpclient: build request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	// Los headers del request pisan a los del client.
	for _, hs := range []map[string]string{c.Headers, headers} {
		for k, v := range hs {
			if k = strings.TrimSpace(k); k != "" {
				req.Header.Set(k, v)
			}
		}
	}
	return req, nil
}

func (c *Client) resolveURL(pathOrURL string) (string, error) {
	p := strings.TrimSpace(pathOrURL)
	switch {
	case p == "":
		return "", errors.New("httpclient: empty url")
	case strings.HasPrefix(p, "http://"), strings.HasPrefix(p, "https://"):
		return p, nil
	case c.BaseURL == "":
		return "", fmt.Errorf("httpclient: relative path %q without base url", p)
	}
	return c.BaseURL + "/" + strings.TrimLeft(p, "/"), nil
}
