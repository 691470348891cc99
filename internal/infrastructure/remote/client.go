package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/jhoicas/Inventario-transfers/internal/domain/entity"
)

const (
	defaultTimeout  = 15 * time.Second
	maxResponseSize = 1 << 20
)

// APIError respuesta no 2xx de la API remota.
// Message sale del campo "message" (o "error") del payload cuando existe.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("API remota: HTTP %d", e.StatusCode)
	}
	return fmt.Sprintf("API remota: HTTP %d: %s", e.StatusCode, e.Message)
}

// PublicMessage mensaje apto para mostrar al usuario.
func (e *APIError) PublicMessage() string { return e.Message }

// Client adaptador HTTP de la API remota de inventario (empresas, ventas, traslados).
// Cada llamada recibe la sesión y reenvía su token como Bearer.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient construye el cliente. timeout <= 0 usa 15s.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// do ejecuta la petición y decodifica la respuesta (con o sin sobre {"data": ...}) en out.
func (c *Client) do(ctx context.Context, sess entity.Session, method, path string, query url.Values, in, out any) error {
	raw, err := c.send(ctx, sess, method, path, query, in)
	if err != nil {
		return err
	}
	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(unwrapData(raw), out); err != nil {
		return fmt.Errorf("remote: deserializar respuesta de %s: %w", path, err)
	}
	return nil
}

// send ejecuta la petición y devuelve el cuerpo crudo de una respuesta 2xx.
func (c *Client) send(ctx context.Context, sess entity.Session, method, path string, query url.Values, in any) ([]byte, error) {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return nil, fmt.Errorf("remote: serializar request: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("remote: crear HTTP request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if sess.AccessToken != "" {
		req.Header.Set("Authorization", "Bearer "+sess.AccessToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("remote: timeout o cancelación en %s %s: %w", method, path, ctx.Err())
		}
		return nil, fmt.Errorf("remote: llamada HTTP fallida en %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("remote: leer respuesta: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{StatusCode: resp.StatusCode, Message: errorMessage(raw)}
	}
	return raw, nil
}

// unwrapData devuelve el contenido de "data" si la respuesta viene en un sobre.
func unwrapData(raw []byte) []byte {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return trimmed
	}
	var env map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return trimmed
	}
	if data, ok := env["data"]; ok && len(data) > 0 && string(data) != "null" {
		return data
	}
	return trimmed
}

func errorMessage(raw []byte) string {
	var payload struct {
		Message json.RawMessage `json:"message"`
		Error   json.RawMessage `json:"error"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return ""
	}
	for _, field := range []json.RawMessage{payload.Message, payload.Error} {
		var s string
		if len(field) > 0 && json.Unmarshal(field, &s) == nil && strings.TrimSpace(s) != "" {
			return strings.TrimSpace(s)
		}
		// {"error": {"message": "..."}}
		var nested struct {
			Message string `json:"message"`
		}
		if len(field) > 0 && json.Unmarshal(field, &nested) == nil && strings.TrimSpace(nested.Message) != "" {
			return strings.TrimSpace(nested.Message)
		}
	}
	return ""
}

func companyPath(companyID string, rest ...string) string {
	parts := append([]string{"companies", url.PathEscape(companyID)}, rest...)
	return "/" + strings.Join(parts, "/")
}
