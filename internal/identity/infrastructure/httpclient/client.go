package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/essenza-labs/storefront/internal/identity/domain"
)

// Client calls the hosted identity service's REST API. Credentials never pass
// through any other part of the application.
type Client struct {
	log     *slog.Logger
	http    *http.Client
	baseURL string
	anonKey string
}

func New(log *slog.Logger, baseURL, anonKey string) *Client {
	return &Client{
		log:     log,
		http:    &http.Client{Timeout: 10 * time.Second},
		baseURL: baseURL,
		anonKey: anonKey,
	}
}

type userPayload struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Metadata struct {
		Name string `json:"name"`
	} `json:"user_metadata"`
}

func (p userPayload) identity() domain.Identity {
	return domain.Identity{UserID: p.ID, Name: p.Metadata.Name, Email: p.Email}
}

func (c *Client) SignUp(ctx context.Context, email, password, name string) (domain.Identity, error) {
	body, err := json.Marshal(map[string]any{
		"email":    email,
		"password": password,
		"data":     map[string]string{"name": name},
	})
	if err != nil {
		return domain.Identity{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/auth/v1/signup", bytes.NewReader(body))
	if err != nil {
		return domain.Identity{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", c.anonKey)

	var payload userPayload
	if err := c.do(req, &payload); err != nil {
		return domain.Identity{}, err
	}
	return payload.identity(), nil
}

func (c *Client) UserFromToken(ctx context.Context, token string) (domain.Identity, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/auth/v1/user", nil)
	if err != nil {
		return domain.Identity{}, err
	}
	req.Header.Set("apikey", c.anonKey)
	req.Header.Set("Authorization", "Bearer "+token)

	var payload userPayload
	if err := c.do(req, &payload); err != nil {
		return domain.Identity{}, err
	}
	return payload.identity(), nil
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return fmt.Errorf("identity service: %s: %s", resp.Status, bytes.TrimSpace(msg))
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
