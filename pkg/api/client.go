package api

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ErrConflict is returned by CreateReminder when the service already holds
// the same subscription.
var ErrConflict = errors.New("api: reminder already exists")

// DefaultReminderError is used when the service fails without a message.
const DefaultReminderError = "Failed to set reminder"

// StatusError describes a non-2xx response.
type StatusError struct {
	Status  int
	Message string
}

func (e *StatusError) Error() string {
	return e.Message
}

// Client talks to the remote service. The zero value is not usable; set
// BaseURL.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

// New returns a Client for baseURL. Requests carry no timeout of their own;
// bound them with the context.
func New(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Transport: http.DefaultTransport},
	}
}

// Movies lists the whole catalog.
func (c *Client) Movies(ctx context.Context) ([]Movie, error) {
	return c.listMovies(ctx, "/movies")
}

// Upcoming lists movies that have not been released yet.
func (c *Client) Upcoming(ctx context.Context) ([]Movie, error) {
	return c.listMovies(ctx, "/movies/upcoming")
}

func (c *Client) listMovies(ctx context.Context, path string) ([]Movie, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url(path), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return nil, fmt.Errorf("api: GET %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{
			Status:  resp.StatusCode,
			Message: fmt.Sprintf("API Error: %d %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
		}
	}

	var env Envelope[[]Movie]
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("api: decode %s: %w", path, err)
	}
	if !env.Meta.Success {
		msg := env.Meta.Error
		if msg == "" {
			msg = "request was not successful"
		}
		return nil, fmt.Errorf("api: %s: %s", path, msg)
	}
	if env.Data == nil {
		env.Data = []Movie{}
	}
	return env.Data, nil
}

// CreateReminder subscribes an address to a movie's release. It returns nil
// on 2xx, ErrConflict on 409, and a *StatusError for anything else.
func (c *Client) CreateReminder(ctx context.Context, r ReminderRequest) error {
	body, err := json.Marshal(r)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url("/reminders"), bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return fmt.Errorf("api: POST /reminders: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode <= 299:
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	case resp.StatusCode == http.StatusConflict:
		_, _ = io.Copy(io.Discard, resp.Body)
		return ErrConflict
	}

	msg := DefaultReminderError
	var eb ErrorBody
	if data, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024)); err == nil {
		if json.Unmarshal(data, &eb) == nil && eb.Error != "" {
			msg = eb.Error
		}
	}
	return &StatusError{Status: resp.StatusCode, Message: msg}
}

func (c *Client) url(path string) string {
	return strings.TrimRight(c.BaseURL, "/") + path
}

func (c *Client) httpClient() *http.Client {
	if c.HTTP == nil {
		return http.DefaultClient
	}
	return c.HTTP
}
