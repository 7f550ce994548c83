// Package client calls the contact API over HTTP. Every failed call, whether
// the server rejected it or it never reached the server, comes back as *Error.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/url"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"contacthub/internal/models"
)

// DefaultTimeout bounds every request when Config.Timeout is zero.
const DefaultTimeout = 10 * time.Second

// FallbackMessage is reported when the server gave no usable message.
const FallbackMessage = "Something went wrong. Please try again."

// ContactInput is the body accepted by Create.
type ContactInput = models.ContactInput

// Config configures a Client.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// ListParams are the optional query parameters of GetAll.
type ListParams struct {
	Search string
	SortBy string
	Order  string
}

// ListResponse is the body of a successful list call.
type ListResponse struct {
	Success bool             `json:"success"`
	Count   int              `json:"count"`
	Data    []models.Contact `json:"data"`
}

// ContactResponse is the body of a successful create or delete call.
type ContactResponse struct {
	Success bool           `json:"success"`
	Message string         `json:"message"`
	Data    models.Contact `json:"data"`
}

// Error is the single failure shape callers see. Status is zero when no
// response was received.
type Error struct {
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

type errorBody struct {
	Message string `json:"message"`
}

// Client is safe for concurrent use.
type Client struct {
	baseURL string
	timeout time.Duration
	http    *fiber.Client
}

// New creates a Client for the API rooted at cfg.BaseURL.
func New(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	hc := fiber.AcquireClient()
	hc.UserAgent = "contacthub-client"
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		timeout: timeout,
		http:    hc,
	}
}

// GetAll lists contacts.
func (c *Client) GetAll(ctx context.Context, params ListParams) (*ListResponse, error) {
	q := url.Values{}
	if params.Search != "" {
		q.Set("search", params.Search)
	}
	if params.SortBy != "" {
		q.Set("sortBy", params.SortBy)
	}
	if params.Order != "" {
		q.Set("order", params.Order)
	}

	agent := c.http.Get(c.baseURL + "/contacts")
	if len(q) > 0 {
		agent.QueryString(q.Encode())
	}

	var out ListResponse
	if err := c.do(ctx, agent, &out); err != nil {
		return nil, err
	}
	if out.Data == nil {
		out.Data = []models.Contact{}
	}
	return &out, nil
}

// Create stores a new contact and returns it as the server saved it.
func (c *Client) Create(ctx context.Context, input ContactInput) (*ContactResponse, error) {
	agent := c.http.Post(c.baseURL + "/contacts").JSON(input)

	var out ContactResponse
	if err := c.do(ctx, agent, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete removes the contact with the given id and returns it.
func (c *Client) Delete(ctx context.Context, id string) (*ContactResponse, error) {
	agent := c.http.Delete(c.baseURL + "/contacts/" + url.PathEscape(id))

	var out ContactResponse
	if err := c.do(ctx, agent, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// do sends the request and decodes a 2xx body into out. The context only
// narrows the timeout; fasthttp has no cancellation of its own.
func (c *Client) do(ctx context.Context, agent *fiber.Agent, out any) error {
	if err := ctx.Err(); err != nil {
		fiber.ReleaseAgent(agent)
		return &Error{Message: FallbackMessage, Err: err}
	}

	timeout := c.timeout
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining < timeout {
			timeout = remaining
		}
	}

	status, body, errs := agent.Timeout(timeout).Bytes()
	if len(errs) > 0 {
		return &Error{Message: FallbackMessage, Err: errors.Join(errs...)}
	}

	if status < fiber.StatusOK || status >= fiber.StatusMultipleChoices {
		msg := FallbackMessage
		var eb errorBody
		if err := json.Unmarshal(body, &eb); err == nil && eb.Message != "" {
			msg = eb.Message
		}
		return &Error{Status: status, Message: msg}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return &Error{Status: status, Message: FallbackMessage, Err: err}
	}
	return nil
}
