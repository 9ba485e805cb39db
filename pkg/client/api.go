package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	domainMessage "github.com/Anaselll/TeachMeApp/pkg/domain/message"
	domainSession "github.com/Anaselll/TeachMeApp/pkg/domain/session"
	"github.com/google/uuid"
	"github.com/valyala/fasthttp"
)

const defaultTimeout = 10 * time.Second

// APIError is a non-2xx answer of the session service.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

// IsStatus reports whether err is an APIError with the given status code.
func IsStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == status
}

//go:generate mockery --name=API --dir=. --output=./mocks --filename=api_mock.go --case=underscore
type API interface {
	ListSessions(ctx context.Context, role domainSession.Role, status domainSession.Status) ([]domainSession.Session, error)
	SignalReady(ctx context.Context, sessionID uuid.UUID, role domainSession.Role) (bool, error)
	ListMessages(ctx context.Context, sessionID uuid.UUID) ([]domainMessage.Message, error)
	SendMessage(ctx context.Context, sessionID, senderID, receiverID uuid.UUID, content string) (*domainMessage.Message, error)
}

type apiClient struct {
	baseURL string
	token   string
	client  *fasthttp.Client
}

// NewAPIClient talks to the session service at baseURL with the given bearer token.
func NewAPIClient(baseURL, token string, client *fasthttp.Client) API {
	if client == nil {
		client = &fasthttp.Client{
			ReadTimeout:              defaultTimeout,
			WriteTimeout:             defaultTimeout,
			NoDefaultUserAgentHeader: true,
		}
	}
	return &apiClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		client:  client,
	}
}

func (c *apiClient) ListSessions(
	ctx context.Context,
	role domainSession.Role,
	status domainSession.Status,
) ([]domainSession.Session, error) {
	query := url.Values{}
	query.Set("role", role.String())
	if status != "" {
		query.Set("status", string(status))
	}
	var sessions []domainSession.Session
	if err := c.do(ctx, fasthttp.MethodGet, "/api/sessions?"+query.Encode(), nil, fasthttp.StatusOK, &sessions); err != nil {
		return nil, err
	}
	return sessions, nil
}

func (c *apiClient) SignalReady(ctx context.Context, sessionID uuid.UUID, role domainSession.Role) (bool, error) {
	var out struct {
		Message string `json:"message"`
		Ready   bool   `json:"ready"`
	}
	body := map[string]string{"role": role.String()}
	path := fmt.Sprintf("/api/sessions/%s/room/ready", sessionID)
	if err := c.do(ctx, fasthttp.MethodPost, path, body, fasthttp.StatusOK, &out); err != nil {
		return false, err
	}
	return out.Ready, nil
}

func (c *apiClient) ListMessages(ctx context.Context, sessionID uuid.UUID) ([]domainMessage.Message, error) {
	var messages []domainMessage.Message
	path := fmt.Sprintf("/api/sessions/%s/messages", sessionID)
	if err := c.do(ctx, fasthttp.MethodGet, path, nil, fasthttp.StatusOK, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

func (c *apiClient) SendMessage(
	ctx context.Context,
	sessionID, senderID, receiverID uuid.UUID,
	content string,
) (*domainMessage.Message, error) {
	body := map[string]string{
		"sender_id":   senderID.String(),
		"receiver_id": receiverID.String(),
		"content":     content,
	}
	var msg domainMessage.Message
	path := fmt.Sprintf("/api/sessions/%s/messages", sessionID)
	if err := c.do(ctx, fasthttp.MethodPost, path, body, fasthttp.StatusCreated, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

func (c *apiClient) do(ctx context.Context, method, path string, in interface{}, expected int, out interface{}) error {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.baseURL + path)
	req.Header.SetMethod(method)
	req.Header.Set(fasthttp.HeaderAuthorization, "Bearer "+c.token)
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		req.Header.SetContentType("application/json")
		req.SetBody(payload)
	}

	timeout := defaultTimeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
	}
	if err := c.client.DoTimeout(req, resp, timeout); err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}

	if resp.StatusCode() != expected {
		var errBody struct {
			Error string `json:"error"`
		}
		_ = json.Unmarshal(resp.Body(), &errBody)
		return &APIError{StatusCode: resp.StatusCode(), Message: errBody.Error}
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
