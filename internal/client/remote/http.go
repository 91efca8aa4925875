package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/dmuchiri/tributewall/internal/common"
	"github.com/dmuchiri/tributewall/internal/logging"
	"github.com/dmuchiri/tributewall/internal/models"
)

// HTTPClient implements Client against the store's single HTTP endpoint:
// an unauthenticated GET for the list and form-encoded POSTs for append
// and remove.
type HTTPClient struct {
	endpoint string
	hc       *http.Client
	logger   logging.Logger
}

func NewHTTPClient(endpoint string, timeout time.Duration, logger logging.Logger) *HTTPClient {
	return &HTTPClient{
		endpoint: endpoint,
		hc:       &http.Client{Timeout: timeout},
		logger:   logger,
	}
}

func (c *HTTPClient) List(ctx context.Context) ([]models.Tribute, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrTransport, err)
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: list returned %s", common.ErrTransport, resp.Status)
	}

	var payload listResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrProtocol, err)
	}

	tributes := make([]models.Tribute, 0, len(payload.Data))
	for i := range payload.Data {
		tributes = append(tributes, payload.Data[i].toModel())
	}
	return tributes, nil
}

func (c *HTTPClient) Append(ctx context.Context, r AppendRequest) (string, error) {
	form := url.Values{}
	form.Set("name", r.AuthorName)
	form.Set("relation", r.Relationship)
	form.Set("message", r.Message)
	form.Set("location", r.Location)
	form.Set("uuid", r.OwnerToken)
	form.Set("ts", strconv.FormatInt(r.SubmittedAt.UnixMilli(), 10))

	payload, err := c.postForm(ctx, form)
	if err != nil {
		return "", err
	}

	switch payload.Status {
	case statusSuccess:
		if payload.ID == "" {
			return "", fmt.Errorf("%w: append succeeded without an id", common.ErrProtocol)
		}
		return string(payload.ID), nil
	case statusError:
		return "", &common.RejectedError{Message: payload.Message}
	default:
		return "", fmt.Errorf("%w: unexpected append status %q", common.ErrProtocol, payload.Status)
	}
}

func (c *HTTPClient) Remove(ctx context.Context, id, ownerToken string) error {
	form := url.Values{}
	form.Set("deleteId", id)
	form.Set("uuid", ownerToken)

	payload, err := c.postForm(ctx, form)
	if err != nil {
		return err
	}

	switch payload.Status {
	case statusDeleted:
		return nil
	case statusNotFound:
		return common.ErrNotFound
	default:
		return fmt.Errorf("%w: unexpected remove status %q: %s", common.ErrProtocol, payload.Status, payload.Message)
	}
}

// postForm sends a form-encoded POST to the endpoint and decodes the JSON
// reply. An unparsable body is a protocol error, even for deletes: the
// store has not confirmed anything the caller may act on.
func (c *HTTPClient) postForm(ctx context.Context, form url.Values) (*mutationResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrTransport, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: store returned %s", common.ErrTransport, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrTransport, err)
	}

	var payload mutationResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrProtocol, err)
	}
	return &payload, nil
}
