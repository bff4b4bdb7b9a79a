// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package enuvens speaks to the remote congregation-management API: group
// listing, group membership, and person records, all behind bearer auth.
package enuvens

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dfcamara/enuvex/internal/httputil"
	"github.com/dfcamara/enuvex/pkg/types"
)

// Client is an HTTP client for the congregation API. Construct with New;
// the zero value is not usable.
type Client struct {
	http        *http.Client
	baseURL     string
	groupsURL   string
	token       string
	userAgent   string
	maxAttempts int
	retryBase   time.Duration
}

// New builds a Client from the API and fetch configuration. It fails when
// the base URL, groups URL, or token is missing, before any network call.
func New(api types.APIConfig, fetch types.FetchConfig) (*Client, error) {
	if api.BaseURL == "" {
		return nil, fmt.Errorf("%w: api.base_url", ErrMissingConfig)
	}
	if api.GroupsURL == "" {
		return nil, fmt.Errorf("%w: api.groups_url", ErrMissingConfig)
	}
	if api.Token == "" {
		return nil, fmt.Errorf("%w: api.token", ErrMissingConfig)
	}

	timeout := api.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	token := api.Token
	if !strings.HasPrefix(token, "Bearer ") {
		token = "Bearer " + token
	}

	return &Client{
		http:        &http.Client{Timeout: timeout},
		baseURL:     strings.TrimRight(api.BaseURL, "/"),
		groupsURL:   api.GroupsURL,
		token:       token,
		userAgent:   api.UserAgent,
		maxAttempts: fetch.MaxAttempts,
		retryBase:   fetch.RetryBaseDelay,
	}, nil
}

// envelope is the common response wrapper: every endpoint nests its payload
// under "results" (an array for the listing, an object elsewhere).
type envelope struct {
	Results json.RawMessage `json:"results"`
}

// ListGroups fetches all groups from the groups endpoint. A failure here is
// fatal to the run and is wrapped with ErrGroupsUnavailable.
func (c *Client) ListGroups(ctx context.Context) ([]types.GroupRef, error) {
	var groups []types.GroupRef
	if err := c.get(ctx, c.groupsURL, &groups); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGroupsUnavailable, err)
	}
	return groups, nil
}

// groupPayload is the membership endpoint payload. The member id list is a
// JSON-encoded array carried inside a string.
type groupPayload struct {
	Peoples string `json:"peoples"`
}

// GroupMembership fetches the member id list of one group. An empty or
// absent list is not an error.
func (c *Client) GroupMembership(ctx context.Context, group types.GroupRef) (types.GroupMembership, error) {
	var payload groupPayload
	url := fmt.Sprintf("%s/groups/%d", c.baseURL, group.ID)
	if err := c.get(ctx, url, &payload); err != nil {
		return types.GroupMembership{}, fmt.Errorf("group %d membership: %w", group.ID, err)
	}

	ids := []types.PersonID{}
	if payload.Peoples != "" {
		if err := json.Unmarshal([]byte(payload.Peoples), &ids); err != nil {
			return types.GroupMembership{}, fmt.Errorf("group %d member list: %w", group.ID, err)
		}
	}
	return types.GroupMembership{Group: group, MemberIDs: ids}, nil
}

// Person fetches one raw person record by id.
func (c *Client) Person(ctx context.Context, id types.PersonID) (types.RawPerson, error) {
	var raw types.RawPerson
	url := fmt.Sprintf("%s/people/%d", c.baseURL, id)
	if err := c.get(ctx, url, &raw); err != nil {
		return types.RawPerson{}, fmt.Errorf("person %d: %w", id, err)
	}
	return raw, nil
}

// CreatePerson posts a new person record and returns the created id when
// the API reports one.
func (c *Client) CreatePerson(ctx context.Context, payload CreatePayload) (int, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return 0, fmt.Errorf("encoding person payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/people", bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("creating request: %w", err)
	}
	c.setHeaders(req)
	req.Header.Set("Content-Type", "application/json")

	resp, err := httputil.DoWithRetry(ctx, c.http, req, c.maxAttempts, c.retryBase)
	if err != nil {
		return 0, fmt.Errorf("person creation request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return 0, &RemoteError{Status: resp.StatusCode, Body: readBody(resp.Body)}
	}

	var created struct {
		ID int `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		// Some deployments answer with an empty body; the create still
		// succeeded.
		return 0, nil
	}
	return created.ID, nil
}

// get performs an authorized GET with retry, unwraps the results envelope,
// and decodes into out.
func (c *Client) get(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	c.setHeaders(req)

	resp, err := httputil.DoWithRetry(ctx, c.http, req, c.maxAttempts, c.retryBase)
	if err != nil {
		return fmt.Errorf("API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &RemoteError{Status: resp.StatusCode, Body: readBody(resp.Body)}
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("parsing response: %w", err)
	}
	if len(env.Results) == 0 || string(env.Results) == "null" {
		return &RemoteError{Status: resp.StatusCode, Body: "empty results"}
	}
	if err := json.Unmarshal(env.Results, out); err != nil {
		return fmt.Errorf("parsing results: %w", err)
	}
	return nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Authorization", c.token)
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
}

// readBody returns a truncated response body for error reporting.
func readBody(r io.Reader) string {
	data, _ := io.ReadAll(io.LimitReader(r, 512))
	return strings.TrimSpace(string(data))
}
