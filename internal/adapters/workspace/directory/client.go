// Package directory resuelve workspaces contra el servicio de cuentas.
package directory

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"crm-timeline/internal/platform/httpclient"
	"crm-timeline/internal/ports/workspace"
)

var (
	ErrNotConfigured = errors.New("workspace directory not configured")
	ErrUpstream      = errors.New("workspace directory upstream error")
)

type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// Client implementa workspace.Resolver contra el directorio de cuentas.
type Client struct {
	http   *httpclient.Client
	apiKey string
}

func NewClient(cfg Config) (*Client, error) {
	hc, err := httpclient.New(cfg.BaseURL, cfg.Timeout)
	if err != nil {
		return nil, err
	}
	return &Client{
		http:   hc,
		apiKey: strings.TrimSpace(cfg.APIKey),
	}, nil
}

func (c *Client) IsConfigured() bool {
	return c != nil && c.http != nil && c.http.BaseURL != ""
}

func (c *Client) ResolveForUser(ctx context.Context, userID string) (workspace.Workspace, error) {
	if !c.IsConfigured() {
		return workspace.Workspace{}, ErrNotConfigured
	}
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return workspace.Workspace{}, workspace.ErrNoWorkspace
	}

	var out struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}

	err := c.http.DoJSON(ctx, http.MethodGet, "/v1/users/"+userID+"/workspace",
		map[string]string{"X-Api-Key": c.apiKey},
		nil,
		&out,
	)
	if err != nil {
		var httpErr *httpclient.HTTPError
		if errors.As(err, &httpErr) && httpErr.StatusCode == http.StatusNotFound {
			// usuario sin workspace todavía: no es falla
			return workspace.Workspace{}, workspace.ErrNoWorkspace
		}
		return workspace.Workspace{}, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	out.ID = strings.TrimSpace(out.ID)
	if out.ID == "" {
		return workspace.Workspace{}, workspace.ErrNoWorkspace
	}

	return workspace.Workspace{ID: out.ID, Name: out.Name}, nil
}
