// Package github implements the watch subscriber on the GitHub REST API
// directly. It is used when a personal access token is configured; without
// one the gh CLI gateway handles all traffic instead.
package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	gogithub "github.com/google/go-github/v68/github"
	"github.com/sirupsen/logrus"

	"github.com/mcp-tools/mcpwatch/pkg/log"
	"github.com/mcp-tools/mcpwatch/pkg/watch"
)

// Client implements watch.Subscriber against api.github.com.
type Client struct {
	gh     *gogithub.Client
	logger *logrus.Logger
}

var _ watch.Subscriber = (*Client)(nil)

// NewClient builds a Client authenticating with the given token. API traffic
// is logged through the logrus transport.
func NewClient(token string, logger *logrus.Logger) *Client {
	httpClient := &http.Client{
		Transport: log.NewTransport(nil, logger),
	}
	return NewClientFrom(gogithub.NewClient(httpClient).WithAuthToken(token), logger)
}

// NewClientFrom wraps an existing go-github client. Used by tests to inject
// a mocked HTTP client.
func NewClientFrom(gh *gogithub.Client, logger *logrus.Logger) *Client {
	return &Client{
		gh:     gh,
		logger: logger,
	}
}

// CheckAuth verifies the token by fetching the authenticated user.
func (c *Client) CheckAuth(ctx context.Context) error {
	user, resp, err := c.gh.Users.Get(ctx, "")
	if err != nil {
		return fmt.Errorf("failed to verify GitHub credentials (set GITHUB_PERSONAL_ACCESS_TOKEN or run `gh auth login`): %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	c.logger.WithField("login", user.GetLogin()).Debug("authenticated")
	return nil
}

// Subscribe sets the repository subscription to subscribed=true,
// ignored=false.
func (c *Client) Subscribe(ctx context.Context, owner, name string) error {
	sub := &gogithub.Subscription{
		Subscribed: gogithub.Ptr(true),
		Ignored:    gogithub.Ptr(false),
	}

	_, resp, err := c.gh.Activity.SetRepositorySubscription(ctx, owner, name, sub)
	if err != nil {
		return fmt.Errorf("failed to set subscription for %s/%s: %w", owner, name, err)
	}
	defer func() { _ = resp.Body.Close() }()

	return nil
}

// Unsubscribe deletes the repository subscription.
func (c *Client) Unsubscribe(ctx context.Context, owner, name string) error {
	resp, err := c.gh.Activity.DeleteRepositorySubscription(ctx, owner, name)
	if err != nil {
		return fmt.Errorf("failed to delete subscription for %s/%s: %w", owner, name, err)
	}
	defer func() { _ = resp.Body.Close() }()

	return nil
}

// Subscription reports the current subscription state. A 404 means the user
// is not watching the repository.
func (c *Client) Subscription(ctx context.Context, owner, name string) (watch.State, error) {
	sub, resp, err := c.gh.Activity.GetRepositorySubscription(ctx, owner, name)
	if err != nil {
		var ghErr *gogithub.ErrorResponse
		if errors.As(err, &ghErr) && ghErr.Response != nil && ghErr.Response.StatusCode == http.StatusNotFound {
			return watch.StateNone, nil
		}
		return watch.StateNone, fmt.Errorf("failed to get subscription for %s/%s: %w", owner, name, err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case sub == nil:
		return watch.StateNone, nil
	case sub.GetIgnored():
		return watch.StateIgnored, nil
	case sub.GetSubscribed():
		return watch.StateSubscribed, nil
	default:
		return watch.StateNone, nil
	}
}
