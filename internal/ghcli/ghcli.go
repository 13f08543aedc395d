// Package ghcli is a gateway to the external GitHub CLI (gh). It is the
// default transport: the tool itself never opens a network connection, it
// drives gh's auth-status check and its generic `gh api` request primitive.
package ghcli

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strings"
	"time"

	gogithub "github.com/google/go-github/v68/github"
	"github.com/sirupsen/logrus"

	"github.com/mcp-tools/mcpwatch/pkg/watch"
)

// Runner executes an external command and returns its combined output.
// Injected in tests.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).CombinedOutput()
}

// Gateway implements watch.Subscriber on top of the gh CLI.
type Gateway struct {
	bin    string
	runner Runner
	logger *logrus.Logger
}

var _ watch.Subscriber = (*Gateway)(nil)

// NewGateway builds a Gateway invoking the given gh binary. An empty bin
// defaults to "gh" on PATH.
func NewGateway(bin string, logger *logrus.Logger) *Gateway {
	if bin == "" {
		bin = "gh"
	}
	return &Gateway{
		bin:    bin,
		runner: execRunner{},
		logger: logger,
	}
}

// CheckAuth verifies that gh holds a valid credential session.
func (g *Gateway) CheckAuth(ctx context.Context) error {
	if _, err := g.run(ctx, "auth", "status"); err != nil {
		return fmt.Errorf("not authenticated with GitHub: run `%s auth login` first", g.bin)
	}
	return nil
}

// Subscribe issues PUT repos/{owner}/{name}/subscription with
// subscribed=true, ignored=false.
func (g *Gateway) Subscribe(ctx context.Context, owner, name string) error {
	_, err := g.run(ctx, "api", "-X", "PUT",
		fmt.Sprintf("repos/%s/%s/subscription", owner, name),
		"-F", "subscribed=true",
		"-F", "ignored=false",
	)
	if err != nil {
		return fmt.Errorf("failed to set subscription for %s/%s: %w", owner, name, err)
	}
	return nil
}

// Unsubscribe deletes the repository subscription.
func (g *Gateway) Unsubscribe(ctx context.Context, owner, name string) error {
	_, err := g.run(ctx, "api", "-X", "DELETE",
		fmt.Sprintf("repos/%s/%s/subscription", owner, name),
	)
	if err != nil {
		return fmt.Errorf("failed to delete subscription for %s/%s: %w", owner, name, err)
	}
	return nil
}

// Subscription reports the current subscription state. GitHub answers 404
// when the user is not watching the repository, which gh surfaces as a
// "Not Found" failure.
func (g *Gateway) Subscription(ctx context.Context, owner, name string) (watch.State, error) {
	out, err := g.run(ctx, "api", fmt.Sprintf("repos/%s/%s/subscription", owner, name))
	if err != nil {
		if strings.Contains(err.Error(), "Not Found") {
			return watch.StateNone, nil
		}
		return watch.StateNone, fmt.Errorf("failed to get subscription for %s/%s: %w", owner, name, err)
	}

	var sub gogithub.Subscription
	if err := json.Unmarshal(out, &sub); err != nil {
		return watch.StateNone, fmt.Errorf("failed to parse subscription for %s/%s: %w", owner, name, err)
	}

	switch {
	case sub.GetIgnored():
		return watch.StateIgnored, nil
	case sub.GetSubscribed():
		return watch.StateSubscribed, nil
	default:
		return watch.StateNone, nil
	}
}

func (g *Gateway) run(ctx context.Context, args ...string) ([]byte, error) {
	start := time.Now()
	out, err := g.runner.Run(ctx, g.bin, args...)
	durationMs := time.Since(start) / time.Millisecond

	fields := logrus.Fields{
		"bin":        g.bin,
		"args":       strings.Join(args, " "),
		"durationMs": durationMs,
	}

	if err != nil {
		fields["output"] = strings.TrimSpace(string(out))
		g.logger.WithFields(fields).Debug("gh command failed")
		return nil, fmt.Errorf("%s %s: %s", g.bin, args[0], firstLine(out))
	}

	g.logger.WithFields(fields).Debug("gh command")
	return out, nil
}

func firstLine(out []byte) string {
	line := strings.TrimSpace(string(out))
	if i := strings.IndexByte(line, '\n'); i >= 0 {
		line = line[:i]
	}
	if line == "" {
		line = "command failed"
	}
	return line
}
