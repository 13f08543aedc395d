package ghcli

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcp-tools/mcpwatch/pkg/watch"
)

type fakeRunner struct {
	out []byte
	err error

	name string
	args []string
}

func (f *fakeRunner) Run(_ context.Context, name string, args ...string) ([]byte, error) {
	f.name = name
	f.args = args
	return f.out, f.err
}

func newTestGateway(runner Runner) *Gateway {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	gw := NewGateway("gh", logger)
	gw.runner = runner
	return gw
}

func TestSubscribe_BuildsRequest(t *testing.T) {
	runner := &fakeRunner{}
	gw := newTestGateway(runner)

	err := gw.Subscribe(context.Background(), "modelcontextprotocol", "servers")
	require.NoError(t, err)

	assert.Equal(t, "gh", runner.name)
	assert.Equal(t, []string{
		"api", "-X", "PUT",
		"repos/modelcontextprotocol/servers/subscription",
		"-F", "subscribed=true",
		"-F", "ignored=false",
	}, runner.args)
}

func TestSubscribe_Failure(t *testing.T) {
	runner := &fakeRunner{
		out: []byte("gh: Resource not accessible by integration (HTTP 403)"),
		err: errors.New("exit status 1"),
	}
	gw := newTestGateway(runner)

	err := gw.Subscribe(context.Background(), "owner", "repo")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to set subscription for owner/repo")
}

func TestUnsubscribe_BuildsRequest(t *testing.T) {
	runner := &fakeRunner{}
	gw := newTestGateway(runner)

	err := gw.Unsubscribe(context.Background(), "owner", "repo")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"api", "-X", "DELETE", "repos/owner/repo/subscription",
	}, runner.args)
}

func TestCheckAuth(t *testing.T) {
	t.Run("valid session", func(t *testing.T) {
		runner := &fakeRunner{out: []byte("Logged in to github.com")}
		gw := newTestGateway(runner)

		require.NoError(t, gw.CheckAuth(context.Background()))
		assert.Equal(t, []string{"auth", "status"}, runner.args)
	})

	t.Run("no session", func(t *testing.T) {
		runner := &fakeRunner{
			out: []byte("You are not logged into any GitHub hosts."),
			err: errors.New("exit status 1"),
		}
		gw := newTestGateway(runner)

		err := gw.CheckAuth(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "gh auth login")
	})
}

func TestSubscription(t *testing.T) {
	tests := []struct {
		name   string
		runner *fakeRunner
		want   watch.State
	}{
		{
			name:   "subscribed",
			runner: &fakeRunner{out: []byte(`{"subscribed":true,"ignored":false}`)},
			want:   watch.StateSubscribed,
		},
		{
			name:   "ignoring",
			runner: &fakeRunner{out: []byte(`{"subscribed":false,"ignored":true}`)},
			want:   watch.StateIgnored,
		},
		{
			name: "not watching",
			runner: &fakeRunner{
				out: []byte("gh: Not Found (HTTP 404)"),
				err: errors.New("exit status 1"),
			},
			want: watch.StateNone,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			gw := newTestGateway(tc.runner)
			state, err := gw.Subscription(context.Background(), "owner", "repo")
			require.NoError(t, err)
			assert.Equal(t, tc.want, state)
		})
	}

	t.Run("other failure", func(t *testing.T) {
		runner := &fakeRunner{
			out: []byte("gh: rate limit exceeded (HTTP 429)"),
			err: errors.New("exit status 1"),
		}
		gw := newTestGateway(runner)

		_, err := gw.Subscription(context.Background(), "owner", "repo")
		require.Error(t, err)
	})
}
