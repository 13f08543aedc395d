package watch

import "context"

// State describes the current notification subscription for a repository.
type State string

const (
	StateSubscribed State = "subscribed"
	StateIgnored    State = "ignoring"
	StateNone       State = "not watching"
)

// Subscriber mutates and inspects repository notification subscriptions. Two
// implementations exist: the gh CLI gateway and the GitHub REST client.
type Subscriber interface {
	// CheckAuth verifies that a usable credential session exists.
	CheckAuth(ctx context.Context) error

	// Subscribe sets subscribed=true, ignored=false for the repository.
	// The call is idempotent on the GitHub side.
	Subscribe(ctx context.Context, owner, name string) error

	// Unsubscribe deletes the repository subscription.
	Unsubscribe(ctx context.Context, owner, name string) error

	// Subscription reports the repository's current subscription state.
	Subscription(ctx context.Context, owner, name string) (State, error)
}
