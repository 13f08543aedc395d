package watch

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
)

// Service drives watch operations against a Subscriber and reports progress
// through a Printer.
type Service struct {
	sub     Subscriber
	printer *Printer
	logger  *logrus.Logger
}

// NewService builds a Service.
func NewService(sub Subscriber, printer *Printer, logger *logrus.Logger) *Service {
	return &Service{
		sub:     sub,
		printer: printer,
		logger:  logger,
	}
}

// Summary is the outcome of a batch run.
type Summary struct {
	Succeeded int
	Total     int
}

// CheckAuth verifies credentials before any subscription is touched.
func (s *Service) CheckAuth(ctx context.Context) error {
	return s.sub.CheckAuth(ctx)
}

// WatchAll subscribes to every target in order, counting successes. A failed
// subscription is reported and skipped; the loop always runs to completion.
func (s *Service) WatchAll(ctx context.Context, targets []Target) Summary {
	succeeded := 0
	for _, target := range targets {
		s.printer.Infof("Setting watch on %s (%s)", target.Repo, target.Description)
		if err := s.Watch(ctx, target); err != nil {
			s.logger.WithFields(logrus.Fields{
				"repo":  target.Repo,
				"error": err.Error(),
			}).Debug("subscription request failed")
			s.printer.Errorf("Failed to watch %s", target.Repo)
			continue
		}
		succeeded++
	}

	s.printer.Infof("Done: %d/%d repositories watched.", succeeded, len(targets))
	if succeeded == len(targets) {
		s.printer.Okf("All MCP server repositories are now being watched.")
	} else {
		s.printer.Warnf("Some repositories could not be watched. Check them manually on github.com.")
	}

	return Summary{Succeeded: succeeded, Total: len(targets)}
}

// Watch subscribes to a single target and, on success, prints guidance for
// tuning notification granularity in the web UI.
func (s *Service) Watch(ctx context.Context, target Target) error {
	owner, name, err := SplitRepo(target.Repo)
	if err != nil {
		return err
	}

	if err := s.sub.Subscribe(ctx, owner, name); err != nil {
		return fmt.Errorf("failed to watch %s: %w", target.Repo, err)
	}

	s.printer.Okf("Now watching %s", target.Repo)
	s.notificationGuidance(target.Repo)
	return nil
}

// Unwatch deletes the subscription for a repository.
func (s *Service) Unwatch(ctx context.Context, repo string) error {
	owner, name, err := SplitRepo(repo)
	if err != nil {
		return err
	}

	if err := s.sub.Unsubscribe(ctx, owner, name); err != nil {
		return fmt.Errorf("failed to unwatch %s: %w", repo, err)
	}

	s.printer.Okf("No longer watching %s", repo)
	return nil
}

// ListStates prints the current subscription state for every target.
func (s *Service) ListStates(ctx context.Context, targets []Target) {
	for _, target := range targets {
		owner, name, err := SplitRepo(target.Repo)
		if err != nil {
			s.printer.Errorf("%s: %v", target.Repo, err)
			continue
		}

		state, err := s.sub.Subscription(ctx, owner, name)
		if err != nil {
			s.logger.WithFields(logrus.Fields{
				"repo":  target.Repo,
				"error": err.Error(),
			}).Debug("subscription lookup failed")
			s.printer.Errorf("%s: lookup failed", target.Repo)
			continue
		}

		switch state {
		case StateSubscribed:
			s.printer.Okf("%s: %s", target.Repo, state)
		case StateIgnored:
			s.printer.Warnf("%s: %s", target.Repo, state)
		default:
			s.printer.Infof("%s: %s", target.Repo, state)
		}
	}
}

// The subscription API only toggles subscribed/ignored; releases-only or
// security-only granularity has to be picked in the web UI.
func (s *Service) notificationGuidance(repo string) {
	s.printer.Infof("Tip: choose Custom under Watch at https://github.com/%s to limit notifications to releases or security alerts.", repo)
}
