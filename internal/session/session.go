// Package session holds the explicit authentication state machine the
// application constructs once at start: a probe of /auth/me resolves
// Checking into Authenticated or Anonymous, and login/logout move between
// the two afterwards.
package session

import (
	"context"
	"log/slog"

	"github.com/laundromat-id/adminctl/internal/apiclient"
)

type State string

const (
	Checking      State = "checking"
	Authenticated State = "authenticated"
	Anonymous     State = "anonymous"
)

type Session struct {
	api   *apiclient.Client
	state State
	user  *apiclient.User
}

func New(api *apiclient.Client) *Session {
	return &Session{api: api, state: Checking}
}

func (s *Session) State() State {
	return s.state
}

// CurrentUser returns the signed-in user, if any.
func (s *Session) CurrentUser() (*apiclient.User, bool) {
	if s.state != Authenticated || s.user == nil {
		return nil, false
	}
	return s.user, true
}

// Probe resolves the initial Checking state. Any failure, 401 or network,
// lands in Anonymous: the user signs in again and nothing is lost.
func (s *Session) Probe(ctx context.Context) State {
	user, err := s.api.Me(ctx)
	if err != nil {
		if !apiclient.IsUnauthorized(err) {
			slog.Warn("session probe failed", "error", err)
		}
		s.state = Anonymous
		s.user = nil
		return s.state
	}
	s.state = Authenticated
	s.user = user
	return s.state
}

func (s *Session) Login(ctx context.Context, email, password string) error {
	user, err := s.api.Login(ctx, email, password)
	if err != nil {
		return err
	}
	s.state = Authenticated
	s.user = user
	return nil
}

// Expire marks the session anonymous without a server round trip, for
// when the server has already answered 401.
func (s *Session) Expire() {
	s.state = Anonymous
	s.user = nil
}

// Logout clears the local session even when the server call fails; the
// cookie may outlive us but the client treats the user as signed out.
func (s *Session) Logout(ctx context.Context) {
	if err := s.api.Logout(ctx); err != nil {
		slog.Warn("logout request failed", "error", err)
	}
	s.state = Anonymous
	s.user = nil
}
