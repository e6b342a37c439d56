package session_test

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/laundromat-id/adminctl/internal/apiclient"
	"github.com/laundromat-id/adminctl/internal/session"
	"github.com/laundromat-id/adminctl/internal/stub"
)

func newSession(t *testing.T) *session.Session {
	t.Helper()
	router := stub.NewRouter(stub.NewHandler(stub.NewStore()))
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	client, err := apiclient.New(apiclient.Config{BaseURL: server.URL + "/api/v1"})
	require.NoError(t, err)
	return session.New(client)
}

func TestStartsChecking(t *testing.T) {
	sess := newSession(t)
	assert.Equal(t, session.Checking, sess.State())

	_, ok := sess.CurrentUser()
	assert.False(t, ok)
}

func TestProbeWithoutCookieIsAnonymous(t *testing.T) {
	sess := newSession(t)
	assert.Equal(t, session.Anonymous, sess.Probe(context.Background()))
}

func TestLoginLogoutRoundTrip(t *testing.T) {
	sess := newSession(t)
	ctx := context.Background()

	require.NoError(t, sess.Login(ctx, "kasir@laundromat.id", "kasir123"))
	assert.Equal(t, session.Authenticated, sess.State())

	user, ok := sess.CurrentUser()
	require.True(t, ok)
	assert.Equal(t, "Kasir Satu", user.Name)

	// A probe after login keeps the session alive via the cookie jar.
	assert.Equal(t, session.Authenticated, sess.Probe(ctx))

	sess.Logout(ctx)
	assert.Equal(t, session.Anonymous, sess.State())
	assert.Equal(t, session.Anonymous, sess.Probe(ctx), "server-side session is closed too")
}

func TestBadCredentialsStayAnonymous(t *testing.T) {
	sess := newSession(t)
	ctx := context.Background()
	sess.Probe(ctx)

	err := sess.Login(ctx, "kasir@laundromat.id", "salah")
	require.Error(t, err)
	assert.Equal(t, session.Anonymous, sess.State())
}
