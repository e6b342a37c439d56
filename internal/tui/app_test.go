package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/laundromat-id/adminctl/internal/apiclient"
)

func TestPageErrorRedirectsWhenSessionExpired(t *testing.T) {
	alert, cmd := pageError(&apiclient.APIError{Status: 401, Message: "Sesi kadaluarsa"}, "Gagal memuat data.")
	assert.Empty(t, alert)
	require.NotNil(t, cmd)
	_, ok := cmd().(sessionExpiredMsg)
	assert.True(t, ok, "401 must route back to sign-in")
}

func TestPageErrorKeepsOtherFailuresOnPage(t *testing.T) {
	alert, cmd := pageError(&apiclient.APIError{Status: 502, Message: "server sibuk"}, "Gagal memuat data.")
	assert.Equal(t, "server sibuk", alert)
	assert.Nil(t, cmd)
}
