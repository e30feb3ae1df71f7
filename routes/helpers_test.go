package routes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientIP(t *testing.T) {
	assert.Equal(t, "10.0.0.7", clientIP("10.0.0.7:51234"))
	// IPv6 addresses keep their full form instead of truncating at the first colon
	assert.Equal(t, "2001:db8::1", clientIP("[2001:db8::1]:51234"))
	assert.Equal(t, "::1", clientIP("[::1]:8080"))
	// no port at all falls back to the raw address
	assert.Equal(t, "10.0.0.7", clientIP("10.0.0.7"))
}

func TestClientIPDistinguishesIPv6Clients(t *testing.T) {
	a := clientIP("[2001:db8::1]:1111")
	b := clientIP("[2001:db8::2]:2222")
	assert.NotEqual(t, a, b)
}

func TestSettingsJson(t *testing.T) {
	raw, err := settingsJson(nil)
	require.NoError(t, err)
	assert.Equal(t, "{}", raw)

	raw, err = settingsJson(map[string]any{"confirmationMessage": "Thanks!"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"confirmationMessage":"Thanks!"}`, raw)
}
