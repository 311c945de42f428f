package network

import (
	"strings"
	"testing"

	"github.com/pirouter/api/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAPJoinPayload(t *testing.T) {
	payload := APJoinPayload(config.APConfig{SSID: "PiRouter-AP", Password: "SecurePass123"})
	assert.Equal(t, "WIFI:T:WPA;S:PiRouter-AP;P:SecurePass123;;", payload)
}

func TestAPJoinPayloadEscapesReservedCharacters(t *testing.T) {
	payload := APJoinPayload(config.APConfig{SSID: `my;net`, Password: `pa:ss,word`})
	assert.Equal(t, `WIFI:T:WPA;S:my\;net;P:pa\:ss\,word;;`, payload)
}

func TestAPJoinQRCode(t *testing.T) {
	dataURL, err := APJoinQRCode(config.APConfig{SSID: "PiRouter-AP", Password: "SecurePass123"})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(dataURL, "data:image/png;base64,"))
	assert.Greater(t, len(dataURL), len("data:image/png;base64,"))
}
