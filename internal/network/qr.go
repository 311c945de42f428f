package network

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/pirouter/api/config"
	"github.com/skip2/go-qrcode"
)

// escapeWiFiField escapes the characters reserved by the WIFI: QR payload
// format.
func escapeWiFiField(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `;`, `\;`, `,`, `\,`, `"`, `\"`, `:`, `\:`)
	return r.Replace(s)
}

// APJoinPayload builds the standard Wi-Fi network QR payload for the AP.
func APJoinPayload(cfg config.APConfig) string {
	return fmt.Sprintf("WIFI:T:WPA;S:%s;P:%s;;", escapeWiFiField(cfg.SSID), escapeWiFiField(cfg.Password))
}

// APJoinQRCode renders the AP join payload as a QR code PNG, returned as a
// base64 data URL for direct embedding in the UI.
func APJoinQRCode(cfg config.APConfig) (string, error) {
	png, err := qrcode.Encode(APJoinPayload(cfg), qrcode.Medium, 256)
	if err != nil {
		return "", fmt.Errorf("failed to generate QR code: %w", err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}
