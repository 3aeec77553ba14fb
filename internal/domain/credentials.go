package domain

import "time"

// DevicePayload identifies this client to the portal at login.
type DevicePayload struct {
	CliType     string  `json:"cliType"`
	CliVer      string  `json:"cliVer"`
	PushToken   string  `json:"pushToken"`
	DeviceID    string  `json:"deviceId"`
	DeviceName  string  `json:"deviceName"`
	DeviceModel int     `json:"deviceModel"`
	CliOs       string  `json:"cliOs"`
	CliOsVer    *string `json:"cliOsVer"`
}

// Credentials are the locally stored login data. The password is kept only
// as the SHA-256 hex digest the portal expects.
type Credentials struct {
	Username     string
	PasswordHash string
	Device       DevicePayload
	SessionID    string
	UpdatedAt    time.Time
}
