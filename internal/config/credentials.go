package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// GoogleCredentials is the resolved credential material for Google API
// clients. Exactly one of JSON or File is set, unless the ambient
// application-default chain should be used (both empty).
type GoogleCredentials struct {
	Provider string // name of the provider that resolved the credentials
	JSON     []byte // inline service-account key
	File     string // path to a key file
}

// Ambient reports whether no explicit material was found and the client
// should fall back to application-default discovery.
func (c GoogleCredentials) Ambient() bool {
	return len(c.JSON) == 0 && c.File == ""
}

// credentialProvider is one named step in the resolution chain.
type credentialProvider struct {
	name    string
	resolve func() (GoogleCredentials, bool)
}

// googleCredentialProviders returns the resolution chain in priority order.
// The order is the configuration: first provider to resolve wins.
func googleCredentialProviders() []credentialProvider {
	return []credentialProvider{
		{
			name: "service-account-env-json",
			resolve: func() (GoogleCredentials, bool) {
				raw := os.Getenv("GOOGLE_SERVICE_ACCOUNT_JSON")
				if raw == "" || !json.Valid([]byte(raw)) {
					return GoogleCredentials{}, false
				}
				return GoogleCredentials{JSON: []byte(raw)}, true
			},
		},
		{
			name: "service-account-env-file",
			resolve: func() (GoogleCredentials, bool) {
				path := os.Getenv("GOOGLE_SERVICE_ACCOUNT_JSON")
				if path == "" || json.Valid([]byte(path)) {
					return GoogleCredentials{}, false
				}
				if _, err := os.Stat(path); err != nil {
					return GoogleCredentials{}, false
				}
				return GoogleCredentials{File: path}, true
			},
		},
		{
			name: "application-credentials-file",
			resolve: func() (GoogleCredentials, bool) {
				path := strings.Trim(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"), `"'`)
				if path == "" {
					return GoogleCredentials{}, false
				}
				if _, err := os.Stat(path); err != nil {
					return GoogleCredentials{}, false
				}
				return GoogleCredentials{File: path}, true
			},
		},
		{
			name: "application-default",
			resolve: func() (GoogleCredentials, bool) {
				return GoogleCredentials{}, true
			},
		},
	}
}

// ResolveGoogleCredentials walks the provider chain and returns the first
// successful resolution. The terminal application-default provider always
// succeeds, so an error here means the chain itself is misconfigured.
func ResolveGoogleCredentials() (GoogleCredentials, error) {
	for _, p := range googleCredentialProviders() {
		if creds, ok := p.resolve(); ok {
			creds.Provider = p.name
			return creds, nil
		}
	}
	return GoogleCredentials{}, fmt.Errorf("no google credential provider resolved")
}

// ProjectID returns the configured Google Cloud project id, preferring the
// config file over the environment.
func (c *Config) ProjectID() string {
	if c.Transcription.ProjectID != "" {
		return c.Transcription.ProjectID
	}
	return os.Getenv("GOOGLE_CLOUD_PROJECT_ID")
}

// SlackChannel returns the notification channel, preferring the config file
// over the environment.
func (c *Config) SlackChannel() string {
	if c.Slack.Channel != "" {
		return c.Slack.Channel
	}
	return os.Getenv("SLACK_CHANNEL")
}
