package gcp

import (
	"fmt"

	"cloud.google.com/go/auth/credentials"
	"google.golang.org/api/option"
)

const cloudPlatformScope = "https://www.googleapis.com/auth/cloud-platform"

// ClientOptions builds client options from a service account JSON document,
// billing requests to projectID.
func ClientOptions(projectID, credentialsJSON string) ([]option.ClientOption, error) {
	creds, err := credentials.DetectDefault(&credentials.DetectOptions{
		CredentialsJSON: []byte(credentialsJSON),
		Scopes:          []string{cloudPlatformScope},
	})
	if err != nil {
		return nil, fmt.Errorf("detect credentials: %w", err)
	}
	opts := []option.ClientOption{option.WithAuthCredentials(creds)}
	if projectID != "" {
		opts = append(opts, option.WithQuotaProject(projectID))
	}
	return opts, nil
}
