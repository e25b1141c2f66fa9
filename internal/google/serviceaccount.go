package google

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// TokenSourceFromServiceAccount parses a service-account key blob and
// returns a token source scoped to the given permission set. The blob is
// the verbatim JSON key document downloaded from the Google Cloud console;
// it is parsed fresh on every call so credential rotation between retry
// attempts is picked up.
func TokenSourceFromServiceAccount(ctx context.Context, credentialsJSON string, scopes []string) (oauth2.TokenSource, error) {
	if strings.TrimSpace(credentialsJSON) == "" {
		return nil, fmt.Errorf("service account JSON is empty")
	}
	if len(scopes) == 0 {
		return nil, fmt.Errorf("at least one scope is required")
	}

	creds, err := google.CredentialsFromJSON(ctx, []byte(credentialsJSON), scopes...)
	if err != nil {
		return nil, fmt.Errorf("failed to parse service account credentials: %w", err)
	}

	return creds.TokenSource, nil
}

// NewHTTPClient returns an HTTP client that authenticates requests with ts.
// The client is configured to use HTTP/1.1 to avoid HTTP/2 protocol errors.
func NewHTTPClient(ctx context.Context, ts oauth2.TokenSource) *http.Client {
	client := oauth2.NewClient(ctx, ts)

	// Force HTTP/1.1 by disabling HTTP/2
	if transport, ok := client.Transport.(*oauth2.Transport); ok {
		transport.Base = &http.Transport{
			ForceAttemptHTTP2: false,
		}
	}

	return client
}
