package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Environment variables consulted when the corresponding flag is unset.
const (
	envServiceAccountJSON = "GOOGLE_SERVICE_ACCOUNT_JSON"
	envServiceAccountFile = "GOOGLE_SERVICE_ACCOUNT_FILE"
	envMaxRetries         = "MAX_RETRIES"
	envDelayAfterError    = "DELAY_AFTER_ERROR"
)

// resolveCredentials loads the service-account credential blob. A file
// path given via flag wins, then the GOOGLE_SERVICE_ACCOUNT_JSON
// environment variable, then a file path from GOOGLE_SERVICE_ACCOUNT_FILE.
func resolveCredentials(serviceAccountFile string) (string, error) {
	if serviceAccountFile != "" {
		data, err := os.ReadFile(serviceAccountFile)
		if err != nil {
			return "", fmt.Errorf("failed to read service account file: %w", err)
		}
		return string(data), nil
	}

	if blob := os.Getenv(envServiceAccountJSON); strings.TrimSpace(blob) != "" {
		return blob, nil
	}

	if file := os.Getenv(envServiceAccountFile); file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("failed to read service account file from %s: %w", envServiceAccountFile, err)
		}
		return string(data), nil
	}

	return "", fmt.Errorf("no service account credentials: set --service-account-file, %s, or %s",
		envServiceAccountJSON, envServiceAccountFile)
}

// resolveRetryPolicy overlays environment values on flag defaults. Flags
// win when the user set them explicitly.
func resolveRetryPolicy(maxRetries int, maxRetriesSet bool, delayAfterError time.Duration, delaySet bool) (int, time.Duration, error) {
	if !maxRetriesSet {
		if v := os.Getenv(envMaxRetries); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n < 0 {
				return 0, 0, fmt.Errorf("invalid %s value %q: must be a non-negative integer", envMaxRetries, v)
			}
			maxRetries = n
		}
	}
	if !delaySet {
		if v := os.Getenv(envDelayAfterError); v != "" {
			secs, err := strconv.ParseFloat(v, 64)
			if err != nil || secs < 0 {
				return 0, 0, fmt.Errorf("invalid %s value %q: must be a non-negative number of seconds", envDelayAfterError, v)
			}
			delayAfterError = time.Duration(secs * float64(time.Second))
		}
	}
	return maxRetries, delayAfterError, nil
}
