// Package auth stores the Gemini API key for model-assisted tagging.
// The OS keychain is the primary store; the environment variable is an
// opt-in fallback for CI and containers.
package auth

import (
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/zalando/go-keyring"
	"golang.org/x/term"
)

const (
	serviceName = "glossa"
	account     = "gemini-api-key"
	envVar      = "GEMINI_API_KEY"
)

// GetKey retrieves the API key, preferring the keychain. The second
// return names the source for user-facing status output; both are empty
// when no key is configured.
func GetKey(allowEnv bool) (string, string) {
	key, err := keyring.Get(serviceName, account)
	if err == nil && key != "" {
		return strings.TrimSpace(key), "Keychain"
	}
	if allowEnv {
		if key := strings.TrimSpace(os.Getenv(envVar)); key != "" {
			return key, "Environment Variable"
		}
	}
	return "", ""
}

// SaveKey stores the key in the OS keychain.
func SaveKey(key string) error {
	return keyring.Set(serviceName, account, strings.TrimSpace(key))
}

// DeleteKey removes the key from the OS keychain.
func DeleteKey() error {
	return keyring.Delete(serviceName, account)
}

// HasKey reports whether a key exists in the keychain.
func HasKey() bool {
	key, err := keyring.Get(serviceName, account)
	return err == nil && key != ""
}

// PromptForAPIKey reads the key from the terminal without echoing it.
func PromptForAPIKey(prompt string) (string, error) {
	fmt.Print(prompt)
	raw, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		return "", err
	}
	fmt.Println()
	return strings.TrimSpace(string(raw)), nil
}
