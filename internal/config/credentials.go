package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/zalando/go-keyring"
)

const (
	keyringService = appName
	keyringUser    = "session-token"
	credFileName   = ".session"

	// TokenEnv overrides the stored token when set.
	TokenEnv = "TIMELY_TOKEN"
)

// DataDir returns the path to the data directory for secure storage.
// Uses XDG_DATA_HOME or defaults to ~/.local/share/timely-tui/
func DataDir() (string, error) {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		dataHome = filepath.Join(homeDir, ".local", "share")
	}

	dataDir := filepath.Join(dataHome, appName)
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return "", fmt.Errorf("failed to create data directory: %w", err)
	}

	return dataDir, nil
}

// TokenStore keeps the session token under a fixed key: the system
// keyring when available, a private file otherwise.
type TokenStore struct {
	// NoKeyring forces file storage.
	NoKeyring bool
}

// Load retrieves the session token.
// Priority: 1. TIMELY_TOKEN env var, 2. System keyring, 3. Session file
func (s *TokenStore) Load() (string, error) {
	if token := os.Getenv(TokenEnv); token != "" {
		return strings.TrimSpace(token), nil
	}

	if !s.NoKeyring {
		token, err := keyring.Get(keyringService, keyringUser)
		if err == nil && token != "" {
			return strings.TrimSpace(token), nil
		}
	}

	credPath, err := credPath()
	if err != nil {
		return "", err
	}

	data, err := os.ReadFile(credPath)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read session file: %w", err)
	}

	return strings.TrimSpace(string(data)), nil
}

// Save stores the session token.
// Tries system keyring first, falls back to the session file.
func (s *TokenStore) Save(token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return errors.New("token cannot be empty")
	}

	if !s.NoKeyring {
		if err := keyring.Set(keyringService, keyringUser, token); err == nil {
			return nil
		}
	}

	credPath, err := credPath()
	if err != nil {
		return err
	}

	if err := os.WriteFile(credPath, []byte(token), 0600); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}

	return nil
}

// Clear removes the stored token from all locations.
func (s *TokenStore) Clear() error {
	if !s.NoKeyring {
		// Missing entry or unavailable keyring; the file is still cleared below.
		_ = keyring.Delete(keyringService, keyringUser)
	}

	credPath, err := credPath()
	if err != nil {
		return err
	}

	if err := os.Remove(credPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove session file: %w", err)
	}

	return nil
}

func credPath() (string, error) {
	dataDir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dataDir, credFileName), nil
}
