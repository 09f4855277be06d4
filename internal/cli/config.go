package cli

import (
	"os"
	"path/filepath"
	"strings"
)

const defaultServerURL = "http://localhost:8080"

// Config holds CLI configuration resolved from flags, environment, and the
// token file
type Config struct {
	ServerURL string
	Token     string
}

// LoadConfig resolves configuration; flag values win over environment,
// which wins over the stored token file
func LoadConfig(flagServer, flagToken string) Config {
	cfg := Config{ServerURL: defaultServerURL}

	if v := os.Getenv("ROOMHUB_SERVER"); v != "" {
		cfg.ServerURL = v
	}
	if flagServer != "" {
		cfg.ServerURL = flagServer
	}
	cfg.ServerURL = strings.TrimRight(cfg.ServerURL, "/")

	if token, err := readTokenFile(); err == nil {
		cfg.Token = token
	}
	if v := os.Getenv("ROOMHUB_TOKEN"); v != "" {
		cfg.Token = v
	}
	if flagToken != "" {
		cfg.Token = flagToken
	}
	return cfg
}

func tokenFilePath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".roomhub", "token"), nil
}

func readTokenFile() (string, error) {
	path, err := tokenFilePath()
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

// SaveToken stores the session token for later invocations
func SaveToken(token string) error {
	path, err := tokenFilePath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(token), 0o600)
}

// ClearToken removes the stored session token
func ClearToken() error {
	path, err := tokenFilePath()
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
