package main

import (
	stderrors "errors"
	"os"
	"path/filepath"

	"github.com/goccy/go-json"

	"travelcms/client"
)

// cliConfig shares its file with client.FileTokenStore, which owns the
// access_token key.
type cliConfig struct {
	Server string `json:"server"`
}

func configPath() (string, error) {
	if p := os.Getenv("TRAVELCMS_CONFIG"); p != "" {
		return p, nil
	}
	return client.DefaultConfigPath()
}

func loadConfig(path string) (cliConfig, error) {
	cfg := cliConfig{}
	data, err := os.ReadFile(path)
	if err != nil {
		if stderrors.Is(err, os.ErrNotExist) {
			cfg.Server = client.DefaultBaseURL
			return cfg, nil
		}
		return cfg, err
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if cfg.Server == "" {
		cfg.Server = client.DefaultBaseURL
	}
	return cfg, nil
}

// saveServer writes the server key and keeps every other key in the file.
func saveServer(path, server string) error {
	doc := map[string]json.RawMessage{}
	if data, err := os.ReadFile(path); err == nil && len(data) > 0 {
		if err := json.Unmarshal(data, &doc); err != nil {
			return err
		}
	} else if err != nil && !stderrors.Is(err, os.ErrNotExist) {
		return err
	}
	raw, err := json.Marshal(server)
	if err != nil {
		return err
	}
	doc["server"] = raw
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}
