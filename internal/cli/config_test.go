package cli

import (
	"os"
	"path/filepath"
	"testing"
)

func TestConfigSaveAndLoad(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("HOME", tmp)

	cfg := CLIConfig{ServerURL: "http://myhost:9090", APIKey: "hvr_testapikey123"}
	if err := saveConfig(cfg); err != nil {
		t.Fatalf("save: %v", err)
	}

	info, err := os.Stat(filepath.Join(tmp, ".config", "hvr", "config.yaml"))
	if err != nil {
		t.Fatalf("config file not found: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("config mode = %o, want 600", perm)
	}

	loaded, err := loadConfig()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded != cfg {
		t.Errorf("loaded = %+v, want %+v", loaded, cfg)
	}
}

func TestConfigLoadMissing(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("load missing: %v", err)
	}
	if cfg != (CLIConfig{}) {
		t.Errorf("cfg = %+v, want zero value", cfg)
	}
}

func TestConfigLoadCorrupt(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("HOME", tmp)

	dir := filepath.Join(tmp, ".config", "hvr")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("server_url: [unclosed"), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := loadConfig(); err == nil {
		t.Fatal("expected parse error")
	}
}

// Env vars beat the config file, which beats the defaults.
func TestSettingPrecedence(t *testing.T) {
	tests := []struct {
		name       string
		envURL     string
		envKey     string
		file       CLIConfig
		wantURL    string
		wantAPIKey string
	}{
		{"defaults", "", "", CLIConfig{}, DefaultServerURL, ""},
		{"file", "", "", CLIConfig{ServerURL: "http://file:1", APIKey: "hvr_file"}, "http://file:1", "hvr_file"},
		{"env wins", "http://env:2", "hvr_env", CLIConfig{ServerURL: "http://file:1", APIKey: "hvr_file"}, "http://env:2", "hvr_env"},
		{"mixed", "", "hvr_env", CLIConfig{ServerURL: "http://file:1"}, "http://file:1", "hvr_env"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("HOME", t.TempDir())
			t.Setenv("HVR_SERVER_URL", tt.envURL)
			t.Setenv("HVR_API_KEY", tt.envKey)
			if tt.file != (CLIConfig{}) {
				if err := saveConfig(tt.file); err != nil {
					t.Fatalf("save: %v", err)
				}
			}

			if got := getServerURL(); got != tt.wantURL {
				t.Errorf("server url = %q, want %q", got, tt.wantURL)
			}
			if got := getAPIKey(); got != tt.wantAPIKey {
				t.Errorf("api key = %q, want %q", got, tt.wantAPIKey)
			}
		})
	}
}
