package cli

import "testing"

func TestValidateAPIKey(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		wantErr bool
	}{
		{"valid key", "hvr_abc123def456", false},
		{"empty key", "", true},
		{"missing prefix", "abc123def456", true},
		{"wrong prefix", "key_abc123", true},
		{"just prefix", "hvr_", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateAPIKey(tt.key)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateAPIKey(%q) err = %v, wantErr = %v", tt.key, err, tt.wantErr)
			}
		})
	}
}

func TestLoginSavesKeyAndServer(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	if err := runLogin("http://studio.example:9000/", "hvr_flagkey"); err != nil {
		t.Fatalf("login: %v", err)
	}

	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.APIKey != "hvr_flagkey" {
		t.Errorf("api_key = %q", cfg.APIKey)
	}
	if cfg.ServerURL != "http://studio.example:9000" {
		t.Errorf("server_url = %q", cfg.ServerURL)
	}
}

func TestLoginRejectsBadKey(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	if err := runLogin("", "not-a-key"); err == nil {
		t.Fatal("expected error for key without prefix")
	}
}
