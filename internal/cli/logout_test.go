package cli

import "testing"

func TestLogout(t *testing.T) {
	tests := []struct {
		name         string
		forgetServer bool
		wantServer   string
	}{
		{"keeps server", false, "http://myhost:9090"},
		{"forgets server", true, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("HOME", t.TempDir())
			if err := saveConfig(CLIConfig{APIKey: "hvr_testkey123", ServerURL: "http://myhost:9090"}); err != nil {
				t.Fatalf("save: %v", err)
			}

			if err := runLogout(tt.forgetServer); err != nil {
				t.Fatalf("logout: %v", err)
			}

			loaded, err := loadConfig()
			if err != nil {
				t.Fatalf("load: %v", err)
			}
			if loaded.APIKey != "" {
				t.Errorf("api_key = %q, want empty", loaded.APIKey)
			}
			if loaded.ServerURL != tt.wantServer {
				t.Errorf("server_url = %q, want %q", loaded.ServerURL, tt.wantServer)
			}
		})
	}
}

func TestLogoutWhenNotLoggedIn(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	if err := runLogout(false); err != nil {
		t.Fatalf("logout with no config: %v", err)
	}
}
