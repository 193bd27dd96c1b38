package datomic

import (
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig("http://localhost:3000/")

	if cfg.Location != "http://localhost:3000/" {
		t.Errorf("unexpected location: %s", cfg.Location)
	}
	if cfg.Storage != DefaultStorage {
		t.Errorf("expected storage %q, got %q", DefaultStorage, cfg.Storage)
	}
	if cfg.Timeout != DefaultTimeout {
		t.Errorf("expected timeout %v, got %v", DefaultTimeout, cfg.Timeout)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"valid", Config{Location: "http://localhost:3000", Storage: "dev", Timeout: time.Second}, false},
		{"valid with zero timeout", Config{Location: "http://localhost:3000", Storage: "dev"}, false},
		{"empty location", Config{Storage: "dev"}, true},
		{"missing scheme", Config{Location: "localhost:3000", Storage: "dev"}, true},
		{"missing host", Config{Location: "http://", Storage: "dev"}, true},
		{"empty storage", Config{Location: "http://localhost:3000"}, true},
		{"negative timeout", Config{Location: "http://localhost:3000", Storage: "dev", Timeout: -1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr && !IsInvalidConfig(err) {
				t.Errorf("expected invalid config error, got %v", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}
