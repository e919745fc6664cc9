package config

import (
	"math"
	"os"
	"testing"
)

func TestConfigDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	// Test server defaults
	if cfg.Server.Port != defaultServerPort {
		t.Errorf("Server.Port = %d, want %d", cfg.Server.Port, defaultServerPort)
	}
	if cfg.Server.Host != defaultServerHost {
		t.Errorf("Server.Host = %s, want %s", cfg.Server.Host, defaultServerHost)
	}
	if cfg.Server.EventBufferSize != defaultEventBufferSize {
		t.Errorf("Server.EventBufferSize = %d, want %d", cfg.Server.EventBufferSize, defaultEventBufferSize)
	}

	// Test database defaults
	if cfg.Database.Path != defaultDatabasePath {
		t.Errorf("Database.Path = %s, want %s", cfg.Database.Path, defaultDatabasePath)
	}
	if cfg.Database.MigrationsPath != defaultDatabaseMigrationsPath {
		t.Errorf("Database.MigrationsPath = %s, want %s", cfg.Database.MigrationsPath, defaultDatabaseMigrationsPath)
	}

	// Test logging defaults
	if cfg.Logging.Level != defaultLogLevel {
		t.Errorf("Logging.Level = %s, want %s", cfg.Logging.Level, defaultLogLevel)
	}
	if cfg.Logging.Pretty != defaultLogPretty {
		t.Errorf("Logging.Pretty = %v, want %v", cfg.Logging.Pretty, defaultLogPretty)
	}

	// Test player defaults
	if cfg.Player.Duration != defaultPlayerDuration {
		t.Errorf("Player.Duration = %v, want %v", cfg.Player.Duration, defaultPlayerDuration)
	}
	if cfg.Player.AutoPlay != defaultPlayerAutoPlay {
		t.Errorf("Player.AutoPlay = %v, want %v", cfg.Player.AutoPlay, defaultPlayerAutoPlay)
	}
	if cfg.Player.Editing != defaultPlayerEditing {
		t.Errorf("Player.Editing = %v, want %v", cfg.Player.Editing, defaultPlayerEditing)
	}
	if cfg.Player.Tolerance != defaultPlayerTolerance {
		t.Errorf("Player.Tolerance = %v, want %v", cfg.Player.Tolerance, defaultPlayerTolerance)
	}
	if cfg.Player.SkipDelta != defaultPlayerSkipDelta {
		t.Errorf("Player.SkipDelta = %v, want %v", cfg.Player.SkipDelta, defaultPlayerSkipDelta)
	}
	if cfg.Player.Source != defaultPlayerSource {
		t.Errorf("Player.Source = %s, want %s", cfg.Player.Source, defaultPlayerSource)
	}
}

func validConfig() Config {
	return Config{
		Server: ServerConfig{
			Port:            8080,
			Host:            "0.0.0.0",
			ReadTimeout:     defaultReadTimeout,
			WriteTimeout:    defaultWriteTimeout,
			EventBufferSize: defaultEventBufferSize,
		},
		Database: DatabaseConfig{
			Path:              "./data/branchpoint.db",
			ConnectionTimeout: defaultDatabaseConnectionTimeout,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		Player: PlayerConfig{
			Duration:  300,
			Tolerance: 0.5,
			SkipDelta: 10,
		},
	}
}

func TestConfigValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{
			name:    "valid config",
			mutate:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "invalid server port (too low)",
			mutate:  func(c *Config) { c.Server.Port = 0 },
			wantErr: true,
		},
		{
			name:    "invalid server port (too high)",
			mutate:  func(c *Config) { c.Server.Port = 70000 },
			wantErr: true,
		},
		{
			name:    "invalid log level",
			mutate:  func(c *Config) { c.Logging.Level = "invalid" },
			wantErr: true,
		},
		{
			name:    "zero event buffer",
			mutate:  func(c *Config) { c.Server.EventBufferSize = 0 },
			wantErr: true,
		},
		{
			name:    "zero duration",
			mutate:  func(c *Config) { c.Player.Duration = 0 },
			wantErr: true,
		},
		{
			name:    "NaN duration",
			mutate:  func(c *Config) { c.Player.Duration = math.NaN() },
			wantErr: true,
		},
		{
			name:    "negative tolerance",
			mutate:  func(c *Config) { c.Player.Tolerance = -0.1 },
			wantErr: true,
		},
		{
			name:    "zero tolerance is allowed",
			mutate:  func(c *Config) { c.Player.Tolerance = 0 },
			wantErr: false,
		},
		{
			name:    "zero skip delta",
			mutate:  func(c *Config) { c.Player.SkipDelta = 0 },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestPlayerConfigEnvVars(t *testing.T) {
	t.Setenv("BRANCHPOINT_PLAYER_DURATION", "120")
	t.Setenv("BRANCHPOINT_PLAYER_EDITING", "true")
	t.Setenv("BRANCHPOINT_PLAYER_TOLERANCE", "0.25")
	t.Setenv("BRANCHPOINT_PLAYER_DEMO", "false")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Player.Duration != 120 {
		t.Errorf("Player.Duration = %v, want 120", cfg.Player.Duration)
	}
	if !cfg.Player.Editing {
		t.Errorf("Player.Editing = false, want true")
	}
	if cfg.Player.Tolerance != 0.25 {
		t.Errorf("Player.Tolerance = %v, want 0.25", cfg.Player.Tolerance)
	}
	if cfg.Player.Demo {
		t.Errorf("Player.Demo = true, want false")
	}
}

func TestInvalidEnvRejected(t *testing.T) {
	_ = os.Setenv("BRANCHPOINT_PLAYER_SKIPDELTA", "-1")
	defer func() {
		_ = os.Unsetenv("BRANCHPOINT_PLAYER_SKIPDELTA")
	}()

	if _, err := Load(); err == nil {
		t.Fatal("Load() error = nil, want validation error")
	}
}

func TestContains(t *testing.T) {
	tests := []struct {
		name  string
		slice []string
		item  string
		want  bool
	}{
		{
			name:  "item exists",
			slice: []string{"one", "two", "three"},
			item:  "two",
			want:  true,
		},
		{
			name:  "item does not exist",
			slice: []string{"one", "two", "three"},
			item:  "four",
			want:  false,
		},
		{
			name:  "empty slice",
			slice: []string{},
			item:  "one",
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := contains(tt.slice, tt.item)
			if got != tt.want {
				t.Errorf("contains() = %v, want %v", got, tt.want)
			}
		})
	}
}
