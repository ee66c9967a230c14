package config

import (
	"os"
	"testing"

	"github.com/spf13/viper"
)

// resetViper clears all viper state between tests to avoid cross-contamination.
func resetViper() {
	viper.Reset()
}

func TestLoadDefaults(t *testing.T) {
	resetViper()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"DataDir", cfg.DataDir, "."},
		{"CSVSeparator", cfg.CSVSeparator, ","},
		{"Tolerance", cfg.Tolerance, 1.0},
		{"TolerancePPM", cfg.TolerancePPM, true},
		{"MaxIterations", cfg.MaxIterations, 1000},
		{"BinWidth", cfg.BinWidth, 1e-4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
			}
		})
	}

	if len(cfg.Elements) != 5 || cfg.Elements[0] != "C" {
		t.Errorf("Elements = %v, want CHONS default", cfg.Elements)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	tests := []struct {
		name   string
		envKey string
		envVal string
		field  func(Config) any
		want   any
	}{
		{
			name:   "data_dir",
			envKey: "MASSKIT_DATA_DIR",
			envVal: "/srv/spectra",
			field:  func(c Config) any { return c.DataDir },
			want:   "/srv/spectra",
		},
		{
			name:   "csv_separator",
			envKey: "MASSKIT_CSV_SEPARATOR",
			envVal: ";",
			field:  func(c Config) any { return c.CSVSeparator },
			want:   ";",
		},
		{
			name:   "tolerance",
			envKey: "MASSKIT_TOLERANCE",
			envVal: "2.5",
			field:  func(c Config) any { return c.Tolerance },
			want:   2.5,
		},
		{
			name:   "tolerance_ppm",
			envKey: "MASSKIT_TOLERANCE_PPM",
			envVal: "false",
			field:  func(c Config) any { return c.TolerancePPM },
			want:   false,
		},
		{
			name:   "max_iterations",
			envKey: "MASSKIT_MAX_ITERATIONS",
			envVal: "250",
			field:  func(c Config) any { return c.MaxIterations },
			want:   250,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetViper()
			// Set env prefix so MASSKIT_* env vars map to config keys.
			viper.SetEnvPrefix("MASSKIT")
			viper.AutomaticEnv()

			os.Setenv(tt.envKey, tt.envVal)
			defer os.Unsetenv(tt.envKey)

			cfg, err := Load()
			if err != nil {
				t.Fatalf("Load() returned unexpected error: %v", err)
			}
			got := tt.field(cfg)
			if got != tt.want {
				t.Errorf("%s: got %v (%T), want %v (%T)", tt.name, got, got, tt.want, tt.want)
			}
		})
	}
}

func TestTabularOptions(t *testing.T) {
	cfg := Config{
		CSVSeparator:  ";",
		ColumnMapper:  map[string]string{"m/z": "mass"},
		IgnoreColumns: []string{"junk"},
	}

	opts := cfg.TabularOptions()
	if opts.Comma != ';' {
		t.Errorf("Comma = %q, want ';'", opts.Comma)
	}
	if opts.Mapper["m/z"] != "mass" {
		t.Errorf("Mapper = %v, want m/z mapped to mass", opts.Mapper)
	}
	if len(opts.Ignore) != 1 || opts.Ignore[0] != "junk" {
		t.Errorf("Ignore = %v, want [junk]", opts.Ignore)
	}

	if empty := (Config{}).TabularOptions(); empty.Comma != 0 {
		t.Errorf("empty separator Comma = %q, want 0 fallback", empty.Comma)
	}
}
