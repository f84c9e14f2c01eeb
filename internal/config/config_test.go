package config

import (
	"log/slog"
	"testing"

	"github.com/spf13/viper"
)

func TestLoadConfig_ProviderValidation(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr bool
	}{
		{
			name: "Ollama needs no credentials",
			env:  map[string]string{"LLM_PROVIDER": "ollama"},
		},
		{
			name:    "Gemini without API key",
			env:     map[string]string{"LLM_PROVIDER": "gemini"},
			wantErr: true,
		},
		{
			name: "Gemini with API key",
			env: map[string]string{
				"LLM_PROVIDER":   "gemini",
				"GEMINI_API_KEY": "test-key",
			},
		},
		{
			name:    "Unsupported provider",
			env:     map[string]string{"LLM_PROVIDER": "anthropic"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			viper.Reset()
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := LoadConfig()
			if (err != nil) != tt.wantErr {
				t.Errorf("LoadConfig() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadConfig_DefaultModel(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{
			name: "Gemini falls back to its own default",
			env: map[string]string{
				"LLM_PROVIDER":   "gemini",
				"GEMINI_API_KEY": "test-key",
			},
			want: "gemini-2.5-flash",
		},
		{
			name: "Ollama falls back to its own default",
			env:  map[string]string{"LLM_PROVIDER": "ollama"},
			want: "gemma3:latest",
		},
		{
			name: "Explicit model wins over the provider default",
			env: map[string]string{
				"LLM_PROVIDER":   "gemini",
				"GEMINI_API_KEY": "test-key",
				"MODEL_NAME":     "gemini-2.0-pro",
			},
			want: "gemini-2.0-pro",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			viper.Reset()
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			cfg, err := LoadConfig()
			if err != nil {
				t.Fatal(err)
			}
			if cfg.ModelName != tt.want {
				t.Errorf("ModelName = %q, want %q", cfg.ModelName, tt.want)
			}
		})
	}
}

func TestLoadConfig_LogLevel(t *testing.T) {
	tests := []struct {
		level string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"bogus", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			viper.Reset()
			t.Setenv("LLM_PROVIDER", "ollama")
			t.Setenv("LOG_LEVEL", tt.level)

			cfg, err := LoadConfig()
			if err != nil {
				t.Fatal(err)
			}
			if cfg.LogLevel != tt.want {
				t.Errorf("LogLevel = %v, want %v", cfg.LogLevel, tt.want)
			}
		})
	}
}
