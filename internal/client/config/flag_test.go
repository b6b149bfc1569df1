package config

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		expected  *Config
		name      string
		args      []string
		expectErr bool
	}{
		{
			name: "all flags",
			args: []string{"-a", "https://api.example.com", "-k", "rzp_live", "-s", "redis", "-d", "x.db", "-r", "cache:6380", "-t", "5s", "-l", "debug"},
			expected: &Config{
				APIBaseURL:     "https://api.example.com",
				PaymentKeyID:   "rzp_live",
				StoreType:      "redis",
				StorePath:      "x.db",
				RedisAddr:      "cache:6380",
				RequestTimeout: 5 * time.Second,
				LogLevel:       "debug",
			},
		},
		{
			name:     "foreign flags are ignored",
			args:     []string{"-c", "cfg.json", "-v", "-a=http://h:1"},
			expected: &Config{APIBaseURL: "http://h:1"},
		},
		{name: "bad timeout", args: []string{"-t", "abc"}, expectErr: true, expected: &Config{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withArgs(t, tt.args...)
			config := &Config{}

			err := parseFlags(config)
			if tt.expectErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Empty(t, cmp.Diff(config, tt.expected))
		})
	}
}
