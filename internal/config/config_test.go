package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	assert.NotNil(t, cfg)
	assert.NoError(t, cfg.Validate())
	assert.Equal(t, "127.0.0.1:8470", cfg.Address())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "valid default", mutate: func(c *Config) {}, wantErr: false},
		{name: "empty host", mutate: func(c *Config) { c.Host = "" }, wantErr: true},
		{name: "port too large", mutate: func(c *Config) { c.Port = 70000 }, wantErr: true},
		{name: "port negative", mutate: func(c *Config) { c.Port = -1 }, wantErr: true},
		{name: "zero successor list", mutate: func(c *Config) { c.SuccessorListSize = 0 }, wantErr: true},
		{name: "zero replication factor", mutate: func(c *Config) { c.ReplicationFactor = 0 }, wantErr: true},
		{
			name:    "replication exceeds successor list + 1",
			mutate:  func(c *Config) { c.ReplicationFactor = 10; c.SuccessorListSize = 2 },
			wantErr: true,
		},
		{name: "negative pow difficulty", mutate: func(c *Config) { c.PowDifficulty = -1 }, wantErr: true},
		{name: "zero lookup retries", mutate: func(c *Config) { c.LookupRetries = 0 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestEffectivePowDifficulty(t *testing.T) {
	cfg := Default()
	cfg.PowDifficulty = 16
	assert.Equal(t, 16, cfg.EffectivePowDifficulty())

	cfg.DevMode = true
	assert.Equal(t, 0, cfg.EffectivePowDifficulty())
}
