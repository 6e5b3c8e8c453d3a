package config

import (
	"testing"

	"github.com/rileyhilliard/ecsctl/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_Defaults(t *testing.T) {
	assert.NoError(t, Validate(DefaultConfig()))
}

func TestValidate_Nil(t *testing.T) {
	err := Validate(nil)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrConfig))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "future version",
			mutate:  func(c *Config) { c.Version = CurrentConfigVersion + 1 },
			wantErr: "from the future",
		},
		{
			name:    "empty cluster",
			mutate:  func(c *Config) { c.Cluster = "  " },
			wantErr: "cluster can't be empty",
		},
		{
			name:    "docker port zero",
			mutate:  func(c *Config) { c.Docker.Port = 0 },
			wantErr: "docker.port must be between 1 and 65535",
		},
		{
			name:    "ssh port too large",
			mutate:  func(c *Config) { c.SSH.Port = 70000 },
			wantErr: "ssh.port must be between 1 and 65535",
		},
		{
			name:    "partial tls",
			mutate:  func(c *Config) { c.Docker.TLS.CA = "/ca.pem" },
			wantErr: "missing: cert, key",
		},
		{
			name:    "unknown transport",
			mutate:  func(c *Config) { c.SSH.Transport = "mosh" },
			wantErr: "ssh.transport must be one of",
		},
		{
			name:    "empty ssh binary",
			mutate:  func(c *Config) { c.SSH.Binary = "" },
			wantErr: "ssh.binary can't be empty",
		},
		{
			name:    "bad color",
			mutate:  func(c *Config) { c.Output.Color = "rainbow" },
			wantErr: "output.color must be one of",
		},
		{
			name:    "bad verbosity",
			mutate:  func(c *Config) { c.Output.Verbosity = "loud" },
			wantErr: "output.verbosity must be one of",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := Validate(cfg)
			require.Error(t, err)
			assert.True(t, errors.IsCode(err, errors.ErrConfig))
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidate_CompleteTLS(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Docker.TLS = TLSConfig{CA: "/ca.pem", Cert: "/cert.pem", Key: "/key.pem"}
	assert.NoError(t, Validate(cfg))
}

func TestValidate_NativeTransportWithoutBinary(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SSH.Transport = TransportNative
	cfg.SSH.Binary = ""
	assert.NoError(t, Validate(cfg))
}
