package cli

import (
	"testing"

	"github.com/rileyhilliard/ecsctl/internal/errors"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatePortFlag(t *testing.T) {
	tests := []struct {
		name    string
		port    int
		wantErr bool
	}{
		{name: "unset", port: 0},
		{name: "lowest", port: 1},
		{name: "docker", port: 2375},
		{name: "highest", port: 65535},
		{name: "negative", port: -1, wantErr: true},
		{name: "too high", port: 65536, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePortFlag("docker-port", tt.port)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.IsCode(err, errors.ErrConfig))
				assert.Contains(t, err.Error(), "--docker-port")
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestPickPort(t *testing.T) {
	assert.Equal(t, 2375, pickPort(0, 2375))
	assert.Equal(t, 2376, pickPort(2376, 2375))
}

func TestRequireCommand(t *testing.T) {
	assert.NoError(t, requireCommand([]string{"ls"}, "ecsctl exec TASK COMMAND..."))

	err := requireCommand(nil, "ecsctl exec TASK COMMAND...")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrExec))
	assert.Contains(t, err.Error(), "ecsctl exec TASK COMMAND...")
}

func TestAddTargetFlags(t *testing.T) {
	var flags TargetFlags
	cmd := &cobra.Command{Use: "test", RunE: func(cmd *cobra.Command, args []string) error { return nil }}
	AddTargetFlags(cmd, &flags)

	cmd.SetArgs([]string{"--container", "envoy"})
	require.NoError(t, cmd.Execute())
	assert.Equal(t, "envoy", flags.Container)
}
