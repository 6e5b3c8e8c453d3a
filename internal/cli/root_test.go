package cli

import (
	"bytes"
	stderrors "errors"
	"testing"

	"github.com/rileyhilliard/ecsctl/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantCode   int
		wantOutput bool
	}{
		{name: "success", err: nil, wantCode: 0},
		{name: "remote exit status", err: errors.NewExitError(3), wantCode: 3},
		{name: "ssh exit status", err: errors.NewExitError(255), wantCode: 255},
		{
			name:       "structured error",
			err:        errors.New(errors.ErrNotFound, "Task 't1' not found in cluster 'default'", ""),
			wantCode:   1,
			wantOutput: true,
		},
		{name: "plain error", err: stderrors.New("boom"), wantCode: 1, wantOutput: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			assert.Equal(t, tt.wantCode, exitCode(tt.err, &buf))
			if tt.wantOutput {
				assert.Contains(t, buf.String(), tt.err.Error())
			} else {
				assert.Empty(t, buf.String(), "exit statuses print nothing extra")
			}
		})
	}
}

func TestRootCommand_Subcommands(t *testing.T) {
	var names []string
	for _, cmd := range rootCmd.Commands() {
		names = append(names, cmd.Name())
	}
	assert.Subset(t, names, []string{"exec", "ssh", "resolve", "version", "completion"})
}

func TestRootCommand_PersistentFlags(t *testing.T) {
	for _, name := range []string{"config", "cluster", "region", "profile", "verbose", "quiet", "no-color"} {
		assert.NotNil(t, rootCmd.PersistentFlags().Lookup(name), "missing --%s", name)
	}
}

func TestExecCommand_FlagsStopAtTask(t *testing.T) {
	t.Cleanup(func() {
		execTarget = TargetFlags{}
		execStdin, execTTY = false, false
	})
	flags := execCmd.Flags()

	require.NoError(t, flags.Parse([]string{"-it", "--container", "envoy", "t1", "ls", "-la", "--tty"}))

	assert.True(t, execStdin)
	assert.True(t, execTTY)
	assert.Equal(t, "envoy", execTarget.Container)
	assert.Equal(t, []string{"t1", "ls", "-la", "--tty"}, flags.Args())
}

func TestSSHCommand_FlagsStopAtTask(t *testing.T) {
	t.Cleanup(func() {
		sshUser, sshPort = "", 0
	})
	flags := sshCmd.Flags()

	require.NoError(t, flags.Parse([]string{"--user", "deploy", "--ssh-port", "2222", "t1", "grep", "-r", "x"}))

	assert.Equal(t, "deploy", sshUser)
	assert.Equal(t, 2222, sshPort)
	assert.Equal(t, []string{"t1", "grep", "-r", "x"}, flags.Args())
}

func TestGlobalWorkflowOptions(t *testing.T) {
	t.Cleanup(func() {
		cfgFile, clusterFlag, regionFlag, profileFlag = "", "", "", ""
		quiet, noColor = false, false
	})
	cfgFile, clusterFlag, regionFlag, profileFlag = "/tmp/c.yaml", "prod", "eu-west-1", "ops"
	quiet, noColor = true, true

	assert.Equal(t, WorkflowOptions{
		ConfigPath: "/tmp/c.yaml",
		Task:       "t1",
		Cluster:    "prod",
		Region:     "eu-west-1",
		Profile:    "ops",
		Quiet:      true,
		NoColor:    true,
	}, globalWorkflowOptions("t1"))
}
