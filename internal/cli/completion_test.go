package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCompletion(t *testing.T, shell string) string {
	var buf bytes.Buffer
	completionCmd.SetOut(&buf)
	t.Cleanup(func() { completionCmd.SetOut(nil) })

	require.NoError(t, completionCmd.RunE(completionCmd, []string{shell}))
	return buf.String()
}

func TestCompletionBash(t *testing.T) {
	output := runCompletion(t, "bash")

	assert.Contains(t, output, "# bash completion for ecsctl")
	assert.Contains(t, output, "__start_ecsctl")
	assert.Contains(t, output, "__completeNoDesc", "should use dynamic completion")

	// Commands with local flags get their own functions
	assert.Contains(t, output, "_ecsctl_exec()")
	assert.Contains(t, output, "_ecsctl_ssh()")
	assert.Contains(t, output, "_ecsctl_resolve()")

	assert.Equal(t, strings.Count(output, "{"), strings.Count(output, "}"), "braces should be balanced")
}

func TestCompletionZsh(t *testing.T) {
	output := runCompletion(t, "zsh")

	assert.Contains(t, output, "#compdef ecsctl")
	assert.Contains(t, output, "_ecsctl()")
}

func TestCompletionFish(t *testing.T) {
	output := runCompletion(t, "fish")

	assert.Contains(t, output, "fish completion for ecsctl")
	assert.Contains(t, output, "complete -c ecsctl")
}

func TestCompletionPowershell(t *testing.T) {
	output := runCompletion(t, "powershell")

	assert.Contains(t, strings.ToLower(output), "powershell completion")
	assert.Contains(t, output, "Register-ArgumentCompleter")
}

func TestCompletionCommandValidArgs(t *testing.T) {
	assert.ElementsMatch(t, []string{"bash", "zsh", "fish", "powershell"}, completionCmd.ValidArgs)
	assert.Error(t, completionCmd.Args(completionCmd, []string{"tcsh"}))
	assert.Error(t, completionCmd.Args(completionCmd, []string{}))
}
