// Package cli implements the ecsctl command-line interface.
//
// Each Cobra command parses its flags into an options struct and hands it to
// a command function (execCommand, sshCommand, resolveCommand). Those share
// SetupWorkflow, which:
//
//  1. Loads and validates config, then applies --cluster/--region/--profile
//  2. Builds the control-plane client
//  3. Wires an endpoint resolver that reports each hop to the phase display
//
// The command function then builds one session and executes it. Session state
// changes drive the rest of the phase display; progress goes to stderr so the
// remote command owns stdout.
//
// # Commands
//
//	ecsctl exec TASK COMMAND...   - exec through the Docker API on the task's host
//	ecsctl ssh TASK [COMMAND...]  - ssh to the task's host and docker exec there
//	ecsctl resolve TASK           - print the resolved endpoint as YAML or JSON
//
// Flags after TASK belong to the remote command.
//
// # Exit status
//
// A remote command's non-zero exit status is returned as *errors.ExitError and
// becomes ecsctl's exit status without any extra output.
package cli
