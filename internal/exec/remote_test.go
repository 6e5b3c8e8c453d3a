package exec

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRemoteCommand_CommandLine(t *testing.T) {
	tests := []struct {
		name string
		cmd  RemoteCommand
		want string
	}{
		{
			name: "defaults binary",
			cmd:  RemoteCommand{User: "deploy", Host: "10.0.0.5", Port: 22, Remote: "uptime"},
			want: "ssh -tt -p 22 deploy@10.0.0.5 'uptime'",
		},
		{
			name: "custom binary and port",
			cmd:  RemoteCommand{Binary: "/usr/local/bin/ssh", User: "ec2-user", Host: "ip-10-0-0-5.ec2.internal", Port: 2222, Remote: "ls"},
			want: "/usr/local/bin/ssh -tt -p 2222 ec2-user@ip-10-0-0-5.ec2.internal 'ls'",
		},
		{
			name: "command substitution stays remote",
			cmd:  RemoteCommand{User: "deploy", Host: "10.0.0.5", Port: 22, Remote: "docker exec -it $(docker ps -q) sh"},
			want: "ssh -tt -p 22 deploy@10.0.0.5 'docker exec -it $(docker ps -q) sh'",
		},
		{
			name: "single quotes escaped",
			cmd:  RemoteCommand{User: "deploy", Host: "10.0.0.5", Port: 22, Remote: "echo 'hi'"},
			want: `ssh -tt -p 22 deploy@10.0.0.5 'echo '\''hi'\'''`,
		},
		{
			name: "hostile user quoted",
			cmd:  RemoteCommand{User: "x;rm -rf", Host: "10.0.0.5", Port: 22, Remote: "ls"},
			want: "ssh -tt -p 22 'x;rm -rf@10.0.0.5' 'ls'",
		},
		{
			name: "no user",
			cmd:  RemoteCommand{Host: "10.0.0.5", Port: 22, Remote: "ls"},
			want: "ssh -tt -p 22 10.0.0.5 'ls'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cmd.CommandLine())
		})
	}
}

func TestRemoteCommand_CommandLineIsDeterministic(t *testing.T) {
	cmd := RemoteCommand{User: "deploy", Host: "10.0.0.5", Port: 22, Remote: "ls"}
	assert.Equal(t, cmd.CommandLine(), cmd.CommandLine())
}
