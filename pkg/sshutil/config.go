package sshutil

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/kevinburke/ssh_config"
)

// matchWarningOnce ensures the Match directive warning is only shown once per process.
var matchWarningOnce sync.Once

// sshSettings holds resolved connection parameters for one target.
type sshSettings struct {
	hostname      string
	port          int
	user          string
	identityFile  string
	encryptedKeys []string // Keys that exist but are encrypted
}

// address returns the host:port string for dialing.
func (s *sshSettings) address() string {
	return fmtAddress(s.hostname, s.port)
}

// resolveSettings merges the target with ~/.ssh/config. The target's user and
// port win when set; HostName and IdentityFile come from the config when the
// host has an entry.
func resolveSettings(target Target, configPath string) *sshSettings {
	s := &sshSettings{
		hostname: target.Host,
		port:     target.Port,
		user:     target.User,
	}

	content, matchLine, err := preprocessSSHConfig(configPath)
	if err == nil {
		applySSHConfig(s, target.Host, content, matchLine)
	}

	if s.port == 0 {
		s.port = DefaultPort
	}
	if s.user == "" {
		s.user = currentUser()
	}
	return s
}

func applySSHConfig(s *sshSettings, host string, content []byte, matchLine int) {
	cfg, err := ssh_config.Decode(bytes.NewReader(content))
	if err != nil {
		return
	}

	hostFound := false

	if hostname, _ := cfg.Get(host, "HostName"); hostname != "" {
		s.hostname = hostname
		hostFound = true
	}

	if s.port == 0 {
		if port, _ := cfg.Get(host, "Port"); port != "" {
			if p, err := strconv.Atoi(port); err == nil {
				s.port = p
				hostFound = true
			}
		}
	}

	if s.user == "" {
		if user, _ := cfg.Get(host, "User"); user != "" {
			s.user = user
			hostFound = true
		}
	}

	if identity, _ := cfg.Get(host, "IdentityFile"); identity != "" {
		s.identityFile = expandPath(identity)
		hostFound = true
	}

	// Host might be defined after the Match block we cut off.
	if matchLine > 0 && !hostFound {
		matchWarningOnce.Do(func() {
			emitWarning(fmt.Sprintf(
				"Host '%s' not found in SSH config (config has a Match block at line %d that may hide later entries). "+
					"If this host is defined after line %d, move it earlier in ~/.ssh/config.",
				host, matchLine, matchLine))
		})
	}
}

// preprocessSSHConfig reads the SSH config and returns content up to the first Match directive,
// which ssh_config can't parse. Also returns the Match line number (0 if none).
func preprocessSSHConfig(configPath string) ([]byte, int, error) {
	content, err := os.ReadFile(configPath)
	if err != nil {
		return nil, 0, err
	}

	lines := strings.Split(string(content), "\n")
	var result []string
	matchLine := 0

	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(strings.ToLower(trimmed), "match ") {
			matchLine = i + 1
			break
		}
		result = append(result, line)
	}

	return []byte(strings.Join(result, "\n")), matchLine, nil
}

func defaultSSHConfigPath() string {
	return filepath.Join(homeDir(), ".ssh", "config")
}

func defaultKnownHostsPath() string {
	return filepath.Join(homeDir(), ".ssh", "known_hosts")
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return os.Getenv("HOME")
	}
	return home
}

func currentUser() string {
	if user := os.Getenv("USER"); user != "" {
		return user
	}
	return "root"
}

func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(homeDir(), path[2:])
	}
	return path
}
