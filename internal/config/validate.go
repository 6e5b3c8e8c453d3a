package config

import (
	"fmt"
	"strings"

	"github.com/rileyhilliard/ecsctl/internal/errors"
)

var (
	validTransports = []string{TransportSystem, TransportNative}
	validColors     = []string{"auto", "always", "never"}
	validVerbosity  = []string{"quiet", "normal", "verbose"}
)

// Validate checks the config for errors and returns structured error messages.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.New(errors.ErrConfig,
			"Config is nil",
			"This is unexpected - try reloading the configuration.")
	}

	if cfg.Version > CurrentConfigVersion {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("This config is from the future (version %d, but ecsctl only knows up to %d)", cfg.Version, CurrentConfigVersion),
			"Upgrade ecsctl or lower the version in your config file.")
	}

	if strings.TrimSpace(cfg.Cluster) == "" {
		return errors.New(errors.ErrConfig,
			"cluster can't be empty",
			"Remove the key to use 'default', or set it to your cluster name.")
	}

	if err := validatePort("docker.port", cfg.Docker.Port); err != nil {
		return err
	}
	if err := validatePort("ssh.port", cfg.SSH.Port); err != nil {
		return err
	}

	if err := validateTLS(cfg.Docker.TLS); err != nil {
		return err
	}

	if err := validateSSH(cfg.SSH); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, err.Error(), "Check the 'ssh' section of your config.")
	}

	if err := validateOutput(cfg.Output); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, err.Error(), "Check the 'output' section of your config.")
	}

	return nil
}

func validatePort(key string, port int) error {
	if port < 1 || port > 65535 {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("%s must be between 1 and 65535, got %d", key, port),
			fmt.Sprintf("Fix %s in your config or the matching flag.", key))
	}
	return nil
}

func validateTLS(tls TLSConfig) error {
	if !tls.Enabled() {
		return nil
	}
	var missing []string
	if tls.CA == "" {
		missing = append(missing, "ca")
	}
	if tls.Cert == "" {
		missing = append(missing, "cert")
	}
	if tls.Key == "" {
		missing = append(missing, "key")
	}
	if len(missing) > 0 {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("docker.tls is incomplete, missing: %s", strings.Join(missing, ", ")),
			"Set all of docker.tls.ca, docker.tls.cert and docker.tls.key, or none of them.")
	}
	return nil
}

func validateSSH(ssh SSHConfig) error {
	if !contains(validTransports, ssh.Transport) {
		return fmt.Errorf("ssh.transport must be one of %s, got %q", strings.Join(validTransports, ", "), ssh.Transport)
	}
	if ssh.Transport == TransportSystem && strings.TrimSpace(ssh.Binary) == "" {
		return fmt.Errorf("ssh.binary can't be empty with the system transport")
	}
	return nil
}

func validateOutput(out OutputConfig) error {
	if !contains(validColors, out.Color) {
		return fmt.Errorf("output.color must be one of %s, got %q", strings.Join(validColors, ", "), out.Color)
	}
	if !contains(validVerbosity, out.Verbosity) {
		return fmt.Errorf("output.verbosity must be one of %s, got %q", strings.Join(validVerbosity, ", "), out.Verbosity)
	}
	return nil
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
