package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/rileyhilliard/ecsctl/internal/errors"
	"github.com/spf13/viper"
)

const (
	// GlobalConfigDir is the directory for the config file, relative to home.
	GlobalConfigDir = ".config/ecsctl"
	// GlobalConfigFile is the config file name.
	GlobalConfigFile = "config.yaml"
	// ConfigEnvVar points at an alternate config file.
	ConfigEnvVar = "ECSCTL_CONFIG"
	// EnvPrefix prefixes environment overrides (ECSCTL_CLUSTER, ECSCTL_DOCKER_PORT, ...).
	EnvPrefix = "ECSCTL"
)

// Env looks up an environment variable. Tests substitute a map-backed lookup.
type Env func(key string) string

// Load reads config from the specified path and applies ECSCTL_* overrides.
// An empty path yields defaults plus overrides.
func Load(path string) (*Config, error) {
	return LoadWithEnv(path, os.Getenv)
}

// LoadWithEnv is Load with an explicit environment lookup used for the
// ECS_USER/USER fallback of ssh.user.
func LoadWithEnv(path string, env Env) (*Config, error) {
	v := viper.New()
	setDefaults(v, env)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			if os.IsNotExist(err) {
				return nil, errors.WrapWithCode(err, errors.ErrConfig,
					"Config file not found",
					"Check the path passed to --config or "+ConfigEnvVar)
			}
			return nil, errors.WrapWithCode(err, errors.ErrConfig,
				"Failed to read config file",
				"Check the file exists and is valid YAML")
		}
	}

	return parseConfig(v, path)
}

// Find locates the config file using the search order:
// 1. Explicit path (from --config flag)
// 2. $ECSCTL_CONFIG
// 3. ~/.config/ecsctl/config.yaml
//
// Returns the path to the config file, or empty string if not found.
func Find(explicit string) (string, error) {
	if explicit == "" {
		explicit = os.Getenv(ConfigEnvVar)
	}

	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			if os.IsNotExist(err) {
				return "", errors.WrapWithCode(err, errors.ErrConfig,
					"Specified config file not found: "+explicit,
					"Check the path is correct")
			}
			return "", errors.WrapWithCode(err, errors.ErrConfig,
				"Cannot access config file: "+explicit,
				"Check file permissions")
		}
		return explicit, nil
	}

	home, _ := os.UserHomeDir()
	if home != "" {
		globalConfig := filepath.Join(home, GlobalConfigDir, GlobalConfigFile)
		if _, err := os.Stat(globalConfig); err == nil {
			return globalConfig, nil
		}
	}

	return "", nil
}

// LoadOrDefault finds and loads the config, falling back to defaults when
// no config file exists.
func LoadOrDefault(explicit string) (*Config, error) {
	path, err := Find(explicit)
	if err != nil {
		return nil, err
	}
	return Load(path)
}

// parseConfig converts viper config to our Config struct with defaults merged in.
func parseConfig(v *viper.Viper, path string) (*Config, error) {
	cfg := DefaultConfig()

	if err := v.Unmarshal(cfg); err != nil {
		where := "your environment overrides"
		if path != "" {
			where = path
		}
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Invalid config format",
			"Check the YAML syntax in "+where)
	}

	cfg.Docker.TLS.CA = ExpandTilde(cfg.Docker.TLS.CA)
	cfg.Docker.TLS.Cert = ExpandTilde(cfg.Docker.TLS.Cert)
	cfg.Docker.TLS.Key = ExpandTilde(cfg.Docker.TLS.Key)

	return cfg, nil
}

// setDefaults registers every key so AutomaticEnv can override it during Unmarshal.
func setDefaults(v *viper.Viper, env Env) {
	d := DefaultConfig()

	v.SetDefault("version", d.Version)
	v.SetDefault("cluster", d.Cluster)
	v.SetDefault("region", "")
	v.SetDefault("profile", "")
	v.SetDefault("docker.port", d.Docker.Port)
	v.SetDefault("docker.api_version", "")
	v.SetDefault("docker.tls.ca", "")
	v.SetDefault("docker.tls.cert", "")
	v.SetDefault("docker.tls.key", "")
	v.SetDefault("ssh.user", DefaultSSHUser(env))
	v.SetDefault("ssh.port", d.SSH.Port)
	v.SetDefault("ssh.sudo", d.SSH.Sudo)
	v.SetDefault("ssh.transport", d.SSH.Transport)
	v.SetDefault("ssh.binary", d.SSH.Binary)
	v.SetDefault("ssh.strict_host_key_checking", d.SSH.StrictHostKeyChecking)
	v.SetDefault("output.color", d.Output.Color)
	v.SetDefault("output.verbosity", d.Output.Verbosity)
}

// DefaultSSHUser returns $ECS_USER, falling back to $USER.
func DefaultSSHUser(env Env) string {
	if u := env("ECS_USER"); u != "" {
		return u
	}
	return env("USER")
}
