package config

// CurrentConfigVersion is the schema version for the config file.
// Increment when making breaking changes to the config structure.
const CurrentConfigVersion = 1

// Transport names for the ssh command.
const (
	TransportSystem = "system" // local ssh binary
	TransportNative = "native" // in-process SSH client
)

// Config represents the complete ecsctl configuration file.
type Config struct {
	Version int `yaml:"version" mapstructure:"version"`

	// Cluster is used when --cluster is not given.
	Cluster string `yaml:"cluster" mapstructure:"cluster"`

	// Region and Profile select AWS credentials. Empty means the SDK default chain.
	Region  string `yaml:"region" mapstructure:"region"`
	Profile string `yaml:"profile" mapstructure:"profile"`

	Docker DockerConfig `yaml:"docker" mapstructure:"docker"`
	SSH    SSHConfig    `yaml:"ssh" mapstructure:"ssh"`
	Output OutputConfig `yaml:"output" mapstructure:"output"`
}

// DockerConfig controls the direct exec transport against the Docker Engine API
// exposed by each container instance.
type DockerConfig struct {
	// Port the Docker Engine API listens on.
	Port int `yaml:"port" mapstructure:"port"`

	// APIVersion pins the Engine API version. Empty negotiates with the daemon.
	APIVersion string `yaml:"api_version" mapstructure:"api_version"`

	TLS TLSConfig `yaml:"tls" mapstructure:"tls"`
}

// TLSConfig holds client certificate paths. All three must be set to enable TLS.
type TLSConfig struct {
	CA   string `yaml:"ca" mapstructure:"ca"`
	Cert string `yaml:"cert" mapstructure:"cert"`
	Key  string `yaml:"key" mapstructure:"key"`
}

// Enabled reports whether any TLS path was configured.
func (t TLSConfig) Enabled() bool {
	return t.CA != "" || t.Cert != "" || t.Key != ""
}

// SSHConfig controls the remote-shell transport.
type SSHConfig struct {
	// User to log in as on the container instance.
	User string `yaml:"user" mapstructure:"user"`

	// Port sshd listens on.
	Port int `yaml:"port" mapstructure:"port"`

	// Sudo prefixes the remote docker invocations with sudo.
	Sudo bool `yaml:"sudo" mapstructure:"sudo"`

	// Transport is "system" (local ssh binary) or "native" (in-process client).
	Transport string `yaml:"transport" mapstructure:"transport"`

	// Binary is the ssh executable used by the system transport.
	Binary string `yaml:"binary" mapstructure:"binary"`

	// StrictHostKeyChecking verifies host keys against ~/.ssh/known_hosts
	// for the native transport.
	StrictHostKeyChecking bool `yaml:"strict_host_key_checking" mapstructure:"strict_host_key_checking"`
}

// OutputConfig controls terminal output formatting.
type OutputConfig struct {
	// Color mode: "auto", "always", or "never".
	Color string `yaml:"color" mapstructure:"color"`

	// Verbosity level: "quiet", "normal", or "verbose".
	Verbosity string `yaml:"verbosity" mapstructure:"verbosity"`
}

// DefaultConfig returns a Config with sensible defaults.
// The SSH user is filled in by the loader from the environment.
func DefaultConfig() *Config {
	return &Config{
		Version: CurrentConfigVersion,
		Cluster: "default",
		Docker: DockerConfig{
			Port: 2375,
		},
		SSH: SSHConfig{
			Port:                  22,
			Sudo:                  true,
			Transport:             TransportSystem,
			Binary:                "ssh",
			StrictHostKeyChecking: true,
		},
		Output: OutputConfig{
			Color:     "auto",
			Verbosity: "normal",
		},
	}
}
