package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all tool-wide configuration. Every knob has a default, so a
// config file is entirely optional.
type Config struct {
	Output OutputConfig `yaml:"output" mapstructure:"output"`
	NTP    NTPConfig    `yaml:"ntp"    mapstructure:"ntp"`
	DNS    DNSConfig    `yaml:"dns"    mapstructure:"dns"`
}

// OutputConfig selects the default rendering mode.
type OutputConfig struct {
	Format string `yaml:"format" mapstructure:"format"`
}

// NTPConfig controls the clock-synchronization exchange. Attempts bounds how
// many single-round-trip exchanges the dispatcher may run before giving up;
// the engine itself never retries.
type NTPConfig struct {
	Server   string        `yaml:"server"   mapstructure:"server"`
	Timeout  time.Duration `yaml:"timeout"  mapstructure:"timeout"`
	Attempts int           `yaml:"attempts" mapstructure:"attempts"`
}

// DNSConfig controls the network probes: which resolver answers the
// public-IP query and where the system resolver list is read from.
type DNSConfig struct {
	ProbeServer string `yaml:"probe_server" mapstructure:"probe_server"`
	ProbePort   int    `yaml:"probe_port"   mapstructure:"probe_port"`
	ResolvConf  string `yaml:"resolv_conf"  mapstructure:"resolv_conf"`
}

// defaultConfigFile resolves DefaultConfigPath against the user's home
// directory. It returns "" when the home directory is unknown or the file
// does not exist, in which case only defaults and environment apply.
func defaultConfigFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	path := filepath.Join(home, strings.TrimPrefix(DefaultConfigPath, "~/"))
	if _, err := os.Stat(path); err != nil {
		return ""
	}
	return path
}

// Load reads configuration from an optional file and environment variables.
// When cfgFile is empty, DefaultConfigPath is read if it exists; otherwise
// only defaults and environment variables are used.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()

	// Set default values.
	v.SetDefault("output.format", DefaultFormat)
	v.SetDefault("ntp.server", DefaultNTPServer)
	v.SetDefault("ntp.timeout", DefaultNTPTimeout)
	v.SetDefault("ntp.attempts", DefaultNTPAttempts)
	v.SetDefault("dns.probe_server", DefaultDNSProbeServer)
	v.SetDefault("dns.probe_port", DefaultDNSProbePort)
	v.SetDefault("dns.resolv_conf", DefaultResolvConf)

	// Support environment variables with MY_ prefix (e.g. MY_NTP_SERVER → ntp.server).
	v.SetEnvPrefix("MY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Explicit bindings ensure nested keys map correctly to environment variables.
	envBindings := map[string]string{
		"output.format":    "MY_OUTPUT_FORMAT",
		"ntp.server":       "MY_NTP_SERVER",
		"ntp.timeout":      "MY_NTP_TIMEOUT",
		"ntp.attempts":     "MY_NTP_ATTEMPTS",
		"dns.probe_server": "MY_DNS_PROBE_SERVER",
		"dns.probe_port":   "MY_DNS_PROBE_PORT",
		"dns.resolv_conf":  "MY_DNS_RESOLV_CONF",
	}
	for key, envVar := range envBindings {
		if err := v.BindEnv(key, envVar); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", envVar, err)
		}
	}

	// Optional config file. An explicit path must exist; the default path
	// is only read when present.
	if cfgFile == "" {
		cfgFile = defaultConfigFile()
	}
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}

// Validate checks that the configuration is semantically correct.
func (c *Config) Validate() error {
	if !validFormats[c.Output.Format] {
		return fmt.Errorf(
			"invalid output format %q: must be text, json, or yaml", c.Output.Format,
		)
	}
	if c.NTP.Server == "" {
		return fmt.Errorf("ntp.server must not be empty")
	}
	if c.NTP.Timeout <= 0 {
		return fmt.Errorf("invalid ntp.timeout %s: must be positive", c.NTP.Timeout)
	}
	if c.NTP.Attempts < 1 || c.NTP.Attempts > MaxNTPAttempts {
		return fmt.Errorf(
			"invalid ntp.attempts %d: must be between 1 and %d", c.NTP.Attempts, MaxNTPAttempts,
		)
	}
	if c.DNS.ProbePort <= 0 || c.DNS.ProbePort > 65535 {
		return fmt.Errorf("invalid dns.probe_port %d: must be between 1 and 65535", c.DNS.ProbePort)
	}
	return nil
}
