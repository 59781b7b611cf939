package config

import "time"

const (
	DefaultConfigPath = "~/.my/config.yaml"
	DefaultFormat     = "text"

	DefaultNTPServer   = "pool.ntp.org:123"
	DefaultNTPTimeout  = 5 * time.Second
	DefaultNTPAttempts = 1
	MaxNTPAttempts     = 5

	// The OpenDNS resolver used by the public-IP probe.
	DefaultDNSProbeServer = "208.67.222.222"
	DefaultDNSProbePort   = 53
	DefaultResolvConf     = "/etc/resolv.conf"
)

var validFormats = map[string]bool{
	"text": true,
	"json": true,
	"yaml": true,
}
