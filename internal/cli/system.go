package cli

import (
	"github.com/spf13/cobra"

	"github.com/luckyjian/my/internal/probe"
	"github.com/luckyjian/my/internal/result"
)

// newSystemCmds returns the identity-facing commands.
func newSystemCmds(format *result.Format) []*cobra.Command {
	return []*cobra.Command{
		probeCmd("hostname", "Find out your hostname", format, probe.Hostname),
		probeCmd("username", "Find out your username", format, probe.Username),
		probeCmd("device-name", "Find out your device name", format, probe.DeviceName),
		probeCmd("os", "Find out your operating system", format, probe.OSLabel),
		probeCmd("architecture", "Find out your CPU architecture", format, probe.Architecture),
	}
}
