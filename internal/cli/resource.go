package cli

import (
	"github.com/spf13/cobra"

	"github.com/luckyjian/my/internal/probe"
	"github.com/luckyjian/my/internal/result"
)

// newResourceCmds returns the resource-facing commands.
func newResourceCmds(format *result.Format) []*cobra.Command {
	return []*cobra.Command{
		probeCmd("cpu", "Find out about your CPU", format, probe.CPU),
		probeCmd("ram", "Find out about your memory", format, probe.Memory),
		probeCmd("storage", "Find out about your storage volumes", format, probe.Disks),
	}
}
