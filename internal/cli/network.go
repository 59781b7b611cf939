package cli

import (
	"context"
	"net"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/luckyjian/my/internal/config"
	"github.com/luckyjian/my/internal/probe"
	"github.com/luckyjian/my/internal/result"
)

// newNetworkCmds returns the network-facing commands.
func newNetworkCmds(cfg *config.Config, format *result.Format) []*cobra.Command {
	return []*cobra.Command{
		newIPsCmd(cfg, format),
		newDNSCmd(cfg, format),
		probeCmd("interfaces", "Find out your network interfaces", format, probe.Interfaces),
	}
}

func newIPsCmd(cfg *config.Config, format *result.Format) *cobra.Command {
	var categoryFlag string

	cmd := &cobra.Command{
		Use:   "ips",
		Short: "Find out your IP addresses",
		Long: "Reports the host's public address (resolved through the configured DNS " +
			"probe server) and the local address used for outbound traffic.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			category, err := result.ParseCategory(categoryFlag)
			if err != nil {
				return writeFailure(cmd, *format, "ips", err)
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), probeTimeout)
			defer cancel()

			resolver := net.JoinHostPort(cfg.DNS.ProbeServer, strconv.Itoa(cfg.DNS.ProbePort))
			addrs, err := probe.Addresses(ctx, category, resolver)
			if err != nil {
				return writeFailure(cmd, *format, "ips", err)
			}
			return writeResult(cmd, *format, "ips", addrs)
		},
	}
	cmd.Flags().StringVar(&categoryFlag, "category", "any", "Address category: public|local|any")
	return cmd
}

func newDNSCmd(cfg *config.Config, format *result.Format) *cobra.Command {
	return &cobra.Command{
		Use:   "dns",
		Short: "Find out your DNS servers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), probeTimeout)
			defer cancel()

			servers, err := probe.Run(ctx, func() (result.DNSServers, error) {
				return probe.DNSServers(cfg.DNS.ResolvConf)
			})
			if err != nil {
				return writeFailure(cmd, *format, "dns", err)
			}
			return writeResult(cmd, *format, "dns", servers)
		},
	}
}
