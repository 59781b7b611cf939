package probe

import (
	"context"
	"fmt"
	"net"
	"strings"
	"sync"

	"github.com/miekg/dns"
	"github.com/rs/zerolog/log"
	psnet "github.com/shirou/gopsutil/v4/net"

	"github.com/luckyjian/my/internal/result"
)

// publicIPHost resolves to the querier's own public address when asked of the
// OpenDNS resolvers.
const publicIPHost = "myip.opendns.com."

// Addresses probes the host's IP addresses for the requested category.
// CategoryAny runs the public and local probes concurrently, each writing to
// its own slot, and merges once both are done; both must succeed.
func Addresses(ctx context.Context, category result.Category, resolver string) (result.Addresses, error) {
	switch category {
	case result.CategoryPublic:
		ip, err := PublicIP(ctx, resolver)
		if err != nil {
			return nil, err
		}
		return result.Addresses{{Category: result.CategoryPublic, IP: ip}}, nil
	case result.CategoryLocal:
		ip, err := LocalIP()
		if err != nil {
			return nil, err
		}
		return result.Addresses{{Category: result.CategoryLocal, IP: ip}}, nil
	case result.CategoryAny:
		var wg sync.WaitGroup
		var pub, loc string
		var pubErr, locErr error
		wg.Add(2)
		go func() {
			defer wg.Done()
			pub, pubErr = PublicIP(ctx, resolver)
		}()
		go func() {
			defer wg.Done()
			loc, locErr = LocalIP()
		}()
		wg.Wait()
		if pubErr != nil {
			return nil, pubErr
		}
		if locErr != nil {
			return nil, locErr
		}
		return result.Addresses{
			{Category: result.CategoryPublic, IP: pub},
			{Category: result.CategoryLocal, IP: loc},
		}, nil
	default:
		return nil, fmt.Errorf("unknown category %q", category)
	}
}

// PublicIP queries the resolver (host:port) for the A record of
// myip.opendns.com, which OpenDNS answers with the querier's public address.
func PublicIP(ctx context.Context, resolver string) (string, error) {
	m := new(dns.Msg)
	m.SetQuestion(publicIPHost, dns.TypeA)

	c := new(dns.Client)
	in, rtt, err := c.ExchangeContext(ctx, m, resolver)
	if err != nil {
		return "", fmt.Errorf("%w: query %s: %v", ErrNetwork, resolver, err)
	}
	log.Debug().Str("resolver", resolver).Dur("rtt", rtt).Msg("public ip query")

	for _, rr := range in.Answer {
		if a, ok := rr.(*dns.A); ok {
			return a.A.String(), nil
		}
	}
	return "", fmt.Errorf("%w: no A record for %s", ErrUnavailable, publicIPHost)
}

// LocalIP reports the source address the host would use for outbound
// traffic. The dial never sends a packet; it only consults the routing table.
func LocalIP() (string, error) {
	conn, err := net.Dial("udp", "8.8.8.8:80")
	if err != nil {
		return "", fmt.Errorf("%w: no outbound route: %v", ErrNetwork, err)
	}
	defer conn.Close()
	addr, ok := conn.LocalAddr().(*net.UDPAddr)
	if !ok {
		return "", fmt.Errorf("%w: unexpected local address %v", ErrUnavailable, conn.LocalAddr())
	}
	return addr.IP.String(), nil
}

// DNSServers lists the resolvers configured in the given resolv.conf,
// deduplicated, in configuration order.
func DNSServers(resolvConf string) (result.DNSServers, error) {
	cfg, err := dns.ClientConfigFromFile(resolvConf)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", ErrUnavailable, resolvConf, err)
	}
	return result.DNSServers(dedup(cfg.Servers)), nil
}

// Interfaces lists the host's network interfaces, one entry per assigned
// address. An interface without addresses yields no entries.
func Interfaces() (result.Interfaces, error) {
	stats, err := psnet.Interfaces()
	if err != nil {
		return nil, fmt.Errorf("%w: interfaces: %v", ErrUnavailable, err)
	}
	ifaces := result.Interfaces{}
	for _, stat := range stats {
		for _, addr := range stat.Addrs {
			ip := addr.Addr
			// Addresses come CIDR-notated; the mask is noise here.
			if i := strings.IndexByte(ip, '/'); i >= 0 {
				ip = ip[:i]
			}
			ifaces = append(ifaces, result.Interface{Name: stat.Name, IP: ip})
		}
	}
	return ifaces, nil
}

// dedup removes repeated entries while preserving first-seen order.
func dedup(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}
