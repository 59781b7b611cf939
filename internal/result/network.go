package result

import (
	"fmt"
	"io"
)

// Category classifies an IP address as seen from this host.
type Category string

const (
	CategoryPublic Category = "public"
	CategoryLocal  Category = "local"
	CategoryAny    Category = "any"
)

// ParseCategory validates a user-supplied category name.
func ParseCategory(s string) (Category, error) {
	switch c := Category(s); c {
	case CategoryPublic, CategoryLocal, CategoryAny:
		return c, nil
	default:
		return "", fmt.Errorf("invalid category %q: must be public, local, or any", s)
	}
}

// Address is one categorized IP address.
type Address struct {
	Category Category `json:"category" yaml:"category"`
	IP       string   `json:"ip"       yaml:"ip"`
}

// Addresses is the "ips" result: one entry per probed category.
type Addresses []Address

func (a Addresses) Tag() string { return "ips" }

func (a Addresses) Payload() any {
	if a == nil {
		return []Address{}
	}
	return []Address(a)
}

func (a Addresses) text(w io.Writer) {
	for _, addr := range a {
		fmt.Fprintf(w, "%s\t%s\n", addr.Category, addr.IP)
	}
}

// DNSServers is the "dns" result: the configured resolvers, in configuration
// order, deduplicated.
type DNSServers []string

func (d DNSServers) Tag() string { return "dns" }

func (d DNSServers) Payload() any {
	if d == nil {
		return []string{}
	}
	return []string(d)
}

func (d DNSServers) text(w io.Writer) {
	for _, s := range d {
		fmt.Fprintln(w, s)
	}
}

// Interface is one (interface name, assigned address) pair. An interface with
// several addresses yields several entries; the name disambiguates them.
type Interface struct {
	Name string `json:"name" yaml:"name"`
	IP   string `json:"ip"   yaml:"ip"`
}

// Interfaces is the "interfaces" result.
type Interfaces []Interface

func (i Interfaces) Tag() string { return "interfaces" }

func (i Interfaces) Payload() any {
	if i == nil {
		return []Interface{}
	}
	return []Interface(i)
}

func (i Interfaces) text(w io.Writer) {
	for _, iface := range i {
		fmt.Fprintf(w, "%s %s\n", iface.Name, iface.IP)
	}
}
