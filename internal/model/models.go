package model

import (
	"fmt"
	"net/netip"

	"go4.org/netipx"
)

// Policy is a single security policy evaluated between a zone pair.
type Policy struct {
	Name     string
	FromZone string
	ToZone   string
	Enabled  bool
	// Sequence is the rule evaluation order within the (FromZone, ToZone)
	// pair. Policies are kept in document order, not sorted by Sequence.
	Sequence             int
	SourceAddresses      []string // address-book names, unresolved
	DestinationAddresses []string
	Applications         []string
	Action               string // "permit" or "deny"
}

func (p Policy) String() string {
	return fmt.Sprintf("%s %s:%v -> %s:%v : %v",
		p.Action, p.FromZone, p.SourceAddresses, p.ToZone, p.DestinationAddresses, p.Applications)
}

// Route is one active entry from the primary routing table.
type Route struct {
	Destination netip.Prefix
	Interface   string
	// IsLocal is true for directly connected destinations (no next-hop IP).
	IsLocal bool
}

func (r Route) String() string {
	return fmt.Sprintf("%s via %s", r.Destination, r.Interface)
}

// Zone is a security zone: its member interfaces and its address book
// resolved to concrete IP sets. Addresses always contains "any".
type Zone struct {
	Name       string
	Interfaces []string
	Addresses  map[string]*netipx.IPSet
}

func (z Zone) String() string {
	return fmt.Sprintf("%s on %v", z.Name, z.Interfaces)
}

// Firewall is the composed model built from a device's three configuration
// exports. The collections are owned by the model and are not mutated after
// construction.
type Firewall struct {
	Policies []Policy
	Routes   []Route
	Zones    []Zone
}
