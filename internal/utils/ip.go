package utils

import (
	"net/netip"

	"go4.org/netipx"
)

// ParsePrefix parses a CIDR prefix, accepting a bare address as a host
// route (/32, or /128 for IPv6). Routing exports print connected host
// destinations without a mask.
func ParsePrefix(s string) (netip.Prefix, error) {
	if p, err := netip.ParsePrefix(s); err == nil {
		return p, nil
	}
	addr, err := netip.ParseAddr(s)
	if err != nil {
		return netip.Prefix{}, err
	}
	return netip.PrefixFrom(addr, addr.BitLen()), nil
}

// ParsePrefixSet builds a single-prefix IP set from a CIDR string.
func ParsePrefixSet(s string) (*netipx.IPSet, error) {
	p, err := ParsePrefix(s)
	if err != nil {
		return nil, err
	}
	var b netipx.IPSetBuilder
	b.AddPrefix(p)
	return b.IPSet()
}

// AllIPv4 returns the full IPv4 address space as an IP set.
func AllIPv4() *netipx.IPSet {
	var b netipx.IPSetBuilder
	b.AddPrefix(netip.MustParsePrefix("0.0.0.0/0"))
	set, err := b.IPSet()
	if err != nil {
		// A single valid prefix cannot fail to build.
		panic(err)
	}
	return set
}
