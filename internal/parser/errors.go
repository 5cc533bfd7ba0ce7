// Package parser extracts a normalized firewall model from the three XML
// documents exported by the SRX management interface: security policies,
// the routing table, and the security-zone configuration.
package parser

import "errors"

// Sentinel errors for parse failures. A malformed or unresolvable export
// aborts the whole parse; there is no partial model.
var (
	ErrMalformedDocument = errors.New("malformed configuration document")
	ErrUnresolvedAddress = errors.New("unresolved address-book reference")
)
