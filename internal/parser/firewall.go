package parser

import (
	"fmt"
	"io"
	"os"

	"srx-config-model/internal/model"
)

// ParseFirewall builds the composed model from the three configuration
// exports. The extractors are independent; a failure in any one of them
// fails the whole construction, so callers get either a complete model or
// an error.
func ParseFirewall(policies, routes, zones io.Reader) (*model.Firewall, error) {
	pols, err := ParsePolicies(policies)
	if err != nil {
		return nil, fmt.Errorf("parsing security policies: %w", err)
	}

	rts, err := ParseRoutes(routes)
	if err != nil {
		return nil, fmt.Errorf("parsing routes: %w", err)
	}

	zns, err := ParseZones(zones)
	if err != nil {
		return nil, fmt.Errorf("parsing zones: %w", err)
	}

	return &model.Firewall{
		Policies: pols,
		Routes:   rts,
		Zones:    zns,
	}, nil
}

// ParseFirewallFiles is ParseFirewall over files on disk.
func ParseFirewallFiles(policiesPath, routesPath, zonesPath string) (*model.Firewall, error) {
	policiesF, err := os.Open(policiesPath)
	if err != nil {
		return nil, err
	}
	defer policiesF.Close()

	routesF, err := os.Open(routesPath)
	if err != nil {
		return nil, err
	}
	defer routesF.Close()

	zonesF, err := os.Open(zonesPath)
	if err != nil {
		return nil, err
	}
	defer zonesF.Close()

	return ParseFirewall(policiesF, routesF, zonesF)
}
