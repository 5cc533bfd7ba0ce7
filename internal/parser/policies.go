package parser

import (
	"encoding/xml"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"srx-config-model/internal/model"
)

// securityContext mirrors one security-context element of the policy
// export: a (from-zone, to-zone) pair and its policy entries.
type securityContext struct {
	SourceZone      string              `xml:"context-information>source-zone-name"`
	DestinationZone string              `xml:"context-information>destination-zone-name"`
	Policies        []policyInformation `xml:"policies>policy-information"`
}

type policyInformation struct {
	Name         string      `xml:"policy-name"`
	State        string      `xml:"policy-state"`
	Sequence     string      `xml:"policy-sequence-number"`
	Sources      addressRefs `xml:"source-addresses"`
	Destinations addressRefs `xml:"destination-addresses"`
	Applications []appRef    `xml:"applications>application"`
	Action       string      `xml:"policy-action>action-type"`
}

// addressRefs collects the children of a source-addresses or
// destination-addresses element. The child tag varies, so match any.
type addressRefs struct {
	Entries []addressRef `xml:",any"`
}

type addressRef struct {
	Name string `xml:"address-name"`
}

type appRef struct {
	Name string `xml:"application-name"`
}

// ParsePolicies extracts one Policy per policy entry of the security-policy
// export, in document order: contexts in document order, entries in
// document order within each context. Any entry missing a required field
// fails the whole parse.
func ParsePolicies(r io.Reader) ([]model.Policy, error) {
	slog.Debug("parsing security policies")

	var policies []model.Policy
	dec := xml.NewDecoder(r)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading policy document: %w", err)
		}
		se, ok := tok.(xml.StartElement)
		if !ok || se.Name.Local != "security-context" {
			continue
		}

		var ctx securityContext
		if err := dec.DecodeElement(&ctx, &se); err != nil {
			return nil, fmt.Errorf("decoding security-context: %w", err)
		}
		if ctx.SourceZone == "" || ctx.DestinationZone == "" {
			return nil, fmt.Errorf("security-context is missing context-information zone names: %w", ErrMalformedDocument)
		}
		for _, pi := range ctx.Policies {
			policy, err := buildPolicy(ctx.SourceZone, ctx.DestinationZone, pi)
			if err != nil {
				return nil, err
			}
			policies = append(policies, policy)
		}
	}
	slog.Debug("parsed security policies", "count", len(policies))
	return policies, nil
}

func buildPolicy(fromZone, toZone string, pi policyInformation) (model.Policy, error) {
	var zero model.Policy
	if pi.Name == "" {
		return zero, fmt.Errorf("policy in context %s -> %s has no policy-name: %w", fromZone, toZone, ErrMalformedDocument)
	}
	if pi.State == "" {
		return zero, fmt.Errorf("policy %q has no policy-state: %w", pi.Name, ErrMalformedDocument)
	}
	seq, err := strconv.Atoi(strings.TrimSpace(pi.Sequence))
	if err != nil {
		return zero, fmt.Errorf("policy %q has no numeric policy-sequence-number: %w", pi.Name, ErrMalformedDocument)
	}
	if pi.Action == "" {
		return zero, fmt.Errorf("policy %q has no policy-action: %w", pi.Name, ErrMalformedDocument)
	}

	sources, err := addressNames(pi.Name, pi.Sources)
	if err != nil {
		return zero, err
	}
	destinations, err := addressNames(pi.Name, pi.Destinations)
	if err != nil {
		return zero, err
	}

	var apps []string
	for _, app := range pi.Applications {
		if app.Name == "" {
			return zero, fmt.Errorf("policy %q has an application without application-name: %w", pi.Name, ErrMalformedDocument)
		}
		apps = append(apps, app.Name)
	}

	return model.Policy{
		Name:                 pi.Name,
		FromZone:             fromZone,
		ToZone:               toZone,
		Enabled:              pi.State == "enabled",
		Sequence:             seq,
		SourceAddresses:      sources,
		DestinationAddresses: destinations,
		Applications:         apps,
		Action:               pi.Action,
	}, nil
}

func addressNames(policy string, refs addressRefs) ([]string, error) {
	var names []string
	for _, ref := range refs.Entries {
		if ref.Name == "" {
			return nil, fmt.Errorf("policy %q has an address without address-name: %w", policy, ErrMalformedDocument)
		}
		names = append(names, ref.Name)
	}
	return names, nil
}
