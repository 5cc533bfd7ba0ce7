package parser

import (
	"encoding/xml"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"srx-config-model/internal/model"
	"srx-config-model/internal/utils"
)

// junosRoutingNamespace qualifies every element of the routing-table
// export. The URI is version-specific vendor data, so it lives here rather
// than being spread through the match logic.
const junosRoutingNamespace = "http://xml.juniper.net/junos/12.1X44/junos-routing"

// primaryRouteTable is the IPv4 unicast table the model is built from.
const primaryRouteTable = "inet.0"

type routeTable struct {
	Name   string      `xml:"table-name"`
	Routes []rtElement `xml:"rt"`
}

type rtElement struct {
	Destination string    `xml:"rt-destination"`
	Entries     []rtEntry `xml:"rt-entry"`
}

// rtEntry summarizes one rt-entry element. The interesting children (the
// current-active marker, via, to) can sit at varying depths depending on
// the next-hop type, so decoding scans the whole subtree.
type rtEntry struct {
	Active bool
	Via    string // first via found, empty if none
	HasTo  bool   // any next-hop address present
}

func (e *rtEntry) UnmarshalXML(dec *xml.Decoder, start xml.StartElement) error {
	depth := 0
	for {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Space != junosRoutingNamespace {
				depth++
				continue
			}
			switch t.Name.Local {
			case "current-active":
				e.Active = true
				if err := dec.Skip(); err != nil {
					return err
				}
			case "via":
				var via string
				if err := dec.DecodeElement(&via, &t); err != nil {
					return err
				}
				if e.Via == "" {
					e.Via = strings.TrimSpace(via)
				}
			case "to":
				if err := dec.Skip(); err != nil {
					return err
				}
				e.HasTo = true
			default:
				depth++
			}
		case xml.EndElement:
			if depth == 0 {
				return nil
			}
			depth--
		}
	}
}

// ParseRoutes extracts Routes from the first route table named "inet.0" in
// the routing export. Other tables are ignored. A document without an
// inet.0 table yields no routes and no error: a firewall may legitimately
// export none.
//
// Per destination, only the rt-entry carrying the current-active marker
// contributes, and only when it resolves to an egress interface;
// destinations whose active entry has no via (discard and reject routes)
// are dropped.
func ParseRoutes(r io.Reader) ([]model.Route, error) {
	slog.Debug("parsing routes", "table", primaryRouteTable)

	dec := xml.NewDecoder(r)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading route document: %w", err)
		}
		se, ok := tok.(xml.StartElement)
		if !ok || se.Name.Local != "route-table" || se.Name.Space != junosRoutingNamespace {
			continue
		}

		var table routeTable
		if err := dec.DecodeElement(&table, &se); err != nil {
			return nil, fmt.Errorf("decoding route-table: %w", err)
		}
		if strings.TrimSpace(table.Name) != primaryRouteTable {
			continue
		}

		routes, err := buildRoutes(table)
		if err != nil {
			return nil, err
		}
		slog.Debug("parsed routes", "count", len(routes))
		return routes, nil
	}

	slog.Debug("route table not present", "table", primaryRouteTable)
	return nil, nil
}

func buildRoutes(table routeTable) ([]model.Route, error) {
	var routes []model.Route
	for _, rt := range table.Routes {
		dest := strings.TrimSpace(rt.Destination)
		if dest == "" {
			return nil, fmt.Errorf("rt element has no rt-destination: %w", ErrMalformedDocument)
		}
		prefix, err := utils.ParsePrefix(dest)
		if err != nil {
			return nil, fmt.Errorf("rt-destination %q is not a prefix: %w", dest, ErrMalformedDocument)
		}

		var iface string
		var isLocal bool
		for _, entry := range rt.Entries {
			if !entry.Active {
				continue
			}
			if entry.Via != "" {
				iface = entry.Via
			}
			isLocal = !entry.HasTo
		}
		// No active entry, or an active entry with no resolvable
		// interface: the destination yields nothing.
		if iface == "" {
			continue
		}
		routes = append(routes, model.Route{
			Destination: prefix,
			Interface:   iface,
			IsLocal:     isLocal,
		})
	}
	return routes, nil
}
