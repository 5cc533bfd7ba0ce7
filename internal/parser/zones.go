package parser

import (
	"encoding/xml"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"go4.org/netipx"

	"srx-config-model/internal/model"
	"srx-config-model/internal/utils"
)

// securityZone mirrors one security-zone element. The address book needs
// ordered, tag-discriminated children and the interface lists can nest, so
// decoding walks the subtree instead of relying on fixed field paths.
type securityZone struct {
	Name       string
	Interfaces []string
	Book       addressBook
}

func (z *securityZone) UnmarshalXML(dec *xml.Decoder, start xml.StartElement) error {
	depth := 0
	for {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch {
			case depth == 0 && t.Name.Local == "name" && z.Name == "":
				if err := dec.DecodeElement(&z.Name, &t); err != nil {
					return err
				}
			case t.Name.Local == "interfaces":
				var ifaces struct {
					Names []string `xml:"name"`
				}
				if err := dec.DecodeElement(&ifaces, &t); err != nil {
					return err
				}
				z.Interfaces = append(z.Interfaces, ifaces.Names...)
			case depth == 0 && t.Name.Local == "address-book":
				if err := dec.DecodeElement(&z.Book, &t); err != nil {
					return err
				}
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

// addressBook preserves the document order of its entries. Each child is
// either a plain address or, under any other tag, an address-set.
type addressBook struct {
	Entries []addressBookEntry
}

type addressBookEntry struct {
	IsSet   bool
	Name    string
	Prefix  string   // plain address only
	Members []string // address-set only
}

func (b *addressBook) UnmarshalXML(dec *xml.Decoder, start xml.StartElement) error {
	for {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "address" {
				var addr struct {
					Name   string `xml:"name"`
					Prefix string `xml:"ip-prefix"`
				}
				if err := dec.DecodeElement(&addr, &t); err != nil {
					return err
				}
				b.Entries = append(b.Entries, addressBookEntry{
					Name:   addr.Name,
					Prefix: addr.Prefix,
				})
				continue
			}
			var set struct {
				Name    string `xml:"name"`
				Members []struct {
					Name string `xml:"name"`
				} `xml:"address"`
			}
			if err := dec.DecodeElement(&set, &t); err != nil {
				return err
			}
			entry := addressBookEntry{IsSet: true, Name: set.Name}
			for _, m := range set.Members {
				entry.Members = append(entry.Members, m.Name)
			}
			b.Entries = append(b.Entries, entry)
		case xml.EndElement:
			return nil
		}
	}
}

// ParseZones extracts one Zone per security-zone element of the zone
// configuration export, in document order, with the address book fully
// resolved to IP sets before the zone is returned.
func ParseZones(r io.Reader) ([]model.Zone, error) {
	slog.Debug("parsing zones")

	var zones []model.Zone
	dec := xml.NewDecoder(r)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading zone document: %w", err)
		}
		se, ok := tok.(xml.StartElement)
		if !ok || se.Name.Local != "security-zone" {
			continue
		}

		var sz securityZone
		if err := dec.DecodeElement(&sz, &se); err != nil {
			return nil, fmt.Errorf("decoding security-zone: %w", err)
		}
		zone, err := buildZone(sz)
		if err != nil {
			return nil, err
		}
		zones = append(zones, zone)
	}
	slog.Debug("parsed zones", "count", len(zones))
	return zones, nil
}

func buildZone(sz securityZone) (model.Zone, error) {
	var zero model.Zone
	name := strings.TrimSpace(sz.Name)
	if name == "" {
		return zero, fmt.Errorf("security-zone has no name: %w", ErrMalformedDocument)
	}

	addresses, err := resolveAddressBook(name, sz.Book)
	if err != nil {
		return zero, err
	}
	return model.Zone{
		Name:       name,
		Interfaces: sz.Interfaces,
		Addresses:  addresses,
	}, nil
}

// resolveAddressBook resolves the zone's address book in document order.
// Address sets are unions of entries already present in the mapping, which
// starts with the built-in "any". Each resolved entry is stored under its
// own name, so later sets may reference earlier ones; sets referencing a
// name not yet defined fail the parse. The export lists plain addresses
// before the sets that use them, and resolution relies on that ordering.
func resolveAddressBook(zone string, book addressBook) (map[string]*netipx.IPSet, error) {
	addresses := map[string]*netipx.IPSet{
		"any": utils.AllIPv4(),
	}
	for _, entry := range book.Entries {
		name := strings.TrimSpace(entry.Name)
		if name == "" {
			return nil, fmt.Errorf("address-book entry in zone %q has no name: %w", zone, ErrMalformedDocument)
		}

		if !entry.IsSet {
			prefix := strings.TrimSpace(entry.Prefix)
			if prefix == "" {
				return nil, fmt.Errorf("address %q in zone %q has no ip-prefix: %w", name, zone, ErrMalformedDocument)
			}
			set, err := utils.ParsePrefixSet(prefix)
			if err != nil {
				return nil, fmt.Errorf("address %q in zone %q has invalid ip-prefix %q: %w", name, zone, prefix, ErrMalformedDocument)
			}
			addresses[name] = set
			continue
		}

		var b netipx.IPSetBuilder
		for _, member := range entry.Members {
			member = strings.TrimSpace(member)
			if member == "" {
				return nil, fmt.Errorf("address-set %q in zone %q has a member with no name: %w", name, zone, ErrMalformedDocument)
			}
			ref, ok := addresses[member]
			if !ok {
				return nil, fmt.Errorf("address-set %q in zone %q references undefined name %q: %w", name, zone, member, ErrUnresolvedAddress)
			}
			b.AddSet(ref)
		}
		set, err := b.IPSet()
		if err != nil {
			return nil, fmt.Errorf("building address-set %q in zone %q: %w", name, zone, err)
		}
		addresses[name] = set
	}
	return addresses, nil
}
