package parser

import (
	"errors"
	"net/netip"
	"strings"
	"testing"

	"srx-config-model/internal/utils"
)

const zonesXML = `
<configuration>
  <security-zones>
    <security-zone>
      <name>trust</name>
      <interfaces>
        <name>ge-0/0/0.0</name>
      </interfaces>
      <interfaces>
        <name>ge-0/0/1.0</name>
      </interfaces>
      <address-book>
        <address>
          <name>web1</name>
          <ip-prefix>10.0.1.10/32</ip-prefix>
        </address>
        <address>
          <name>web2</name>
          <ip-prefix>10.0.1.11/32</ip-prefix>
        </address>
        <address-set>
          <name>web-servers</name>
          <address><name>web1</name></address>
          <address><name>web2</name></address>
        </address-set>
        <address-set>
          <name>everything</name>
          <address><name>web-servers</name></address>
          <address><name>any</name></address>
        </address-set>
      </address-book>
    </security-zone>
    <security-zone>
      <name>untrust</name>
      <interfaces>
        <name>ge-0/0/2.0</name>
      </interfaces>
    </security-zone>
  </security-zones>
</configuration>`

func TestParseZones(t *testing.T) {
	zones, err := ParseZones(strings.NewReader(zonesXML))
	if err != nil {
		t.Fatalf("expected parse to succeed, got %v", err)
	}
	if len(zones) != 2 {
		t.Fatalf("expected 2 zones, got %d", len(zones))
	}

	trust := zones[0]
	if trust.Name != "trust" {
		t.Errorf("expected zone trust, got %s", trust.Name)
	}
	if len(trust.Interfaces) != 2 || trust.Interfaces[0] != "ge-0/0/0.0" || trust.Interfaces[1] != "ge-0/0/1.0" {
		t.Errorf("unexpected interfaces: %v", trust.Interfaces)
	}

	web1, ok := trust.Addresses["web1"]
	if !ok {
		t.Fatal("expected web1 in the address book")
	}
	if !web1.Contains(netip.MustParseAddr("10.0.1.10")) || web1.Contains(netip.MustParseAddr("10.0.1.11")) {
		t.Errorf("web1 should contain exactly 10.0.1.10")
	}

	servers, ok := trust.Addresses["web-servers"]
	if !ok {
		t.Fatal("expected web-servers in the address book")
	}
	if !servers.Contains(netip.MustParseAddr("10.0.1.10")) || !servers.Contains(netip.MustParseAddr("10.0.1.11")) {
		t.Errorf("web-servers should union web1 and web2")
	}
	if servers.Contains(netip.MustParseAddr("10.0.1.12")) {
		t.Errorf("web-servers should not contain unrelated addresses")
	}
}

func TestParseZonesBuiltinAny(t *testing.T) {
	zones, err := ParseZones(strings.NewReader(zonesXML))
	if err != nil {
		t.Fatalf("expected parse to succeed, got %v", err)
	}
	// Every zone carries "any", including untrust which defines no
	// address book at all.
	for _, zone := range zones {
		anySet, ok := zone.Addresses["any"]
		if !ok {
			t.Fatalf("zone %s: missing built-in any", zone.Name)
		}
		if !anySet.Equal(utils.AllIPv4()) {
			t.Errorf("zone %s: any should be the full IPv4 space", zone.Name)
		}
	}
}

func TestParseZonesSetReferencingAnyIsFullSpace(t *testing.T) {
	doc := `
<configuration>
  <security-zone>
    <name>dmz</name>
    <address-book>
      <address>
        <name>A</name>
        <ip-prefix>10.0.0.0/24</ip-prefix>
      </address>
      <address-set>
        <name>S</name>
        <address><name>A</name></address>
        <address><name>any</name></address>
      </address-set>
    </address-book>
  </security-zone>
</configuration>`

	zones, err := ParseZones(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("expected parse to succeed, got %v", err)
	}
	zone := zones[0]

	if !zone.Addresses["S"].Equal(utils.AllIPv4()) {
		t.Errorf("S unions A with any and should be the full address space")
	}
	// A itself is unchanged by the set that references it.
	wantA, _ := utils.ParsePrefixSet("10.0.0.0/24")
	if !zone.Addresses["A"].Equal(wantA) {
		t.Errorf("A should remain 10.0.0.0/24")
	}
}

func TestParseZonesResolutionIsDeterministic(t *testing.T) {
	first, err := ParseZones(strings.NewReader(zonesXML))
	if err != nil {
		t.Fatalf("expected parse to succeed, got %v", err)
	}
	second, err := ParseZones(strings.NewReader(zonesXML))
	if err != nil {
		t.Fatalf("expected parse to succeed, got %v", err)
	}
	for name, set := range first[0].Addresses {
		if !set.Equal(second[0].Addresses[name]) {
			t.Errorf("address %s resolved differently across parses", name)
		}
	}
}

func TestParseZonesUnresolvedReference(t *testing.T) {
	doc := `
<configuration>
  <security-zone>
    <name>trust</name>
    <address-book>
      <address-set>
        <name>S</name>
        <address><name>undefined-name</name></address>
      </address-set>
    </address-book>
  </security-zone>
</configuration>`

	_, err := ParseZones(strings.NewReader(doc))
	if !errors.Is(err, ErrUnresolvedAddress) {
		t.Fatalf("expected ErrUnresolvedAddress, got %v", err)
	}
}

func TestParseZonesForwardReferenceFails(t *testing.T) {
	// The set precedes the address it references: resolution is strictly
	// in document order, so this is an unresolved reference.
	doc := `
<configuration>
  <security-zone>
    <name>trust</name>
    <address-book>
      <address-set>
        <name>S</name>
        <address><name>late</name></address>
      </address-set>
      <address>
        <name>late</name>
        <ip-prefix>10.0.0.0/24</ip-prefix>
      </address>
    </address-book>
  </security-zone>
</configuration>`

	_, err := ParseZones(strings.NewReader(doc))
	if !errors.Is(err, ErrUnresolvedAddress) {
		t.Fatalf("expected ErrUnresolvedAddress, got %v", err)
	}
}

func TestParseZonesMalformedEntries(t *testing.T) {
	cases := map[string]string{
		"zone without name": `<security-zone><address-book/></security-zone>`,
		"address without name": `<security-zone><name>z</name><address-book>
			<address><ip-prefix>10.0.0.0/24</ip-prefix></address>
			</address-book></security-zone>`,
		"address without prefix": `<security-zone><name>z</name><address-book>
			<address><name>a</name></address>
			</address-book></security-zone>`,
		"address with bad prefix": `<security-zone><name>z</name><address-book>
			<address><name>a</name><ip-prefix>nonsense</ip-prefix></address>
			</address-book></security-zone>`,
		"set without name": `<security-zone><name>z</name><address-book>
			<address-set><address><name>any</name></address></address-set>
			</address-book></security-zone>`,
	}

	for name, zone := range cases {
		doc := "<configuration>" + zone + "</configuration>"
		_, err := ParseZones(strings.NewReader(doc))
		if !errors.Is(err, ErrMalformedDocument) {
			t.Errorf("%s: expected ErrMalformedDocument, got %v", name, err)
		}
	}
}

func TestParseZonesEmptyDocument(t *testing.T) {
	zones, err := ParseZones(strings.NewReader("<configuration/>"))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(zones) != 0 {
		t.Fatalf("expected no zones, got %d", len(zones))
	}
}
