package parser

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseFirewall(t *testing.T) {
	fw, err := ParseFirewall(
		strings.NewReader(policiesXML),
		strings.NewReader(routesXML),
		strings.NewReader(zonesXML),
	)
	if err != nil {
		t.Fatalf("expected construction to succeed, got %v", err)
	}

	if len(fw.Policies) != 3 {
		t.Errorf("expected 3 policies, got %d", len(fw.Policies))
	}
	if len(fw.Routes) != 3 {
		t.Errorf("expected 3 routes, got %d", len(fw.Routes))
	}
	if len(fw.Zones) != 2 {
		t.Errorf("expected 2 zones, got %d", len(fw.Zones))
	}

	// Cross-collection relationships are by name only.
	if fw.Policies[0].FromZone != fw.Zones[0].Name {
		t.Errorf("expected policy from-zone %q to match zone %q", fw.Policies[0].FromZone, fw.Zones[0].Name)
	}
}

func TestParseFirewallFailsFast(t *testing.T) {
	bad := "<security-policies><security-context></security-context></security-policies>"

	cases := map[string][3]string{
		"bad policies": {bad, routesXML, zonesXML},
		"bad routes":   {policiesXML, "<<<", zonesXML},
		"bad zones":    {policiesXML, routesXML, "<configuration><security-zone/></configuration>"},
	}
	for name, docs := range cases {
		_, err := ParseFirewall(
			strings.NewReader(docs[0]),
			strings.NewReader(docs[1]),
			strings.NewReader(docs[2]),
		)
		if err == nil {
			t.Errorf("%s: expected construction to fail", name)
		}
	}
}

func TestParseFirewallFiles(t *testing.T) {
	tmpDir := t.TempDir()
	policiesPath := filepath.Join(tmpDir, "policies.xml")
	routesPath := filepath.Join(tmpDir, "routes.xml")
	zonesPath := filepath.Join(tmpDir, "zones.xml")

	os.WriteFile(policiesPath, []byte(policiesXML), 0644)
	os.WriteFile(routesPath, []byte(routesXML), 0644)
	os.WriteFile(zonesPath, []byte(zonesXML), 0644)

	fw, err := ParseFirewallFiles(policiesPath, routesPath, zonesPath)
	if err != nil {
		t.Fatalf("expected construction to succeed, got %v", err)
	}
	if len(fw.Policies) != 3 || len(fw.Routes) != 3 || len(fw.Zones) != 2 {
		t.Fatalf("unexpected model sizes: %d policies, %d routes, %d zones",
			len(fw.Policies), len(fw.Routes), len(fw.Zones))
	}

	if _, err := ParseFirewallFiles(filepath.Join(tmpDir, "missing.xml"), routesPath, zonesPath); err == nil {
		t.Errorf("expected error for missing policies file")
	}
	if _, err := ParseFirewallFiles(policiesPath, filepath.Join(tmpDir, "missing.xml"), zonesPath); err == nil {
		t.Errorf("expected error for missing routes file")
	}
	if _, err := ParseFirewallFiles(policiesPath, routesPath, filepath.Join(tmpDir, "missing.xml")); err == nil {
		t.Errorf("expected error for missing zones file")
	}
}
