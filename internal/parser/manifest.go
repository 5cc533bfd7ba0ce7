package parser

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"srx-config-model/internal/model"
)

// Manifest names the configuration exports for a set of firewalls, so one
// invocation can build models for a whole fleet.
type Manifest struct {
	Firewalls []FirewallExports `yaml:"firewalls"`
}

// FirewallExports locates the three export documents for one device.
type FirewallExports struct {
	Name     string `yaml:"name"`
	Policies string `yaml:"policies"`
	Routes   string `yaml:"routes"`
	Zones    string `yaml:"zones"`
}

// LoadManifest parses a manifest YAML file and validates required fields.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest file: %w", err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing manifest YAML: %w", err)
	}

	if err := validateManifest(&m); err != nil {
		return nil, fmt.Errorf("validating manifest: %w", err)
	}
	return &m, nil
}

func validateManifest(m *Manifest) error {
	if len(m.Firewalls) == 0 {
		return fmt.Errorf("at least one firewall is required")
	}
	seen := make(map[string]bool)
	for i, fw := range m.Firewalls {
		if fw.Name == "" {
			return fmt.Errorf("firewall %d: name is required", i)
		}
		if seen[fw.Name] {
			return fmt.Errorf("firewall %s: duplicate name", fw.Name)
		}
		seen[fw.Name] = true
		if fw.Policies == "" {
			return fmt.Errorf("firewall %s: policies export path is required", fw.Name)
		}
		if fw.Routes == "" {
			return fmt.Errorf("firewall %s: routes export path is required", fw.Name)
		}
		if fw.Zones == "" {
			return fmt.Errorf("firewall %s: zones export path is required", fw.Name)
		}
	}
	return nil
}

// Load builds the firewall model from the exports this entry names.
func (f FirewallExports) Load() (*model.Firewall, error) {
	fw, err := ParseFirewallFiles(f.Policies, f.Routes, f.Zones)
	if err != nil {
		return nil, fmt.Errorf("firewall %s: %w", f.Name, err)
	}
	return fw, nil
}
