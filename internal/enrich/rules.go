package enrich

import (
	"embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed config/rules.yaml
var rulesYAML embed.FS

// Rules drives contact extraction: which link hosts count as social profiles
// and which path fragments advertise a contact page.
type Rules struct {
	ContactPaths []string `yaml:"contact_paths"`
	SocialHosts  struct {
		Facebook  []string `yaml:"facebook"`
		Instagram []string `yaml:"instagram"`
		LinkedIn  []string `yaml:"linkedin"`
	} `yaml:"social_hosts"`
}

// LoadRules reads the embedded rules.yaml.
func LoadRules() (*Rules, error) {
	data, err := rulesYAML.ReadFile("config/rules.yaml")
	if err != nil {
		return nil, fmt.Errorf("read embedded rules: %w", err)
	}

	var rules Rules
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return nil, fmt.Errorf("parse rules.yaml: %w", err)
	}
	return &rules, nil
}
