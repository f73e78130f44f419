// Package mapping provides the source-type to target-kind mapping used when
// searching for reconciliation candidates, loaded from a YAML file.
package mapping

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// SourceMapping describes one source type: the target kinds searched for
// matches and the Spanish label shown for the type.
type SourceMapping struct {
	Type    string   `yaml:"type"`
	Label   string   `yaml:"label"`
	Targets []string `yaml:"targets"`
}

// Config is the complete mapping configuration.
type Config struct {
	Sources []SourceMapping `yaml:"sources"`
}

// Mapper resolves target kinds and labels for source types.
type Mapper struct {
	byType map[string]SourceMapping
}

// NewMapper creates a Mapper from a YAML configuration file.
func NewMapper(configPath string) (*Mapper, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	return newMapper(config), nil
}

// Default returns a Mapper with the built-in mapping, used when no file is
// configured.
func Default() *Mapper {
	return newMapper(Config{
		Sources: []SourceMapping{
			{Type: "bank", Label: "Movimiento bancario", Targets: []string{"sales", "purchase", "expense"}},
			{Type: "purchase", Label: "Factura de compra", Targets: []string{"bank"}},
			{Type: "sales", Label: "Factura de venta", Targets: []string{"bank"}},
			{Type: "expense", Label: "Gasto", Targets: []string{"bank"}},
			{Type: "tax", Label: "Impuesto", Targets: []string{"bank"}},
			{Type: "payroll", Label: "Remuneraciones", Targets: []string{"bank"}},
		},
	})
}

func newMapper(config Config) *Mapper {
	m := &Mapper{byType: make(map[string]SourceMapping, len(config.Sources))}
	for _, s := range config.Sources {
		m.byType[s.Type] = s
	}
	return m
}

// TargetsFor returns the target kinds searched for a source type. Returns
// nil for unknown types.
func (m *Mapper) TargetsFor(sourceType string) []string {
	return m.byType[sourceType].Targets
}

// LabelFor returns the display label for a source type, with the type
// itself as fallback.
func (m *Mapper) LabelFor(sourceType string) string {
	if s, ok := m.byType[sourceType]; ok && s.Label != "" {
		return s.Label
	}
	return sourceType
}

// HasType checks whether a source type is known to the mapping.
func (m *Mapper) HasType(sourceType string) bool {
	_, ok := m.byType[sourceType]
	return ok
}

// Types returns all configured source types.
func (m *Mapper) Types() []string {
	types := make([]string, 0, len(m.byType))
	for t := range m.byType {
		types = append(types, t)
	}
	return types
}
