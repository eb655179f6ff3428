package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Document is the on-disk catalog format. Deployments describe their
// procedures and resources in one YAML file and load it at startup; the
// engine itself never touches the filesystem.
type Document struct {
	Procedures []ProcedureDefinition `yaml:"procedures"`
	Staff      []StaffResource       `yaml:"staff"`
	Equipment  []EquipmentResource   `yaml:"equipment"`
	Rooms      []RoomResource        `yaml:"rooms"`
}

// LoadDocument reads and validates a catalog document, returning the
// constructed catalog and registry.
func LoadDocument(path string) (*Catalog, *Registry, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read catalog document: %w", err)
	}

	var doc Document
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, nil, fmt.Errorf("parse catalog document: %w", err)
	}

	cat, err := NewCatalog(doc.Procedures)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid catalog: %w", err)
	}
	reg, err := NewRegistry(doc.Staff, doc.Equipment, doc.Rooms)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid registry: %w", err)
	}
	return cat, reg, nil
}
