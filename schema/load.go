package schema

import (
	"fmt"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// catalogFile is the on-disk shape of a schema catalog.
type catalogFile struct {
	Name   string  `koanf:"name"`
	Tables []Table `koanf:"tables"`
}

// LoadFile reads a catalog from a YAML file and builds a registry.
// Used when a deployment ships its own cube definition instead of the
// builtin VitalFlux catalog.
func LoadFile(path string) (*Registry, error) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("load schema catalog: %w", err)
	}

	var cat catalogFile
	if err := k.Unmarshal("", &cat); err != nil {
		return nil, fmt.Errorf("parse schema catalog: %w", err)
	}

	if cat.Name == "" {
		return nil, fmt.Errorf("schema catalog %s: missing datasource name", path)
	}
	if len(cat.Tables) == 0 {
		return nil, fmt.Errorf("schema catalog %s: no tables defined", path)
	}
	for _, t := range cat.Tables {
		if t.Name == "" {
			return nil, fmt.Errorf("schema catalog %s: table with empty name", path)
		}
		for _, f := range t.Fields {
			switch f.Kind {
			case KindText, KindNumeric, KindDate:
			default:
				return nil, fmt.Errorf("schema catalog %s: field %s.%s has unknown kind %q",
					path, t.Name, f.Name, f.Kind)
			}
		}
	}

	return NewRegistry(cat.Name, cat.Tables), nil
}
