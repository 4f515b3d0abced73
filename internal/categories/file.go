package categories

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

// mappingsFile mirrors Mappings with optional sections so a file only
// overrides what it names.
type mappingsFile struct {
	CensusAge           *CategoryMap   `yaml:"census_age"`
	CensusMaritalStatus *CategoryMap   `yaml:"census_marital_status"`
	CensusEducation     *CategoryMap   `yaml:"census_education"`
	CustomerEducation   *CategoryMap   `yaml:"customer_education"`
	CustomerEmployment  *CategoryMap   `yaml:"customer_employment"`
	LocationUnknown     *UnknownPolicy `yaml:"location_unknown"`
	Income              *IncomeBands   `yaml:"income"`
}

// ParseMappings decodes YAML mapping overrides on top of DefaultMappings.
// A section that omits its attribute or policy inherits the default's.
func ParseMappings(data []byte) (Mappings, error) {
	m := DefaultMappings()

	var f mappingsFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return Mappings{}, fmt.Errorf("parsing mappings: %w", err)
	}

	override(&m.CensusAge, f.CensusAge)
	override(&m.CensusMaritalStatus, f.CensusMaritalStatus)
	override(&m.CensusEducation, f.CensusEducation)
	override(&m.CustomerEducation, f.CustomerEducation)
	override(&m.CustomerEmployment, f.CustomerEmployment)
	if f.LocationUnknown != nil {
		m.LocationUnknown = *f.LocationUnknown
	}
	if f.Income != nil {
		m.Income = *f.Income
	}

	if err := m.Validate(); err != nil {
		return Mappings{}, err
	}
	return m, nil
}

func override(dst *CategoryMap, src *CategoryMap) {
	if src == nil {
		return
	}
	if src.Attribute == "" {
		src.Attribute = dst.Attribute
	}
	if src.Unknown == "" {
		src.Unknown = dst.Unknown
	}
	*dst = *src
}

// LoadMappings reads a YAML mappings file. An empty path yields the defaults.
func LoadMappings(path string) (Mappings, error) {
	if path == "" {
		return DefaultMappings(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Mappings{}, fmt.Errorf("reading mappings file %s: %w", path, err)
	}
	m, err := ParseMappings(data)
	if err != nil {
		return Mappings{}, fmt.Errorf("mappings file %s: %w", path, err)
	}
	return m, nil
}

// MarshalMappings renders mappings as YAML.
func MarshalMappings(m Mappings) ([]byte, error) {
	data, err := yaml.MarshalWithOptions(m, yaml.Indent(2), yaml.IndentSequence(true))
	if err != nil {
		return nil, fmt.Errorf("encoding mappings: %w", err)
	}
	return data, nil
}
