// Package categories aligns the census and customer category vocabularies.
//
// Every rewrite is driven by data: a CategoryMap holds the old-to-new value
// table for one attribute together with an UnknownPolicy saying what happens
// to values the table does not list. Nothing here fails on unmapped input;
// the policy decides whether such values pass through, become Unknown, or
// become missing.
package categories

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// UnknownPolicy controls how a CategoryMap treats values it does not list.
type UnknownPolicy string

const (
	// PolicyPassThrough keeps unmapped values unchanged.
	PolicyPassThrough UnknownPolicy = "pass_through"
	// PolicySentinel replaces unmapped values with Unknown.
	PolicySentinel UnknownPolicy = "unknown"
	// PolicyMissing replaces unmapped values with the empty (missing) value.
	PolicyMissing UnknownPolicy = "missing"
)

// Mapping errors.
var (
	ErrInvalidPolicy  = errors.New("invalid unknown policy")
	ErrInvalidMapping = errors.New("invalid category mapping")
	ErrInvalidBands   = errors.New("invalid income bands")
)

// Valid reports whether p is a known policy.
func (p UnknownPolicy) Valid() bool {
	switch p {
	case PolicyPassThrough, PolicySentinel, PolicyMissing:
		return true
	default:
		return false
	}
}

// resolve applies the policy to an unmapped value.
func (p UnknownPolicy) resolve(value string) string {
	switch p {
	case PolicySentinel:
		return Unknown
	case PolicyMissing:
		return ""
	default:
		return value
	}
}

// CategoryMap rewrites the values of one attribute.
type CategoryMap struct {
	Values    map[string]string `yaml:"values"`
	Attribute string            `yaml:"attribute"`
	Unknown   UnknownPolicy     `yaml:"unknown"`
}

// Apply maps a single value.
func (m CategoryMap) Apply(value string) string {
	if to, ok := m.Values[value]; ok {
		return to
	}
	return m.Unknown.resolve(value)
}

// Contains reports whether the map lists value explicitly.
func (m CategoryMap) Contains(value string) bool {
	_, ok := m.Values[value]
	return ok
}

// Targets returns the distinct values the map can produce from listed inputs.
func (m CategoryMap) Targets() []string {
	seen := make(map[string]struct{}, len(m.Values))
	out := make([]string, 0, len(m.Values))
	for _, to := range m.Values {
		if _, ok := seen[to]; ok {
			continue
		}
		seen[to] = struct{}{}
		out = append(out, to)
	}
	return out
}

// Validate checks the policy and that no value maps to an empty target.
func (m CategoryMap) Validate() error {
	if !m.Unknown.Valid() {
		return fmt.Errorf("%w: %s: %q", ErrInvalidPolicy, m.Attribute, m.Unknown)
	}
	for from, to := range m.Values {
		if strings.TrimSpace(to) == "" {
			return fmt.Errorf("%w: %s: %q maps to an empty value", ErrInvalidMapping, m.Attribute, from)
		}
	}
	return nil
}

// IncomeBands buckets a numeric income into labeled bands.
// Edges are the lower bounds of each band in ascending order. Each band is
// right-open and the last band is unbounded. The lower bound of the first
// band is itself excluded, so an income of exactly Edges[0] is unbinned.
type IncomeBands struct {
	Edges  []float64 `yaml:"edges"`
	Labels []string  `yaml:"labels"`
}

// Band returns the label for v, or "" when v is missing or not above the
// first edge.
func (b IncomeBands) Band(v float64) string {
	if math.IsNaN(v) || len(b.Edges) == 0 || v <= b.Edges[0] {
		return ""
	}
	for i := len(b.Edges) - 1; i >= 0; i-- {
		if v >= b.Edges[i] {
			return b.Labels[i]
		}
	}
	// Only reachable for a malformed first edge.
	return b.Labels[0]
}

// Validate checks that edges ascend strictly and match the labels one to one.
func (b IncomeBands) Validate() error {
	if len(b.Edges) == 0 {
		return fmt.Errorf("%w: no edges", ErrInvalidBands)
	}
	if len(b.Edges) != len(b.Labels) {
		return fmt.Errorf("%w: %d edges for %d labels", ErrInvalidBands, len(b.Edges), len(b.Labels))
	}
	for i := 1; i < len(b.Edges); i++ {
		if !(b.Edges[i] > b.Edges[i-1]) {
			return fmt.Errorf("%w: edge %v does not exceed %v", ErrInvalidBands, b.Edges[i], b.Edges[i-1])
		}
	}
	for _, l := range b.Labels {
		if strings.TrimSpace(l) == "" {
			return fmt.Errorf("%w: empty label", ErrInvalidBands)
		}
	}
	return nil
}

// Mappings is the complete static configuration for one normalization pass.
type Mappings struct {
	CensusAge           CategoryMap   `yaml:"census_age"`
	CensusMaritalStatus CategoryMap   `yaml:"census_marital_status"`
	CensusEducation     CategoryMap   `yaml:"census_education"`
	CustomerEducation   CategoryMap   `yaml:"customer_education"`
	CustomerEmployment  CategoryMap   `yaml:"customer_employment"`
	LocationUnknown     UnknownPolicy `yaml:"location_unknown"`
	Income              IncomeBands   `yaml:"income"`
}

// Maps returns the category maps keyed by the attribute they rewrite,
// prefixed with the table they apply to.
func (m Mappings) Maps() map[string]CategoryMap {
	return map[string]CategoryMap{
		"census." + m.CensusAge.Attribute:             m.CensusAge,
		"census." + m.CensusMaritalStatus.Attribute:   m.CensusMaritalStatus,
		"census." + m.CensusEducation.Attribute:       m.CensusEducation,
		"customer." + m.CustomerEducation.Attribute:   m.CustomerEducation,
		"customer." + m.CustomerEmployment.Attribute: m.CustomerEmployment,
	}
}

// Validate checks every map, the location policy and the income bands.
func (m Mappings) Validate() error {
	for _, cm := range []CategoryMap{m.CensusAge, m.CensusMaritalStatus, m.CensusEducation, m.CustomerEducation, m.CustomerEmployment} {
		if err := cm.Validate(); err != nil {
			return err
		}
	}
	if !m.LocationUnknown.Valid() {
		return fmt.Errorf("%w: location: %q", ErrInvalidPolicy, m.LocationUnknown)
	}
	return m.Income.Validate()
}
