// internal/catalog/locations.go
package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"career-workers/internal/models"
)

//go:embed data/locations.json
var embeddedLocations []byte

// NoLocalOpportunities is returned by NearbyForState for unknown states.
const NoLocalOpportunities = "Local opportunities available"

const maxNearbyDistricts = 5

type locationsDocument struct {
	Version string             `json:"version"`
	States  []models.StateData `json:"states"`
}

// Locations is the read-only state, district and municipality hierarchy.
// Lookups are case-insensitive on state name or state code.
type Locations struct {
	states []models.StateData
	index  map[string]int
}

func ParseLocations(data []byte) (*Locations, error) {
	result, err := locationsSchema.ValidateBytes(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	if !result.Valid {
		return nil, fmt.Errorf("%w: %s", ErrInvalidDocument, result.Error())
	}

	var doc locationsDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}

	l := &Locations{
		states: doc.States,
		index:  make(map[string]int, len(doc.States)*2),
	}
	for i, s := range doc.States {
		for _, key := range []string{normalize(s.Name), normalize(s.Code)} {
			if _, dup := l.index[key]; dup {
				return nil, fmt.Errorf("%w: duplicate state key %q", ErrInvalidDocument, key)
			}
			l.index[key] = i
		}
	}
	return l, nil
}

func LoadEmbeddedLocations() (*Locations, error) {
	return ParseLocations(embeddedLocations)
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// State finds a state by name or code.
func (l *Locations) State(nameOrCode string) (*models.StateData, bool) {
	i, ok := l.index[normalize(nameOrCode)]
	if !ok {
		return nil, false
	}
	return &l.states[i], true
}

// States returns the state names in document order.
func (l *Locations) States() []string {
	out := make([]string, len(l.states))
	for i, s := range l.states {
		out[i] = s.Name
	}
	return out
}

// Districts returns the district names of a state, empty when unknown.
func (l *Locations) Districts(state string) []string {
	s, ok := l.State(state)
	if !ok {
		return []string{}
	}
	out := make([]string, len(s.Districts))
	for i, d := range s.Districts {
		out[i] = d.Name
	}
	return out
}

// Municipalities returns the municipalities of a district, empty when the
// state or district is unknown.
func (l *Locations) Municipalities(state, district string) []models.Municipality {
	s, ok := l.State(state)
	if !ok {
		return []models.Municipality{}
	}
	for _, d := range s.Districts {
		if strings.EqualFold(d.Name, strings.TrimSpace(district)) {
			out := make([]models.Municipality, len(d.Municipalities))
			copy(out, d.Municipalities)
			return out
		}
	}
	return []models.Municipality{}
}

// NearbyForState returns up to five district names of the state.
func (l *Locations) NearbyForState(state string) []string {
	districts := l.Districts(state)
	if len(districts) == 0 {
		return []string{NoLocalOpportunities}
	}
	if len(districts) > maxNearbyDistricts {
		districts = districts[:maxNearbyDistricts]
	}
	return districts
}
