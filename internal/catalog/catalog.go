// internal/catalog/catalog.go
package catalog

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"

	"career-workers/internal/models"
)

//go:embed data/careers.json
var embeddedCareers []byte

var ErrInvalidDocument = errors.New("CATALOG_INVALID")

type document struct {
	Version string          `json:"version"`
	Careers []models.Career `json:"careers"`
}

// Catalog is the immutable career list shared by every request.
type Catalog struct {
	version string
	careers []models.Career
	byID    map[string]int
}

// New builds a catalog from already decoded careers. Each career is validated
// and ids must be unique. Order is preserved.
func New(version string, careers []models.Career) (*Catalog, error) {
	c := &Catalog{
		version: version,
		careers: make([]models.Career, len(careers)),
		byID:    make(map[string]int, len(careers)),
	}
	copy(c.careers, careers)

	var errs []error
	for i := range c.careers {
		career := &c.careers[i]
		if err := career.Validate(); err != nil {
			errs = append(errs, err)
			continue
		}
		if _, dup := c.byID[career.ID]; dup {
			errs = append(errs, fmt.Errorf("duplicate career id %q", career.ID))
			continue
		}
		c.byID[career.ID] = i
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDocument, errors.Join(errs...))
	}
	return c, nil
}

// Parse validates a careers document against the schema and decodes it.
func Parse(data []byte) (*Catalog, error) {
	result, err := careersSchema.ValidateBytes(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	if !result.Valid {
		return nil, fmt.Errorf("%w: %s", ErrInvalidDocument, result.Error())
	}

	var doc document
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	return New(doc.Version, doc.Careers)
}

// LoadEmbedded parses the catalog compiled into the binary.
func LoadEmbedded() (*Catalog, error) {
	return Parse(embeddedCareers)
}

// EmbeddedDocument returns the raw embedded careers document.
func EmbeddedDocument() []byte {
	out := make([]byte, len(embeddedCareers))
	copy(out, embeddedCareers)
	return out
}

func (c *Catalog) Version() string { return c.version }

func (c *Catalog) Len() int { return len(c.careers) }

// Careers returns the careers in catalog order. The slice is a copy; the
// careers themselves must not be modified.
func (c *Catalog) Careers() []models.Career {
	out := make([]models.Career, len(c.careers))
	copy(out, c.careers)
	return out
}

// Get returns the career with the given id.
func (c *Catalog) Get(id string) (*models.Career, bool) {
	i, ok := c.byID[id]
	if !ok {
		return nil, false
	}
	return &c.careers[i], true
}

// Roadmap returns the roadmap steps of a career, or an empty slice when the
// id is unknown.
func (c *Catalog) Roadmap(id string) []models.RoadmapStep {
	career, ok := c.Get(id)
	if !ok {
		return []models.RoadmapStep{}
	}
	out := make([]models.RoadmapStep, len(career.Roadmap))
	copy(out, career.Roadmap)
	return out
}
