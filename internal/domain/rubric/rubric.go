// Package rubric holds the observation rubric catalog: modules, their
// criteria, and the rating scale texts. The catalog is reference data,
// loaded once and immutable afterwards.
package rubric

import "fmt"

// Rating scale bounds. The scale itself (0..4) is fixed; the texts
// attached to each step come from catalog data.
const (
	MinRating = 0
	MaxRating = 4
)

// Criterion is a single scorable rubric statement.
type Criterion struct {
	ID   string
	Text string
}

// Module is a top-level rubric dimension grouping several criteria.
type Module struct {
	ID       string
	Title    string
	Criteria []Criterion
}

// Catalog is the immutable rubric reference data. Build one with New or
// Default, or load one from YAML with Load.
type Catalog struct {
	name              string
	modules           []Module
	index             map[string]int
	suggestedComments map[int]string
	ratingLabels      map[int]string
}

// New builds a Catalog from the given data and validates it.
func New(name string, modules []Module, suggestedComments, ratingLabels map[int]string) (*Catalog, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: name must not be empty", ErrInvalidCatalog)
	}
	if len(modules) == 0 {
		return nil, fmt.Errorf("%w: at least one module required", ErrInvalidCatalog)
	}

	index := make(map[string]int, len(modules))
	for i, m := range modules {
		if m.ID == "" || m.Title == "" {
			return nil, fmt.Errorf("%w: module %q needs id and title", ErrInvalidCatalog, m.ID)
		}
		if _, dup := index[m.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate module id %q", ErrInvalidCatalog, m.ID)
		}
		if len(m.Criteria) == 0 {
			return nil, fmt.Errorf("%w: module %q has no criteria", ErrInvalidCatalog, m.ID)
		}
		seen := make(map[string]struct{}, len(m.Criteria))
		for _, c := range m.Criteria {
			if c.ID == "" || c.Text == "" {
				return nil, fmt.Errorf("%w: module %q has a criterion without id or text", ErrInvalidCatalog, m.ID)
			}
			if _, dup := seen[c.ID]; dup {
				return nil, fmt.Errorf("%w: duplicate criterion id %q in module %q", ErrInvalidCatalog, c.ID, m.ID)
			}
			seen[c.ID] = struct{}{}
		}
		index[m.ID] = i
	}

	return &Catalog{
		name:              name,
		modules:           copyModules(modules),
		index:             index,
		suggestedComments: copyIntMap(suggestedComments),
		ratingLabels:      copyIntMap(ratingLabels),
	}, nil
}

// Name returns the catalog's display name, used as the report title.
func (c *Catalog) Name() string { return c.name }

// ModuleIDs returns module identifiers in catalog order.
func (c *Catalog) ModuleIDs() []string {
	ids := make([]string, len(c.modules))
	for i, m := range c.modules {
		ids[i] = m.ID
	}
	return ids
}

// Has reports whether the catalog defines the given module.
func (c *Catalog) Has(moduleID string) bool {
	_, ok := c.index[moduleID]
	return ok
}

// Title returns the module's display title.
func (c *Catalog) Title(moduleID string) (string, error) {
	i, ok := c.index[moduleID]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrNotFound, moduleID)
	}
	return c.modules[i].Title, nil
}

// Criteria returns the module's criteria in catalog order.
func (c *Catalog) Criteria(moduleID string) ([]Criterion, error) {
	i, ok := c.index[moduleID]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, moduleID)
	}
	out := make([]Criterion, len(c.modules[i].Criteria))
	copy(out, c.modules[i].Criteria)
	return out, nil
}

// CriterionText returns the text of a single criterion.
func (c *Catalog) CriterionText(moduleID, criterionID string) (string, error) {
	crits, err := c.Criteria(moduleID)
	if err != nil {
		return "", err
	}
	for _, cr := range crits {
		if cr.ID == criterionID {
			return cr.Text, nil
		}
	}
	return "", fmt.Errorf("%w: criterion %q in module %q", ErrNotFound, criterionID, moduleID)
}

// SuggestedComment returns the canned comment for a rating step.
func (c *Catalog) SuggestedComment(rating int) (string, error) {
	if rating < MinRating || rating > MaxRating {
		return "", fmt.Errorf("%w: %d", ErrInvalidRating, rating)
	}
	return c.suggestedComments[rating], nil
}

// RatingLabel returns the scale label for a rating step.
func (c *Catalog) RatingLabel(rating int) (string, error) {
	if rating < MinRating || rating > MaxRating {
		return "", fmt.Errorf("%w: %d", ErrInvalidRating, rating)
	}
	return c.ratingLabels[rating], nil
}

func copyModules(in []Module) []Module {
	out := make([]Module, len(in))
	for i, m := range in {
		crits := make([]Criterion, len(m.Criteria))
		copy(crits, m.Criteria)
		m.Criteria = crits
		out[i] = m
	}
	return out
}

func copyIntMap(in map[int]string) map[int]string {
	out := make(map[int]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
