// Package model contains the domain records passed between layers.
package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/askolte/rubricform/internal/domain/rubric"
)

// CriterionResult holds the observer's verdict on one rubric criterion.
// The zero value (rating 0, empty comment) is the initial state.
type CriterionResult struct {
	Rating  int
	Comment string
}

// ModuleResult holds the results for every criterion of one module. The
// criterion set always equals the catalog's set for that module.
type ModuleResult struct {
	ModuleKey string
	Criteria  map[string]*CriterionResult
}

// ObservationRecord is a fully owned, in-memory observation. It is built
// once per session by the caller, mutated in place while the observer
// enters data, and handed to the scoring and render layers as-is.
type ObservationRecord struct {
	ID        string
	Date      string // YYYY-MM-DD
	Colleague string
	Subject   string
	Grade     string
	Topic     string
	Observer  string
	School    string

	Modules   map[string]*ModuleResult
	Strengths string
	NextSteps string

	ProfileFocus []string
	Weights      map[string]float64
}

// New builds a record for the given focus modules with one zero
// CriterionResult per catalog criterion. An empty focus selects every
// catalog module. Unknown focus modules fail with rubric.ErrNotFound.
func New(cat *rubric.Catalog, focus []string) (*ObservationRecord, error) {
	if len(focus) == 0 {
		focus = cat.ModuleIDs()
	}

	rec := &ObservationRecord{
		ID:           uuid.NewString(),
		Date:         time.Now().Format("2006-01-02"),
		Modules:      make(map[string]*ModuleResult, len(focus)),
		ProfileFocus: append([]string(nil), focus...),
		Weights:      make(map[string]float64),
	}

	for _, mk := range focus {
		crits, err := cat.Criteria(mk)
		if err != nil {
			return nil, fmt.Errorf("build record: %w", err)
		}
		mod := &ModuleResult{ModuleKey: mk, Criteria: make(map[string]*CriterionResult, len(crits))}
		for _, c := range crits {
			mod.Criteria[c.ID] = &CriterionResult{}
		}
		rec.Modules[mk] = mod
	}
	return rec, nil
}

// SetRating records a rating for one criterion of one module.
func (r *ObservationRecord) SetRating(moduleID, criterionID string, rating int) error {
	cr, err := r.criterion(moduleID, criterionID)
	if err != nil {
		return err
	}
	if rating < rubric.MinRating || rating > rubric.MaxRating {
		return fmt.Errorf("%w: %d", rubric.ErrInvalidRating, rating)
	}
	cr.Rating = rating
	return nil
}

// SetComment records a comment for one criterion of one module.
func (r *ObservationRecord) SetComment(moduleID, criterionID, comment string) error {
	cr, err := r.criterion(moduleID, criterionID)
	if err != nil {
		return err
	}
	cr.Comment = comment
	return nil
}

func (r *ObservationRecord) criterion(moduleID, criterionID string) (*CriterionResult, error) {
	mod, ok := r.Modules[moduleID]
	if !ok {
		return nil, fmt.Errorf("%w: %q", rubric.ErrNotFound, moduleID)
	}
	cr, ok := mod.Criteria[criterionID]
	if !ok {
		return nil, fmt.Errorf("%w: criterion %q in module %q", rubric.ErrNotFound, criterionID, moduleID)
	}
	return cr, nil
}
