// Package render holds the layout shared by the three report serializers:
// record validation, traversal order, labels, and score formatting. The
// serializers themselves live in the docx, pdf and report subpackages.
package render

import (
	"fmt"
	"strings"

	"github.com/askolte/rubricform/internal/domain/model"
	"github.com/askolte/rubricform/internal/domain/rubric"
)

// Section labels shared by the document and PDF renderers.
const (
	LabelDate         = "Date:"
	LabelColleague    = "Colleague:"
	LabelObserver     = "Observer:"
	LabelSubjectLine  = "Subject/Class/Topic:"
	LabelSchool       = "School:"
	LabelProfileFocus = "Profile focus:"
	LabelCriterion    = "Criterion"
	LabelRating       = "Rating (0–4)"
	LabelComment      = "Comment"
	HeadingStrengths  = "Strengths"
	HeadingNextSteps  = "Next steps (concrete, scheduled)"
	HeadingSummary    = "Summary (scores)"
	LabelOverall      = "Overall (weighted):"

	// Placeholder emitted for empty free-text sections.
	EmptyText = "-"
)

// Validate checks that every module in the record exists in the catalog.
func Validate(cat *rubric.Catalog, rec *model.ObservationRecord) error {
	for mk := range rec.Modules {
		if !cat.Has(mk) {
			return fmt.Errorf("%w: %q", ErrInvalidRecord, mk)
		}
	}
	return nil
}

// ModuleOrder returns the record's modules in render order: the profile
// focus order first (restricted to modules actually present), then any
// remaining modules in catalog order.
func ModuleOrder(cat *rubric.Catalog, rec *model.ObservationRecord) []string {
	order := make([]string, 0, len(rec.Modules))
	seen := make(map[string]struct{}, len(rec.Modules))

	for _, mk := range rec.ProfileFocus {
		if _, ok := rec.Modules[mk]; !ok {
			continue
		}
		if _, dup := seen[mk]; dup {
			continue
		}
		order = append(order, mk)
		seen[mk] = struct{}{}
	}
	for _, mk := range cat.ModuleIDs() {
		if _, ok := rec.Modules[mk]; !ok {
			continue
		}
		if _, dup := seen[mk]; dup {
			continue
		}
		order = append(order, mk)
		seen[mk] = struct{}{}
	}
	return order
}

// ModuleHeading builds the "M1 – Title" section heading.
func ModuleHeading(cat *rubric.Catalog, moduleID string) (string, error) {
	title, err := cat.Title(moduleID)
	if err != nil {
		return "", err
	}
	return moduleID + " – " + title, nil
}

// FormatScore renders a score rounded to two decimals, suffixed "/ 4".
func FormatScore(score float64) string {
	return fmt.Sprintf("%.2f / 4", score)
}

// MetaSubjectLine joins subject, grade and topic for the metadata block.
func MetaSubjectLine(rec *model.ObservationRecord) string {
	return rec.Subject + " / " + rec.Grade + " / " + rec.Topic
}

// FocusLine joins the profile focus for the metadata block.
func FocusLine(rec *model.ObservationRecord) string {
	return strings.Join(rec.ProfileFocus, ", ")
}

// TextOrDash substitutes the placeholder for empty free-text sections.
func TextOrDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return EmptyText
	}
	return s
}
