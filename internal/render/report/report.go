// Package report serializes an observation record as human-diffable JSON
// and decodes that same shape back. Scores are derived data and never
// part of this format.
package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/askolte/rubricform/internal/domain/model"
	"github.com/askolte/rubricform/internal/domain/rubric"
	"github.com/askolte/rubricform/internal/render"
)

type recordJSON struct {
	ID           string     `json:"id"`
	Date         string     `json:"date"`
	Colleague    string     `json:"colleague"`
	Subject      string     `json:"subject"`
	Grade        string     `json:"grade"`
	Topic        string     `json:"topic"`
	Observer     string     `json:"observer"`
	School       string     `json:"school"`
	ProfileFocus []string   `json:"profile_focus"`
	Weights      orderedMap `json:"weights"`
	Modules      orderedMap `json:"modules"`
	Strengths    string     `json:"strengths"`
	NextSteps    string     `json:"next_steps"`
}

type moduleJSON struct {
	Title    string     `json:"title"`
	Criteria orderedMap `json:"criteria"`
}

type criterionJSON struct {
	Text    string `json:"text"`
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// orderedMap marshals as a JSON object whose keys appear in insertion
// order. Plain Go maps would serialize with lexically sorted keys, which
// does not match catalog order for arbitrary rubrics.
type orderedMap struct {
	keys []string
	vals map[string]interface{}
}

func newOrderedMap() orderedMap {
	return orderedMap{vals: make(map[string]interface{})}
}

func (m *orderedMap) set(key string, val interface{}) {
	if _, ok := m.vals[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.vals[key] = val
}

func (m orderedMap) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range m.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		vb, err := json.Marshal(m.vals[k])
		if err != nil {
			return nil, err
		}
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Marshal serializes the full record, catalog-ordered, as indented UTF-8
// JSON. Criterion texts and module titles are catalog-owned and written
// from the catalog, so a decode-then-re-encode cycle is byte-stable.
func Marshal(cat *rubric.Catalog, rec *model.ObservationRecord) ([]byte, error) {
	if err := render.Validate(cat, rec); err != nil {
		return nil, err
	}

	out := recordJSON{
		ID:           rec.ID,
		Date:         rec.Date,
		Colleague:    rec.Colleague,
		Subject:      rec.Subject,
		Grade:        rec.Grade,
		Topic:        rec.Topic,
		Observer:     rec.Observer,
		School:       rec.School,
		ProfileFocus: rec.ProfileFocus,
		Weights:      orderedWeights(cat, rec.Weights),
		Modules:      newOrderedMap(),
		Strengths:    rec.Strengths,
		NextSteps:    rec.NextSteps,
	}
	if out.ProfileFocus == nil {
		out.ProfileFocus = []string{}
	}

	for _, mk := range cat.ModuleIDs() {
		mod, ok := rec.Modules[mk]
		if !ok {
			continue
		}
		title, err := cat.Title(mk)
		if err != nil {
			return nil, err
		}
		crits, err := cat.Criteria(mk)
		if err != nil {
			return nil, err
		}

		mj := moduleJSON{Title: title, Criteria: newOrderedMap()}
		for _, c := range crits {
			cj := criterionJSON{Text: c.Text}
			if cr := mod.Criteria[c.ID]; cr != nil {
				cj.Rating = cr.Rating
				cj.Comment = cr.Comment
			}
			mj.Criteria.set(c.ID, cj)
		}
		out.Modules.set(mk, mj)
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode record: %w", err)
	}
	return data, nil
}

// orderedWeights lists catalog modules first, in catalog order, then any
// remaining weight keys sorted for determinism.
func orderedWeights(cat *rubric.Catalog, weights map[string]float64) orderedMap {
	om := newOrderedMap()
	for _, mk := range cat.ModuleIDs() {
		if w, ok := weights[mk]; ok {
			om.set(mk, w)
		}
	}
	extras := make([]string, 0)
	for mk := range weights {
		if !cat.Has(mk) {
			extras = append(extras, mk)
		}
	}
	sort.Strings(extras)
	for _, mk := range extras {
		om.set(mk, weights[mk])
	}
	return om
}

// recordFile is the decode shape. Titles and criterion texts are dropped
// on decode; the catalog owns them.
type recordFile struct {
	ID           string             `json:"id"`
	Date         string             `json:"date"`
	Colleague    string             `json:"colleague"`
	Subject      string             `json:"subject"`
	Grade        string             `json:"grade"`
	Topic        string             `json:"topic"`
	Observer     string             `json:"observer"`
	School       string             `json:"school"`
	ProfileFocus []string           `json:"profile_focus"`
	Weights      map[string]float64 `json:"weights"`
	Modules      map[string]struct {
		Title    string `json:"title"`
		Criteria map[string]struct {
			Text    string `json:"text"`
			Rating  int    `json:"rating"`
			Comment string `json:"comment"`
		} `json:"criteria"`
	} `json:"modules"`
	Strengths string `json:"strengths"`
	NextSteps string `json:"next_steps"`
}

// Unmarshal decodes report JSON back into a record.
func Unmarshal(data []byte) (*model.ObservationRecord, error) {
	var rf recordFile
	if err := json.Unmarshal(data, &rf); err != nil {
		return nil, fmt.Errorf("decode record: %w", err)
	}

	rec := &model.ObservationRecord{
		ID:           rf.ID,
		Date:         rf.Date,
		Colleague:    rf.Colleague,
		Subject:      rf.Subject,
		Grade:        rf.Grade,
		Topic:        rf.Topic,
		Observer:     rf.Observer,
		School:       rf.School,
		ProfileFocus: rf.ProfileFocus,
		Weights:      rf.Weights,
		Modules:      make(map[string]*model.ModuleResult, len(rf.Modules)),
		Strengths:    rf.Strengths,
		NextSteps:    rf.NextSteps,
	}
	if rec.Weights == nil {
		rec.Weights = make(map[string]float64)
	}

	for mk, mf := range rf.Modules {
		mod := &model.ModuleResult{
			ModuleKey: mk,
			Criteria:  make(map[string]*model.CriterionResult, len(mf.Criteria)),
		}
		for ck, cf := range mf.Criteria {
			mod.Criteria[ck] = &model.CriterionResult{Rating: cf.Rating, Comment: cf.Comment}
		}
		rec.Modules[mk] = mod
	}
	return rec, nil
}
