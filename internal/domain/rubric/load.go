package rubric

import (
	"fmt"
	"strconv"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

// catalogFile is the on-disk YAML shape of a catalog. Rating keys are
// strings ("0".."4") so the file stays plain YAML mappings.
type catalogFile struct {
	Name              string            `koanf:"name" yaml:"name"`
	Modules           []moduleFile      `koanf:"modules" yaml:"modules"`
	SuggestedComments map[string]string `koanf:"suggested_comments" yaml:"suggested_comments"`
	RatingLabels      map[string]string `koanf:"rating_labels" yaml:"rating_labels"`
}

type moduleFile struct {
	ID       string          `koanf:"id" yaml:"id"`
	Title    string          `koanf:"title" yaml:"title"`
	Criteria []criterionFile `koanf:"criteria" yaml:"criteria"`
}

type criterionFile struct {
	ID   string `koanf:"id" yaml:"id"`
	Text string `koanf:"text" yaml:"text"`
}

// Load reads a catalog from a YAML file.
func Load(path string) (*Catalog, error) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}

	var cf catalogFile
	if err := k.UnmarshalWithConf("", &cf, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}
	return cf.build()
}

func (cf catalogFile) build() (*Catalog, error) {
	modules := make([]Module, 0, len(cf.Modules))
	for _, mf := range cf.Modules {
		m := Module{ID: mf.ID, Title: mf.Title}
		for _, crf := range mf.Criteria {
			m.Criteria = append(m.Criteria, Criterion{ID: crf.ID, Text: crf.Text})
		}
		modules = append(modules, m)
	}

	comments, err := ratingMap(cf.SuggestedComments)
	if err != nil {
		return nil, err
	}
	labels, err := ratingMap(cf.RatingLabels)
	if err != nil {
		return nil, err
	}
	return New(cf.Name, modules, comments, labels)
}

func ratingMap(in map[string]string) (map[int]string, error) {
	out := make(map[int]string, len(in))
	for k, v := range in {
		r, err := strconv.Atoi(k)
		if err != nil || r < MinRating || r > MaxRating {
			return nil, fmt.Errorf("%w: rating key %q", ErrInvalidCatalog, k)
		}
		out[r] = v
	}
	return out, nil
}

// EncodeYAML serializes a catalog in the same YAML shape Load reads.
// Used by the CLI to write the built-in catalog as a starting point for
// school-specific rubrics.
func EncodeYAML(c *Catalog) ([]byte, error) {
	cf := catalogFile{
		Name:              c.name,
		SuggestedComments: make(map[string]string, len(c.suggestedComments)),
		RatingLabels:      make(map[string]string, len(c.ratingLabels)),
	}
	for _, m := range c.modules {
		mf := moduleFile{ID: m.ID, Title: m.Title}
		for _, cr := range m.Criteria {
			mf.Criteria = append(mf.Criteria, criterionFile{ID: cr.ID, Text: cr.Text})
		}
		cf.Modules = append(cf.Modules, mf)
	}
	for r, text := range c.suggestedComments {
		cf.SuggestedComments[strconv.Itoa(r)] = text
	}
	for r, text := range c.ratingLabels {
		cf.RatingLabels[strconv.Itoa(r)] = text
	}
	return yamlv3.Marshal(cf)
}
