// Package service ties the catalog, the score aggregator and the three
// report renderers together behind one facade for the CLI.
package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/askolte/rubricform/internal/domain/model"
	"github.com/askolte/rubricform/internal/domain/rubric"
	"github.com/askolte/rubricform/internal/domain/scoring"
	"github.com/askolte/rubricform/internal/render"
	"github.com/askolte/rubricform/internal/render/docx"
	"github.com/askolte/rubricform/internal/render/pdf"
	"github.com/askolte/rubricform/internal/render/report"
	"github.com/askolte/rubricform/pkg/logger"
	"github.com/askolte/rubricform/pkg/metrics"
)

// Format selects one of the report serializers.
type Format string

// Export formats.
const (
	FormatDOCX Format = "docx"
	FormatPDF  Format = "pdf"
	FormatJSON Format = "json"
)

// Formats lists every export format in canonical order.
func Formats() []Format {
	return []Format{FormatDOCX, FormatPDF, FormatJSON}
}

const defaultFilenamePrefix = "Observation"

// Service renders observation records. It holds only immutable
// configuration; every call owns its working buffers, so one Service can
// serve concurrent renders.
type Service struct {
	catalog *rubric.Catalog
	agg     *scoring.Aggregator
	docx    *docx.Renderer
	pdf     *pdf.Renderer
	prefix  string
	log     logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithCatalog replaces the built-in rubric catalog.
func WithCatalog(cat *rubric.Catalog) Option {
	return func(s *Service) {
		if cat != nil {
			s.catalog = cat
		}
	}
}

// WithLogger sets the logger instance.
func WithLogger(log logger.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// WithDefaultWeight sets the weight for modules without an explicit one.
func WithDefaultWeight(w float64) Option {
	return func(s *Service) {
		s.agg = scoring.New(scoring.WithDefaultWeight(w))
	}
}

// WithFontPath sets the TTF font the PDF renderer embeds when available.
func WithFontPath(path string) Option {
	return func(s *Service) {
		s.pdf = pdf.New(pdf.WithFontPath(path))
	}
}

// WithFilenamePrefix sets the prefix of suggested export filenames.
func WithFilenamePrefix(prefix string) Option {
	return func(s *Service) {
		if prefix != "" {
			s.prefix = prefix
		}
	}
}

// New creates a Service with configuration options.
func New(opts ...Option) *Service {
	s := &Service{
		catalog: rubric.Default(),
		agg:     scoring.New(),
		docx:    docx.New(),
		pdf:     pdf.New(),
		prefix:  defaultFilenamePrefix,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Catalog returns the rubric catalog in use.
func (s *Service) Catalog() *rubric.Catalog { return s.catalog }

// Scores validates the record and computes its score summary.
func (s *Service) Scores(ctx context.Context, rec *model.ObservationRecord) (scoring.Summary, error) {
	if err := render.Validate(s.catalog, rec); err != nil {
		return scoring.Summary{}, err
	}
	sum := s.agg.Compute(rec)
	metrics.RecordScoreComputation()
	if s.log != nil {
		s.log.Debug(ctx, "scores computed",
			logger.Int("modules", len(sum.PerModule)),
			logger.Float64("overall", sum.Overall))
	}
	return sum, nil
}

// Export renders the record in the requested format.
func (s *Service) Export(ctx context.Context, rec *model.ObservationRecord, format Format) ([]byte, error) {
	sum, err := s.Scores(ctx, rec)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	var out []byte
	switch format {
	case FormatDOCX:
		out, err = s.docx.Render(s.catalog, rec, sum)
	case FormatPDF:
		out, err = s.pdf.Render(s.catalog, rec, sum)
	case FormatJSON:
		out, err = report.Marshal(s.catalog, rec)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	if err != nil {
		metrics.RecordRenderError(string(format))
		if s.log != nil {
			s.log.Error(ctx, "render failed", logger.String("format", string(format)), logger.Error(err))
		}
		return nil, err
	}

	metrics.RecordRender(string(format), float64(time.Since(start).Milliseconds()))
	if s.log != nil {
		s.log.Info(ctx, "render finished",
			logger.String("format", string(format)),
			logger.Int("bytes", len(out)))
	}
	return out, nil
}

// ExportAll renders the record in every format.
func (s *Service) ExportAll(ctx context.Context, rec *model.ObservationRecord) (map[Format][]byte, error) {
	out := make(map[Format][]byte, len(Formats()))
	for _, f := range Formats() {
		data, err := s.Export(ctx, rec, f)
		if err != nil {
			return nil, err
		}
		out[f] = data
	}
	return out, nil
}

// Filename suggests "<prefix>_<colleague>_<date>.<ext>" for an export,
// with spaces in the colleague name replaced by underscores.
func (s *Service) Filename(rec *model.ObservationRecord, format Format) string {
	colleague := strings.ReplaceAll(rec.Colleague, " ", "_")
	return fmt.Sprintf("%s_%s_%s.%s", s.prefix, colleague, rec.Date, string(format))
}
