// Package pdf renders an observation record as a paginated A4 PDF with
// the same content and ordering as the DOCX renderer.
package pdf

import (
	"bytes"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/askolte/rubricform/internal/domain/model"
	"github.com/askolte/rubricform/internal/domain/rubric"
	"github.com/askolte/rubricform/internal/domain/scoring"
	"github.com/askolte/rubricform/internal/render"
)

// Page layout constants (mm and pt).
const (
	bottomMargin = 15
	titleHeight  = 10
	lineHeight   = 6
	titleSize    = 16
	headingSize  = 13
	bodySize     = 11
)

// Family name under which an embedded Unicode font is registered.
const unicodeFamily = "report"

// Option applies a configuration option to the Renderer.
type Option func(*Renderer)

// WithFontPath sets the path of a TTF font to embed. When the file is
// missing the renderer silently falls back to the core Helvetica font
// plus transliteration; the fallback is a designed degradation, not an
// error.
func WithFontPath(path string) Option {
	return func(r *Renderer) {
		r.fontPath = path
	}
}

// Renderer produces PDF bytes. Each render call builds its own document
// and buffers; a Renderer is safe to reuse across calls.
type Renderer struct {
	fontPath string
}

// New creates a PDF renderer with configuration options.
func New(opts ...Option) *Renderer {
	r := &Renderer{}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render serializes the record and its score summary as a PDF.
func (r *Renderer) Render(cat *rubric.Catalog, rec *model.ObservationRecord, sum scoring.Summary) ([]byte, error) {
	if err := render.Validate(cat, rec); err != nil {
		return nil, err
	}

	doc := gofpdf.New("P", "mm", "A4", "")
	doc.SetAutoPageBreak(true, bottomMargin)
	// Zero timestamps keep the output bytes identical across calls.
	doc.SetCreationDate(time.Time{})
	doc.SetModificationDate(time.Time{})

	family, tr := r.selectFont(doc)
	line := func(txt string) {
		doc.MultiCell(0, lineHeight, tr(txt), "", "L", false)
	}
	heading := func(txt string) {
		doc.SetFont(family, "B", headingSize)
		line(txt)
		doc.SetFont(family, "", bodySize)
	}

	doc.AddPage()
	doc.SetFont(family, "B", titleSize)
	doc.CellFormat(0, titleHeight, tr(cat.Name()), "", 1, "C", false, 0, "")
	doc.SetFont(family, "", bodySize)

	line(render.LabelDate + " " + rec.Date)
	line(render.LabelColleague + " " + rec.Colleague)
	line(render.LabelObserver + " " + rec.Observer)
	line(render.LabelSubjectLine + " " + render.MetaSubjectLine(rec))
	if rec.School != "" {
		line(render.LabelSchool + " " + rec.School)
	}
	if len(rec.ProfileFocus) > 0 {
		line(render.LabelProfileFocus + " " + render.FocusLine(rec))
	}
	doc.Ln(2)

	order := render.ModuleOrder(cat, rec)
	for _, mk := range order {
		mh, err := render.ModuleHeading(cat, mk)
		if err != nil {
			return nil, err
		}
		heading(mh)

		crits, err := cat.Criteria(mk)
		if err != nil {
			return nil, err
		}
		mod := rec.Modules[mk]
		for _, c := range crits {
			line(c.ID + " " + c.Text)
			rating, comment := 0, ""
			if cr := mod.Criteria[c.ID]; cr != nil {
				rating, comment = cr.Rating, cr.Comment
			}
			line("  Rating: " + strconv.Itoa(rating) + "/4")
			if comment != "" {
				line("  Comment: " + comment)
			}
			doc.Ln(1)
		}
		doc.Ln(2)
	}

	heading(render.HeadingStrengths)
	line(render.TextOrDash(rec.Strengths))
	doc.Ln(2)

	heading(render.HeadingNextSteps)
	line(render.TextOrDash(rec.NextSteps))
	doc.Ln(2)

	heading(render.HeadingSummary)
	for _, mk := range order {
		line(mk + ": " + render.FormatScore(sum.PerModule[mk]))
	}
	line(render.LabelOverall + " " + render.FormatScore(sum.Overall))

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf output: %w", err)
	}
	return buf.Bytes(), nil
}

// selectFont decides between the embedded Unicode font and the core
// Helvetica fallback. The choice is made per render call so a font file
// appearing or vanishing between calls never leaves stale state behind.
func (r *Renderer) selectFont(doc *gofpdf.Fpdf) (family string, tr func(string) string) {
	if r.fontPath != "" {
		if _, err := os.Stat(r.fontPath); err == nil {
			doc.AddUTF8Font(unicodeFamily, "", r.fontPath)
			doc.AddUTF8Font(unicodeFamily, "B", r.fontPath)
			return unicodeFamily, func(s string) string { return s }
		}
	}
	return "Helvetica", Transliterate
}
