// Package docx renders an observation record as a WordprocessingML
// document: a zip package holding the content types, the package
// relationships and the document part.
package docx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"

	"github.com/askolte/rubricform/internal/domain/model"
	"github.com/askolte/rubricform/internal/domain/rubric"
	"github.com/askolte/rubricform/internal/domain/scoring"
	"github.com/askolte/rubricform/internal/render"
)

const wordNS = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"

// Font sizes in half-points.
const (
	titleSize   = 32 // 16pt
	headingSize = 26 // 13pt
)

// Renderer produces DOCX bytes. It holds no state between calls; every
// render owns its own buffers.
type Renderer struct{}

// New creates a DOCX renderer.
func New() *Renderer {
	return &Renderer{}
}

// Render serializes the record and its score summary as a DOCX package.
func (r *Renderer) Render(cat *rubric.Catalog, rec *model.ObservationRecord, sum scoring.Summary) ([]byte, error) {
	if err := render.Validate(cat, rec); err != nil {
		return nil, err
	}

	doc, err := buildDocumentXML(cat, rec, sum)
	if err != nil {
		return nil, err
	}
	ctPart, err := contentTypesXML()
	if err != nil {
		return nil, err
	}
	relsPart, err := relationshipsXML()
	if err != nil {
		return nil, err
	}

	buf := new(bytes.Buffer)
	zw := zip.NewWriter(buf)

	parts := []struct {
		name string
		body []byte
	}{
		{"[Content_Types].xml", ctPart},
		{"_rels/.rels", relsPart},
		{"word/document.xml", doc},
	}
	for _, p := range parts {
		w, err := zw.Create(p.name)
		if err != nil {
			return nil, fmt.Errorf("docx part %s: %w", p.name, err)
		}
		if _, err := w.Write(p.body); err != nil {
			return nil, fmt.Errorf("docx part %s: %w", p.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("docx package: %w", err)
	}
	return buf.Bytes(), nil
}

// --- package-level parts (typed XML, export-only) ---

type contentTypes struct {
	XMLName   xml.Name          `xml:"Types"`
	Xmlns     string            `xml:"xmlns,attr"`
	Defaults  []contentDefault  `xml:"Default"`
	Overrides []contentOverride `xml:"Override"`
}

type contentDefault struct {
	Extension   string `xml:"Extension,attr"`
	ContentType string `xml:"ContentType,attr"`
}

type contentOverride struct {
	PartName    string `xml:"PartName,attr"`
	ContentType string `xml:"ContentType,attr"`
}

type relationships struct {
	XMLName xml.Name       `xml:"Relationships"`
	Xmlns   string         `xml:"xmlns,attr"`
	Rels    []relationship `xml:"Relationship"`
}

type relationship struct {
	ID     string `xml:"Id,attr"`
	Type   string `xml:"Type,attr"`
	Target string `xml:"Target,attr"`
}

func contentTypesXML() ([]byte, error) {
	ct := contentTypes{
		Xmlns: "http://schemas.openxmlformats.org/package/2006/content-types",
		Defaults: []contentDefault{
			{Extension: "rels", ContentType: "application/vnd.openxmlformats-package.relationships+xml"},
			{Extension: "xml", ContentType: "application/xml"},
		},
		Overrides: []contentOverride{
			{PartName: "/word/document.xml", ContentType: "application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"},
		},
	}
	return marshalPart("[Content_Types].xml", ct)
}

func relationshipsXML() ([]byte, error) {
	rels := relationships{
		Xmlns: "http://schemas.openxmlformats.org/package/2006/relationships",
		Rels: []relationship{
			{ID: "rId1", Type: "http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument", Target: "word/document.xml"},
		},
	}
	return marshalPart("_rels/.rels", rels)
}

func marshalPart(name string, v interface{}) ([]byte, error) {
	b, err := xml.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("docx part %s: %w", name, err)
	}
	return append([]byte(xml.Header), b...), nil
}

// --- document part (string assembly, escaped) ---

func buildDocumentXML(cat *rubric.Catalog, rec *model.ObservationRecord, sum scoring.Summary) ([]byte, error) {
	var b strings.Builder
	b.WriteString(xml.Header)
	b.WriteString(`<w:document xmlns:w="` + wordNS + `"><w:body>`)

	writeTitle(&b, cat.Name())

	writeMeta(&b,
		run{label: render.LabelDate, text: rec.Date + "    "},
		run{label: render.LabelColleague, text: rec.Colleague + "    "},
		run{label: render.LabelObserver, text: rec.Observer},
	)
	writeMeta(&b, run{label: render.LabelSubjectLine, text: render.MetaSubjectLine(rec)})
	if rec.School != "" {
		writeMeta(&b, run{label: render.LabelSchool, text: rec.School})
	}
	if len(rec.ProfileFocus) > 0 {
		writeMeta(&b, run{label: render.LabelProfileFocus, text: render.FocusLine(rec)})
	}

	order := render.ModuleOrder(cat, rec)
	for _, mk := range order {
		heading, err := render.ModuleHeading(cat, mk)
		if err != nil {
			return nil, err
		}
		writeHeading(&b, heading)
		if err := writeModuleTable(&b, cat, rec.Modules[mk]); err != nil {
			return nil, err
		}
		writePara(&b, "")
	}

	writeHeading(&b, render.HeadingStrengths)
	writePara(&b, render.TextOrDash(rec.Strengths))
	writeHeading(&b, render.HeadingNextSteps)
	writePara(&b, render.TextOrDash(rec.NextSteps))

	writeHeading(&b, render.HeadingSummary)
	for _, mk := range order {
		writePara(&b, mk+": "+render.FormatScore(sum.PerModule[mk]))
	}
	writePara(&b, render.LabelOverall+" "+render.FormatScore(sum.Overall))

	b.WriteString(`</w:body></w:document>`)
	return []byte(b.String()), nil
}

// run is one label/value pair of a metadata paragraph; the label renders
// bold, the value plain.
type run struct {
	label string
	text  string
}

func writeTitle(b *strings.Builder, text string) {
	b.WriteString(`<w:p><w:pPr><w:jc w:val="center"/></w:pPr>`)
	b.WriteString(`<w:r><w:rPr><w:b/><w:sz w:val="` + strconv.Itoa(titleSize) + `"/></w:rPr>`)
	b.WriteString(`<w:t xml:space="preserve">` + esc(text) + `</w:t></w:r></w:p>`)
}

func writeHeading(b *strings.Builder, text string) {
	b.WriteString(`<w:p><w:r><w:rPr><w:b/><w:sz w:val="` + strconv.Itoa(headingSize) + `"/></w:rPr>`)
	b.WriteString(`<w:t xml:space="preserve">` + esc(text) + `</w:t></w:r></w:p>`)
}

func writePara(b *strings.Builder, text string) {
	b.WriteString(`<w:p><w:r><w:t xml:space="preserve">` + esc(text) + `</w:t></w:r></w:p>`)
}

func writeMeta(b *strings.Builder, runs ...run) {
	b.WriteString(`<w:p>`)
	for _, r := range runs {
		b.WriteString(`<w:r><w:rPr><w:b/></w:rPr><w:t xml:space="preserve">` + esc(r.label+" ") + `</w:t></w:r>`)
		b.WriteString(`<w:r><w:t xml:space="preserve">` + esc(r.text) + `</w:t></w:r>`)
	}
	b.WriteString(`</w:p>`)
}

func writeModuleTable(b *strings.Builder, cat *rubric.Catalog, mod *model.ModuleResult) error {
	crits, err := cat.Criteria(mod.ModuleKey)
	if err != nil {
		return err
	}

	b.WriteString(`<w:tbl><w:tblPr><w:tblW w:w="0" w:type="auto"/>` + tableBorders + `</w:tblPr>`)
	b.WriteString(`<w:tblGrid><w:gridCol/><w:gridCol/><w:gridCol/></w:tblGrid>`)

	writeTableRow(b, true, render.LabelCriterion, render.LabelRating, render.LabelComment)
	for _, c := range crits {
		cr := mod.Criteria[c.ID]
		rating, comment := 0, ""
		if cr != nil {
			rating, comment = cr.Rating, cr.Comment
		}
		writeTableRow(b, false, c.ID+" "+c.Text, strconv.Itoa(rating), comment)
	}

	b.WriteString(`</w:tbl>`)
	return nil
}

const tableBorders = `<w:tblBorders>` +
	`<w:top w:val="single" w:sz="4" w:space="0" w:color="auto"/>` +
	`<w:left w:val="single" w:sz="4" w:space="0" w:color="auto"/>` +
	`<w:bottom w:val="single" w:sz="4" w:space="0" w:color="auto"/>` +
	`<w:right w:val="single" w:sz="4" w:space="0" w:color="auto"/>` +
	`<w:insideH w:val="single" w:sz="4" w:space="0" w:color="auto"/>` +
	`<w:insideV w:val="single" w:sz="4" w:space="0" w:color="auto"/>` +
	`</w:tblBorders>`

func writeTableRow(b *strings.Builder, header bool, cells ...string) {
	b.WriteString(`<w:tr>`)
	for _, cell := range cells {
		b.WriteString(`<w:tc><w:p><w:r>`)
		if header {
			b.WriteString(`<w:rPr><w:b/></w:rPr>`)
		}
		b.WriteString(`<w:t xml:space="preserve">` + esc(cell) + `</w:t></w:r></w:p></w:tc>`)
	}
	b.WriteString(`</w:tr>`)
}

func esc(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
