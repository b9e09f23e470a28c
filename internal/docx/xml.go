package docx

import (
	"bytes"
	"encoding/xml"
	"strings"
	"time"

	"github.com/goliatone/go-article/pkg/interfaces"
)

const xmlHeader = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n"

const (
	nsW = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	nsR = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"

	relHyperlink = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/hyperlink"
	relStyles    = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles"
	relNumbering = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/numbering"
)

// rId1 and rId2 are taken by styles and numbering.
const firstHyperlinkRel = 3

const contentTypesXML = xmlHeader +
	`<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">` +
	`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>` +
	`<Default Extension="xml" ContentType="application/xml"/>` +
	`<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>` +
	`<Override PartName="/word/styles.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.styles+xml"/>` +
	`<Override PartName="/word/numbering.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.numbering+xml"/>` +
	`<Override PartName="/docProps/core.xml" ContentType="application/vnd.openxmlformats-package.core-properties+xml"/>` +
	`<Override PartName="/docProps/app.xml" ContentType="application/vnd.openxmlformats-officedocument.extended-properties+xml"/>` +
	`</Types>`

const packageRelsXML = xmlHeader +
	`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
	`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>` +
	`<Relationship Id="rId2" Type="http://schemas.openxmlformats.org/package/2006/relationships/metadata/core-properties" Target="docProps/core.xml"/>` +
	`<Relationship Id="rId3" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/extended-properties" Target="docProps/app.xml"/>` +
	`</Relationships>`

const appXML = xmlHeader +
	`<Properties xmlns="http://schemas.openxmlformats.org/officeDocument/2006/extended-properties">` +
	`<Application>go-article</Application>` +
	`</Properties>`

const numberingXML = xmlHeader +
	`<w:numbering xmlns:w="` + nsW + `">` +
	`<w:abstractNum w:abstractNumId="0">` +
	`<w:multiLevelType w:val="singleLevel"/>` +
	`<w:lvl w:ilvl="0"><w:start w:val="1"/><w:numFmt w:val="bullet"/><w:lvlText w:val="•"/><w:lvlJc w:val="left"/>` +
	`<w:pPr><w:ind w:left="720" w:hanging="360"/></w:pPr></w:lvl>` +
	`</w:abstractNum>` +
	`<w:abstractNum w:abstractNumId="1">` +
	`<w:multiLevelType w:val="singleLevel"/>` +
	`<w:lvl w:ilvl="0"><w:start w:val="1"/><w:numFmt w:val="decimal"/><w:lvlText w:val="%1."/><w:lvlJc w:val="left"/>` +
	`<w:pPr><w:ind w:left="720" w:hanging="360"/></w:pPr></w:lvl>` +
	`</w:abstractNum>` +
	`<w:num w:numId="1"><w:abstractNumId w:val="0"/></w:num>` +
	`<w:num w:numId="2"><w:abstractNumId w:val="1"/></w:num>` +
	`</w:numbering>`

// sectionXML is US Letter with one inch margins.
const sectionXML = `<w:sectPr>` +
	`<w:pgSz w:w="12240" w:h="15840"/>` +
	`<w:pgMar w:top="1440" w:right="1440" w:bottom="1440" w:left="1440" w:header="720" w:footer="720" w:gutter="0"/>` +
	`</w:sectPr>`

func (d *Document) documentXML() []byte {
	var b bytes.Buffer
	b.WriteString(xmlHeader)
	b.WriteString(`<w:document xmlns:w="` + nsW + `" xmlns:r="` + nsR + `"><w:body>`)

	if len(d.paragraphs) == 0 {
		b.WriteString(`<w:p/>`)
	}
	for _, p := range d.paragraphs {
		writeParagraph(&b, p, d.opts.HyperlinkColor)
	}

	b.WriteString(sectionXML)
	b.WriteString(`</w:body></w:document>`)
	return b.Bytes()
}

func writeParagraph(b *bytes.Buffer, p *paragraph, linkColor string) {
	b.WriteString(`<w:p>`)
	if p.style != "" || p.align == interfaces.AlignCenter {
		b.WriteString(`<w:pPr>`)
		if p.style != "" {
			b.WriteString(`<w:pStyle w:val="` + p.style + `"/>`)
		}
		if p.align == interfaces.AlignCenter {
			b.WriteString(`<w:jc w:val="center"/>`)
		}
		b.WriteString(`</w:pPr>`)
	}
	for _, in := range p.content {
		if in.relID == "" {
			writeRun(b, in.text, in.style, "")
			continue
		}
		b.WriteString(`<w:hyperlink r:id="` + in.relID + `" w:history="1">`)
		writeRun(b, in.text, in.style, linkColor)
		b.WriteString(`</w:hyperlink>`)
	}
	b.WriteString(`</w:p>`)
}

// writeRun emits a w:r. rPr children follow the schema order
// rStyle, b, i, color, u.
func writeRun(b *bytes.Buffer, text string, style interfaces.RunStyle, linkColor string) {
	b.WriteString(`<w:r>`)
	if style.Bold || style.Italic || style.Underline || linkColor != "" {
		b.WriteString(`<w:rPr>`)
		if linkColor != "" {
			b.WriteString(`<w:rStyle w:val="Hyperlink"/>`)
		}
		if style.Bold {
			b.WriteString(`<w:b/>`)
		}
		if style.Italic {
			b.WriteString(`<w:i/>`)
		}
		if linkColor != "" {
			b.WriteString(`<w:color w:val="` + linkColor + `"/>`)
		}
		if style.Underline {
			b.WriteString(`<w:u w:val="single"/>`)
		}
		b.WriteString(`</w:rPr>`)
	}
	b.WriteString(`<w:t xml:space="preserve">`)
	escape(b, text)
	b.WriteString(`</w:t></w:r>`)
}

func (d *Document) documentRelsXML() []byte {
	var b bytes.Buffer
	b.WriteString(xmlHeader)
	b.WriteString(`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">`)
	b.WriteString(`<Relationship Id="rId1" Type="` + relStyles + `" Target="styles.xml"/>`)
	b.WriteString(`<Relationship Id="rId2" Type="` + relNumbering + `" Target="numbering.xml"/>`)
	for _, rel := range d.links {
		b.WriteString(`<Relationship Id="` + rel.id + `" Type="` + relHyperlink + `" Target="`)
		escape(&b, rel.target)
		b.WriteString(`" TargetMode="External"/>`)
	}
	b.WriteString(`</Relationships>`)
	return b.Bytes()
}

func (d *Document) coreXML() []byte {
	now := d.opts.Now().UTC().Format(time.RFC3339)

	var b bytes.Buffer
	b.WriteString(xmlHeader)
	b.WriteString(`<cp:coreProperties` +
		` xmlns:cp="http://schemas.openxmlformats.org/package/2006/metadata/core-properties"` +
		` xmlns:dc="http://purl.org/dc/elements/1.1/"` +
		` xmlns:dcterms="http://purl.org/dc/terms/"` +
		` xmlns:dcmitype="http://purl.org/dc/dcmitype/"` +
		` xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance">`)
	element(&b, "dc:title", d.opts.Title)
	element(&b, "dc:subject", d.opts.Subject)
	element(&b, "dc:creator", d.opts.Creator)
	element(&b, "cp:keywords", strings.Join(d.opts.Keywords, ", "))
	b.WriteString(`<dcterms:created xsi:type="dcterms:W3CDTF">` + now + `</dcterms:created>`)
	b.WriteString(`<dcterms:modified xsi:type="dcterms:W3CDTF">` + now + `</dcterms:modified>`)
	b.WriteString(`</cp:coreProperties>`)
	return b.Bytes()
}

func (d *Document) stylesXML() []byte {
	var b bytes.Buffer
	b.WriteString(xmlHeader)
	b.WriteString(`<w:styles xmlns:w="` + nsW + `">`)
	b.WriteString(`<w:docDefaults><w:rPrDefault><w:rPr>` +
		`<w:rFonts w:ascii="Calibri" w:hAnsi="Calibri" w:eastAsia="Calibri" w:cs="Calibri"/>` +
		`<w:sz w:val="22"/><w:szCs w:val="22"/>` +
		`</w:rPr></w:rPrDefault>` +
		`<w:pPrDefault><w:pPr><w:spacing w:after="160" w:line="259" w:lineRule="auto"/></w:pPr></w:pPrDefault>` +
		`</w:docDefaults>`)
	b.WriteString(`<w:style w:type="paragraph" w:default="1" w:styleId="Normal"><w:name w:val="Normal"/><w:qFormat/></w:style>`)
	for _, h := range headingStyles {
		b.WriteString(`<w:style w:type="paragraph" w:styleId="` + h.id + `">` +
			`<w:name w:val="` + h.name + `"/><w:basedOn w:val="Normal"/><w:next w:val="Normal"/><w:qFormat/>` +
			`<w:pPr><w:keepNext/><w:spacing w:before="` + h.spaceBefore + `" w:after="80"/><w:outlineLvl w:val="` + h.outline + `"/></w:pPr>` +
			`<w:rPr><w:b/><w:color w:val="1F3864"/><w:sz w:val="` + h.size + `"/><w:szCs w:val="` + h.size + `"/></w:rPr>` +
			`</w:style>`)
	}
	b.WriteString(`<w:style w:type="paragraph" w:styleId="ListBullet"><w:name w:val="List Bullet"/><w:basedOn w:val="Normal"/>` +
		`<w:pPr><w:numPr><w:numId w:val="1"/></w:numPr><w:contextualSpacing/></w:pPr></w:style>`)
	b.WriteString(`<w:style w:type="paragraph" w:styleId="ListNumber"><w:name w:val="List Number"/><w:basedOn w:val="Normal"/>` +
		`<w:pPr><w:numPr><w:numId w:val="2"/></w:numPr><w:contextualSpacing/></w:pPr></w:style>`)
	b.WriteString(`<w:style w:type="character" w:styleId="Hyperlink"><w:name w:val="Hyperlink"/>` +
		`<w:rPr><w:color w:val="` + d.opts.HyperlinkColor + `"/><w:u w:val="single"/></w:rPr></w:style>`)
	b.WriteString(`</w:styles>`)
	return b.Bytes()
}

var headingStyles = []struct {
	id, name, outline, size, spaceBefore string
}{
	{"Heading1", "heading 1", "0", "32", "360"},
	{"Heading2", "heading 2", "1", "26", "240"},
	{"Heading3", "heading 3", "2", "24", "200"},
}

func element(b *bytes.Buffer, name, value string) {
	if value == "" {
		b.WriteString(`<` + name + `/>`)
		return
	}
	b.WriteString(`<` + name + `>`)
	escape(b, value)
	b.WriteString(`</` + name + `>`)
}

// escape writes s as XML character data. xml.EscapeText replaces characters
// XML 1.0 cannot carry with U+FFFD; the bytes.Buffer writer never fails.
func escape(b *bytes.Buffer, s string) {
	_ = xml.EscapeText(b, []byte(s))
}
