package pptx

import (
	"archive/zip"
	"fmt"
	"strings"
)

// OOXML namespace URIs and relationship types shared by every writer_*.go file.
const (
	nsDrawingML      = "http://schemas.openxmlformats.org/drawingml/2006/main"
	nsOfficeDocRels  = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
	nsPresentationML = "http://schemas.openxmlformats.org/presentationml/2006/main"
	nsRelationships  = "http://schemas.openxmlformats.org/package/2006/relationships"
	nsContentTypes   = "http://schemas.openxmlformats.org/package/2006/content-types"
	nsCorePropsRels  = "http://schemas.openxmlformats.org/package/2006/relationships/metadata/core-properties"
	nsCoreProps      = "http://schemas.openxmlformats.org/package/2006/metadata/core-properties"
	nsDC             = "http://purl.org/dc/elements/1.1/"
	nsDCTerms        = "http://purl.org/dc/terms/"
	nsDCMIType       = "http://purl.org/dc/dcmitype/"
	nsXSI            = "http://www.w3.org/2001/XMLSchema-instance"
	nsExtendedProps  = "http://schemas.openxmlformats.org/officeDocument/2006/extended-properties"
	nsVT             = "http://schemas.openxmlformats.org/officeDocument/2006/docPropsVTypes"

	relTypeOfficeDocument = nsOfficeDocRels + "/officeDocument"
	relTypeCoreProps      = nsCorePropsRels
	relTypeExtendedProps  = nsOfficeDocRels + "/extended-properties"
	relTypeSlideMaster    = nsOfficeDocRels + "/slideMaster"
	relTypeSlideLayout    = nsOfficeDocRels + "/slideLayout"
	relTypeTheme          = nsOfficeDocRels + "/theme"
	relTypeSlide          = nsOfficeDocRels + "/slide"
	relTypeImage          = nsOfficeDocRels + "/image"
	relTypePresProps      = nsOfficeDocRels + "/presProps"
	relTypeViewProps      = nsOfficeDocRels + "/viewProps"
	relTypeTableStyles    = nsOfficeDocRels + "/tableStyles"
)

// writeRawXMLToZip writes a pre-rendered XML document to a zip entry.
func writeRawXMLToZip(zw *zip.Writer, path, content string) error {
	f, err := zw.Create(path)
	if err != nil {
		return fmt.Errorf("create zip entry %s: %w", path, err)
	}
	if _, err := f.Write([]byte(content)); err != nil {
		return fmt.Errorf("write zip entry %s: %w", path, err)
	}
	return nil
}

// escapeXML escapes the five predefined XML entities in text content.
func escapeXML(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '&':
			b.WriteString("&amp;")
		case '<':
			b.WriteString("&lt;")
		case '>':
			b.WriteString("&gt;")
		case '"':
			b.WriteString("&quot;")
		case '\'':
			b.WriteString("&apos;")
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func (w *PPTXWriter) writeContentTypes(zw *zip.Writer) error {
	var overrides strings.Builder
	overrides.WriteString(`  <Override PartName="/ppt/presentation.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.presentation.main+xml"/>
`)
	overrides.WriteString(`  <Override PartName="/ppt/presProps.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.presProps+xml"/>
`)
	overrides.WriteString(`  <Override PartName="/ppt/viewProps.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.viewProps+xml"/>
`)
	overrides.WriteString(`  <Override PartName="/ppt/tableStyles.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.tableStyles+xml"/>
`)
	overrides.WriteString(`  <Override PartName="/ppt/slideMasters/slideMaster1.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.slideMaster+xml"/>
`)
	overrides.WriteString(`  <Override PartName="/ppt/slideLayouts/slideLayout1.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.slideLayout+xml"/>
`)
	overrides.WriteString(`  <Override PartName="/ppt/theme/theme1.xml" ContentType="application/vnd.openxmlformats-officedocument.theme+xml"/>
`)
	overrides.WriteString(`  <Override PartName="/docProps/core.xml" ContentType="application/vnd.openxmlformats-package.core-properties+xml"/>
`)
	overrides.WriteString(`  <Override PartName="/docProps/app.xml" ContentType="application/vnd.openxmlformats-officedocument.extended-properties+xml"/>
`)
	for i := range w.presentation.slides {
		fmt.Fprintf(&overrides, `  <Override PartName="/ppt/slides/slide%d.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.slide+xml"/>
`, i+1)
	}

	extensions := map[string]string{
		"rels": "application/vnd.openxmlformats-package.relationships+xml",
		"xml":  "application/xml",
	}
	for _, ext := range w.imageExtensions() {
		extensions[ext.ext] = ext.mime
	}

	var defaults strings.Builder
	for _, ext := range []string{"rels", "xml"} {
		fmt.Fprintf(&defaults, `  <Default Extension="%s" ContentType="%s"/>
`, ext, extensions[ext])
	}
	for _, ext := range w.imageExtensions() {
		fmt.Fprintf(&defaults, `  <Default Extension="%s" ContentType="%s"/>
`, ext.ext, ext.mime)
	}

	content := fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="%s">
%s%s</Types>`, nsContentTypes, defaults.String(), overrides.String())
	return writeRawXMLToZip(zw, "[Content_Types].xml", content)
}

func (w *PPTXWriter) writeRootRels(zw *zip.Writer) error {
	content := fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="%s">
  <Relationship Id="rId1" Type="%s" Target="ppt/presentation.xml"/>
  <Relationship Id="rId2" Type="%s" Target="docProps/core.xml"/>
  <Relationship Id="rId3" Type="%s" Target="docProps/app.xml"/>
</Relationships>`, nsRelationships, relTypeOfficeDocument, relTypeCoreProps, relTypeExtendedProps)
	return writeRawXMLToZip(zw, "_rels/.rels", content)
}

func (w *PPTXWriter) writeCoreProperties(zw *zip.Writer) error {
	props := w.presentation.properties
	content := fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<cp:coreProperties xmlns:cp="%s" xmlns:dc="%s" xmlns:dcterms="%s" xmlns:dcmitype="%s" xmlns:xsi="%s">
  <dc:creator>%s</dc:creator>
  <cp:lastModifiedBy>%s</cp:lastModifiedBy>
  <dcterms:created xsi:type="dcterms:W3CDTF">%s</dcterms:created>
  <dcterms:modified xsi:type="dcterms:W3CDTF">%s</dcterms:modified>
  <dc:title>%s</dc:title>
  <dc:subject>%s</dc:subject>
  <dc:description>%s</dc:description>
  <cp:keywords>%s</cp:keywords>
  <cp:category>%s</cp:category>
  <cp:revision>%s</cp:revision>
</cp:coreProperties>`,
		nsCoreProps, nsDC, nsDCTerms, nsDCMIType, nsXSI,
		escapeXML(props.Creator), escapeXML(props.LastModifiedBy),
		props.Created.UTC().Format("2006-01-02T15:04:05Z"),
		props.Modified.UTC().Format("2006-01-02T15:04:05Z"),
		escapeXML(props.Title), escapeXML(props.Subject), escapeXML(props.Description),
		escapeXML(props.Keywords), escapeXML(props.Category), escapeXML(props.Revision),
	)
	return writeRawXMLToZip(zw, "docProps/core.xml", content)
}

func (w *PPTXWriter) writeAppProperties(zw *zip.Writer) error {
	props := w.presentation.properties
	slideCount := len(w.presentation.slides)

	content := fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Properties xmlns="%s" xmlns:vt="%s">
  <Application>pptx</Application>
  <Company>%s</Company>
  <Slides>%d</Slides>
  <Words>0</Words>
  <PresentationFormat>%s</PresentationFormat>
  <TitlesOfParts>
    <vt:vector size="1" baseType="lpstr">
      <vt:lpstr>Office Theme</vt:lpstr>
    </vt:vector>
  </TitlesOfParts>
</Properties>`, nsExtendedProps, nsVT, escapeXML(props.Company), slideCount, w.presentationFormat())
	return writeRawXMLToZip(zw, "docProps/app.xml", content)
}

func (w *PPTXWriter) presentationFormat() string {
	switch w.presentation.layout.Name {
	case LayoutScreen16x9:
		return "Widescreen"
	case LayoutScreen16x10:
		return "On-screen Show (16:10)"
	default:
		return "On-screen Show (4:3)"
	}
}

func (w *PPTXWriter) writePresentationRels(zw *zip.Writer) error {
	var b strings.Builder
	fmt.Fprintf(&b, `  <Relationship Id="rId1" Type="%s" Target="slideMasters/slideMaster1.xml"/>
`, relTypeSlideMaster)
	relIdx := 2
	for i := range w.presentation.slides {
		fmt.Fprintf(&b, `  <Relationship Id="rId%d" Type="%s" Target="slides/slide%d.xml"/>
`, relIdx, relTypeSlide, i+1)
		relIdx++
	}
	fmt.Fprintf(&b, `  <Relationship Id="rId%d" Type="%s" Target="presProps.xml"/>
`, relIdx, relTypePresProps)
	relIdx++
	fmt.Fprintf(&b, `  <Relationship Id="rId%d" Type="%s" Target="viewProps.xml"/>
`, relIdx, relTypeViewProps)
	relIdx++
	fmt.Fprintf(&b, `  <Relationship Id="rId%d" Type="%s" Target="tableStyles.xml"/>
`, relIdx, relTypeTableStyles)
	relIdx++
	fmt.Fprintf(&b, `  <Relationship Id="rId%d" Type="%s" Target="theme/theme1.xml"/>
`, relIdx, relTypeTheme)

	content := fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="%s">
%s</Relationships>`, nsRelationships, b.String())
	return writeRawXMLToZip(zw, "ppt/_rels/presentation.xml.rels", content)
}
