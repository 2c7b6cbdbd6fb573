package pptx

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
)

// WriterType selects the output package format. PowerPoint2007 (.pptx,
// OOXML) is the only format this package knows how to emit.
type WriterType string

const (
	WriterPowerPoint2007 WriterType = "pptx2007"
)

// PPTXWriter serializes a Presentation to the zipped OOXML package format.
type PPTXWriter struct {
	presentation *Presentation
	writerType   WriterType
}

// NewWriter creates a writer for the given presentation and format.
func NewWriter(p *Presentation, t WriterType) (*PPTXWriter, error) {
	if t != WriterPowerPoint2007 {
		return nil, fmt.Errorf("unsupported writer type: %q", t)
	}
	if p == nil {
		return nil, fmt.Errorf("presentation is nil")
	}
	return &PPTXWriter{presentation: p, writerType: t}, nil
}

type imageExtension struct {
	ext  string
	mime string
}

// imageExtensions returns the distinct image extension/MIME pairs used by
// drawing shapes across the presentation, needed for [Content_Types].xml.
func (w *PPTXWriter) imageExtensions() []imageExtension {
	seen := make(map[string]bool)
	var out []imageExtension
	for _, slide := range w.presentation.slides {
		for _, shape := range slide.shapes {
			collectImageExtensions(shape, seen, &out)
		}
	}
	if len(out) == 0 {
		out = append(out, imageExtension{ext: "png", mime: "image/png"})
	}
	return out
}

func collectImageExtensions(shape Shape, seen map[string]bool, out *[]imageExtension) {
	switch sh := shape.(type) {
	case *DrawingShape:
		ext := extForMime(sh.mimeType)
		if !seen[ext] {
			seen[ext] = true
			*out = append(*out, imageExtension{ext: ext, mime: mimeForExt(ext)})
		}
	case *GroupShape:
		for _, child := range sh.shapes {
			collectImageExtensions(child, seen, out)
		}
	}
}

func extForMime(mime string) string {
	switch mime {
	case "image/jpeg":
		return "jpeg"
	case "image/gif":
		return "gif"
	default:
		return "png"
	}
}

func mimeForExt(ext string) string {
	switch ext {
	case "jpeg":
		return "image/jpeg"
	case "gif":
		return "image/gif"
	default:
		return "image/png"
	}
}

// WriteTo serializes the presentation as a zip archive to w.
func (wr *PPTXWriter) WriteTo(w io.Writer) error {
	return wr.writeZip(w)
}

// Save writes the presentation to a .pptx file at path.
func (wr *PPTXWriter) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	defer f.Close()
	return wr.writeZip(f)
}

func (wr *PPTXWriter) writeZip(sink io.Writer) error {
	zw := zip.NewWriter(sink)

	steps := []func(*zip.Writer) error{
		wr.writeContentTypes,
		wr.writeRootRels,
		wr.writeCoreProperties,
		wr.writeAppProperties,
		wr.writePresentation,
		wr.writePresentationRels,
		wr.writePresProps,
		wr.writeViewProps,
		wr.writeTableStyles,
		wr.writeSlideMaster,
		wr.writeSlideLayout,
		wr.writeTheme,
		wr.writeSlides,
	}
	for _, step := range steps {
		if err := step(zw); err != nil {
			_ = zw.Close()
			return err
		}
	}
	return zw.Close()
}
