// Package pptx is a minimal, pure-Go PowerPoint (.pptx) builder. It covers
// the write-side surface the HTML-to-slide core needs: a presentation of
// slides, each holding positioned shapes (text, images, autoshapes, lines),
// serialized as a zipped OOXML package.
//
// It does not read or re-render existing .pptx files — the core this
// package backs is not a round-trip editor, so only the write path exists.
package pptx

import (
	"fmt"
	"time"
)

// Presentation represents an in-memory PowerPoint presentation.
type Presentation struct {
	properties             *DocumentProperties
	presentationProperties *PresentationProperties
	slides                 []*Slide
	slideMasters           []*SlideMaster
	activeSlideIndex       int
	layout                 *DocumentLayout
}

// New creates a new Presentation with one default blank slide, sized 16:9.
func New() *Presentation {
	p := &Presentation{
		properties:             NewDocumentProperties(),
		presentationProperties: NewPresentationProperties(),
		slides:                 make([]*Slide, 0),
		slideMasters:           make([]*SlideMaster, 0),
		layout:                 NewDocumentLayout(),
	}
	p.layout.SetLayout(LayoutScreen16x9)
	p.CreateSlide()
	return p
}

func (p *Presentation) GetDocumentProperties() *DocumentProperties { return p.properties }
func (p *Presentation) SetDocumentProperties(props *DocumentProperties) {
	p.properties = props
}

func (p *Presentation) GetPresentationProperties() *PresentationProperties {
	return p.presentationProperties
}

func (p *Presentation) GetLayout() *DocumentLayout      { return p.layout }
func (p *Presentation) SetLayout(layout *DocumentLayout) { p.layout = layout }

// CreateSlide creates a new slide and appends it to the presentation.
func (p *Presentation) CreateSlide() *Slide {
	slide := newSlide()
	p.slides = append(p.slides, slide)
	return slide
}

// AddSlide appends an existing slide to the presentation.
func (p *Presentation) AddSlide(slide *Slide) *Slide {
	p.slides = append(p.slides, slide)
	return slide
}

func (p *Presentation) GetActiveSlide() *Slide {
	if len(p.slides) == 0 {
		return nil
	}
	return p.slides[p.activeSlideIndex]
}

func (p *Presentation) GetActiveSlideIndex() int { return p.activeSlideIndex }

func (p *Presentation) SetActiveSlideIndex(idx int) error {
	if idx < 0 || idx >= len(p.slides) {
		return fmt.Errorf("slide index %d out of range [0,%d)", idx, len(p.slides))
	}
	p.activeSlideIndex = idx
	return nil
}

func (p *Presentation) GetSlide(idx int) (*Slide, error) {
	if idx < 0 || idx >= len(p.slides) {
		return nil, fmt.Errorf("slide index %d out of range [0,%d)", idx, len(p.slides))
	}
	return p.slides[idx], nil
}

func (p *Presentation) GetAllSlides() []*Slide { return p.slides }
func (p *Presentation) GetSlideCount() int     { return len(p.slides) }

// RemoveSlideByIndex removes a slide and clamps the active index into range.
func (p *Presentation) RemoveSlideByIndex(idx int) error {
	if idx < 0 || idx >= len(p.slides) {
		return fmt.Errorf("slide index %d out of range [0,%d)", idx, len(p.slides))
	}
	p.slides = append(p.slides[:idx], p.slides[idx+1:]...)
	if p.activeSlideIndex >= len(p.slides) && len(p.slides) > 0 {
		p.activeSlideIndex = len(p.slides) - 1
	}
	return nil
}

func (p *Presentation) CreateSlideMaster() *SlideMaster {
	sm := &SlideMaster{Name: fmt.Sprintf("Slide Master %d", len(p.slideMasters)+1)}
	p.slideMasters = append(p.slideMasters, sm)
	return sm
}

func (p *Presentation) GetSlideMasters() []*SlideMaster { return p.slideMasters }

// --- Document properties ---

// PropertyType identifies the type of a custom document property.
type PropertyType int

const (
	PropertyTypeUnknown PropertyType = iota
	PropertyTypeString
	PropertyTypeInteger
	PropertyTypeBoolean
	PropertyTypeFloat
)

// DocumentProperties holds the OOXML core/app document metadata.
type DocumentProperties struct {
	Creator        string
	Title          string
	Description    string
	Subject        string
	Keywords       string
	Category       string
	Company        string
	LastModifiedBy string
	Status         string
	Revision       string
	Created        time.Time
	Modified       time.Time

	customNames  []string
	customValues map[string]any
	customTypes  map[string]PropertyType
}

func NewDocumentProperties() *DocumentProperties {
	now := time.Now()
	return &DocumentProperties{
		Created:      now,
		Modified:     now,
		customValues: make(map[string]any),
		customTypes:  make(map[string]PropertyType),
	}
}

func (dp *DocumentProperties) SetCustomProperty(name string, value any, t PropertyType) {
	if _, exists := dp.customValues[name]; !exists {
		dp.customNames = append(dp.customNames, name)
	}
	dp.customValues[name] = value
	dp.customTypes[name] = t
}

func (dp *DocumentProperties) IsCustomPropertySet(name string) bool {
	_, ok := dp.customValues[name]
	return ok
}

func (dp *DocumentProperties) GetCustomPropertyValue(name string) any {
	return dp.customValues[name]
}

func (dp *DocumentProperties) GetCustomPropertyType(name string) PropertyType {
	if t, ok := dp.customTypes[name]; ok {
		return t
	}
	return PropertyTypeUnknown
}

func (dp *DocumentProperties) GetCustomProperties() []string { return dp.customNames }

// --- Presentation-level properties ---

type PresentationProperties struct {
	zoom           float64
	lastView       ViewType
	slideshowType  SlideshowType
	commentVisible bool
	markedAsFinal  bool
	thumbnailPath  string
	thumbnailData  []byte
}

type ViewType int

const (
	ViewSlide ViewType = iota
	ViewNotes
	ViewHandout
	ViewOutline
	ViewSlideMaster
	ViewSlideSorter
)

type SlideshowType int

const (
	SlideshowTypePresent SlideshowType = iota
	SlideshowTypeBrowse
	SlideshowTypeKiosk
)

func NewPresentationProperties() *PresentationProperties {
	return &PresentationProperties{
		zoom:          1.0,
		lastView:      ViewSlide,
		slideshowType: SlideshowTypePresent,
	}
}

func (pp *PresentationProperties) GetZoom() float64 { return pp.zoom }
func (pp *PresentationProperties) SetZoom(zoom float64) {
	if zoom < 0.1 {
		zoom = 0.1
	}
	if zoom > 4.0 {
		zoom = 4.0
	}
	pp.zoom = zoom
}

func (pp *PresentationProperties) GetLastView() ViewType      { return pp.lastView }
func (pp *PresentationProperties) SetLastView(view ViewType)   { pp.lastView = view }
func (pp *PresentationProperties) GetSlideshowType() SlideshowType { return pp.slideshowType }
func (pp *PresentationProperties) SetSlideshowType(t SlideshowType) { pp.slideshowType = t }

func (pp *PresentationProperties) IsCommentVisible() bool      { return pp.commentVisible }
func (pp *PresentationProperties) SetCommentVisible(v bool)     { pp.commentVisible = v }

func (pp *PresentationProperties) IsMarkedAsFinal() bool { return pp.markedAsFinal }
func (pp *PresentationProperties) MarkAsFinal(final ...bool) {
	if len(final) == 0 {
		pp.markedAsFinal = true
		return
	}
	pp.markedAsFinal = final[0]
}

func (pp *PresentationProperties) SetThumbnailPath(path string) { pp.thumbnailPath = path }
func (pp *PresentationProperties) GetThumbnailPath() string     { return pp.thumbnailPath }
func (pp *PresentationProperties) SetThumbnailData(data []byte) { pp.thumbnailData = data }
func (pp *PresentationProperties) GetThumbnailData() []byte     { return pp.thumbnailData }

// --- Slide dimensions ---

// DocumentLayout represents the slide dimensions.
type DocumentLayout struct {
	CX   int64 // width in EMU
	CY   int64 // height in EMU
	Name string
}

const (
	LayoutScreen4x3   = "screen4x3"
	LayoutScreen16x9  = "screen16x9"
	LayoutScreen16x10 = "screen16x10"
	LayoutA4          = "A4"
	LayoutLetter      = "letter"
	LayoutCustom      = "custom"
)

// NewDocumentLayout creates a default 4:3 layout.
func NewDocumentLayout() *DocumentLayout {
	return &DocumentLayout{CX: 9144000, CY: 6858000, Name: LayoutScreen4x3}
}

func (dl *DocumentLayout) SetLayout(name string) {
	dl.Name = name
	switch name {
	case LayoutScreen4x3:
		dl.CX, dl.CY = 9144000, 6858000
	case LayoutScreen16x9:
		dl.CX, dl.CY = 12192000, 6858000
	case LayoutScreen16x10:
		dl.CX, dl.CY = 10972800, 6858000
	case LayoutA4:
		dl.CX, dl.CY = 9906000, 6858000
	case LayoutLetter:
		dl.CX, dl.CY = 9144000, 6858000
	}
}

// SetCustomLayout sets custom dimensions in EMU. A non-positive value is
// replaced with the 4:3 default for that axis.
func (dl *DocumentLayout) SetCustomLayout(cx, cy int64) {
	if cx <= 0 {
		cx = 9144000
	}
	if cy <= 0 {
		cy = 6858000
	}
	dl.CX, dl.CY = cx, cy
	dl.Name = LayoutCustom
}

// SlideMaster and SlideLayout are retained only as metadata placeholders:
// the writer always emits a single default master/layout pair.
type SlideMaster struct {
	Name         string
	SlideLayouts []*SlideLayout
}

type SlideLayout struct {
	Name string
	Type string
}
