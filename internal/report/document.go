package report

import "strings"

type SectionName string

const (
	SectionHeader    SectionName = "header"
	SectionProfile   SectionName = "profile"
	SectionEvolution SectionName = "evolution"
	SectionWorkouts  SectionName = "workouts"
	SectionCardio    SectionName = "cardio"
	SectionFooter    SectionName = "footer"
)

type ElementKind string

const (
	KindText ElementKind = "text"
	KindRule ElementKind = "rule"
)

type Align string

const (
	AlignLeft   Align = "left"
	AlignCenter Align = "center"
)

type Color struct {
	R, G, B int
}

var (
	black     = Color{}
	gray      = Color{R: 100, G: 100, B: 100}
	ruleColor = Color{R: 59, G: 130, B: 246}
)

// Element is a single drawing instruction, positioned in millimetres from the top-left corner.
// For text, Y is the baseline of the first line.
type Element struct {
	Kind  ElementKind `json:"kind"`
	X     float64     `json:"x"`
	Y     float64     `json:"y"`
	Lines []string    `json:"lines,omitempty"`
	Size  float64     `json:"size,omitempty"`
	Bold  bool        `json:"bold,omitempty"`
	Align Align       `json:"align,omitempty"`
	Color Color       `json:"color"`
	// LineHeight separates the Lines of a wrapped text element.
	LineHeight float64 `json:"lineHeight,omitempty"`

	// rule only
	X2        float64 `json:"x2,omitempty"`
	LineWidth float64 `json:"lineWidth,omitempty"`
}

// Text joins all lines of a text element with a single space.
func (e Element) Text() string {
	return strings.Join(e.Lines, " ")
}

type Section struct {
	Name     SectionName `json:"name"`
	Elements []Element   `json:"elements"`
}

// Document is the composed, fixed-layout report of a single student. It is renderer independent.
type Document struct {
	Width    float64   `json:"width"`
	Height   float64   `json:"height"`
	FileName string    `json:"fileName"`
	Sections []Section `json:"sections"`
}

func (d Document) Section(name SectionName) (Section, bool) {
	for _, s := range d.Sections {
		if s.Name == name {
			return s, true
		}
	}
	return Section{}, false
}

func (d Document) HasSection(name SectionName) bool {
	_, ok := d.Section(name)
	return ok
}

// Texts lists the text content of the document in drawing order.
func (d Document) Texts() []string {
	var texts []string
	for _, s := range d.Sections {
		for _, e := range s.Elements {
			if e.Kind == KindText {
				texts = append(texts, e.Text())
			}
		}
	}
	return texts
}
