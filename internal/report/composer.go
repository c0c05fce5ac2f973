package report

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/personalplanner/planner/internal/evolution"
	"github.com/personalplanner/planner/internal/students"
)

const (
	ProductName    = "PersonalPlanner"
	ProductTagline = "PersonalPlanner - Sistema Profissional para Personal Trainers"

	pageWidth  = 210.0
	pageHeight = 297.0
	margin     = 20.0

	fontFamily = "Helvetica"

	// ptToMM converts a font size to its line height in millimetres (1.15 line factor).
	ptToMM = 25.4 / 72 * 1.15

	MaxRecentWorkouts = 5
	MaxRecentCardio   = 5

	// cardioCursorLimit suppresses the cardio section once the cursor gets close to the page bottom.
	cardioCursorLimit = 250.0
	footerY           = 285.0
)

type Input struct {
	Student    students.Student           `json:"student"`
	Workouts   []students.WorkoutSummary  `json:"workouts"`
	Cardio     []students.CardioSession   `json:"cardio"`
	Evolutions []students.EvolutionRecord `json:"evolutions"`
}

type ComposerParams struct {
	// Clock defaults to time.Now.
	Clock func() time.Time
	// Location is used for the generation date and cardio creation dates; UTC when nil.
	Location *time.Location
	// Measurer defaults to a FontMeasurer.
	Measurer TextMeasurer
}

// Composer lays out the student report. It does no I/O: everything it needs is passed in.
type Composer struct {
	clock    func() time.Time
	location *time.Location
	measurer TextMeasurer
}

func NewComposer(params ComposerParams) *Composer {
	c := &Composer{
		clock:    params.Clock,
		location: params.Location,
		measurer: params.Measurer,
	}
	if c.clock == nil {
		c.clock = time.Now
	}
	if c.location == nil {
		c.location = time.UTC
	}
	if c.measurer == nil {
		c.measurer = NewFontMeasurer()
	}
	return c
}

// layout keeps the running vertical cursor while sections are appended.
type layout struct {
	y        float64
	sections []Section
	current  *Section
}

func (l *layout) begin(name SectionName) {
	l.sections = append(l.sections, Section{Name: name})
	l.current = &l.sections[len(l.sections)-1]
}

func (l *layout) text(x float64, text string, size float64, bold bool) {
	l.current.Elements = append(l.current.Elements, Element{
		Kind:  KindText,
		X:     x,
		Y:     l.y,
		Lines: []string{text},
		Size:  size,
		Bold:  bold,
		Align: AlignLeft,
		Color: black,
	})
}

func (l *layout) heading(text string, size float64) {
	l.text(margin, text, size, true)
}

func (l *layout) document(fileName string) Document {
	return Document{
		Width:    pageWidth,
		Height:   pageHeight,
		FileName: fileName,
		Sections: l.sections,
	}
}

func (c *Composer) Compose(in Input) Document {
	now := c.clock()
	l := &layout{y: margin}

	c.header(l, now)
	c.profile(l, in.Student)
	c.evolution(l, in.Evolutions)
	c.workouts(l, in.Workouts)
	c.cardio(l, in.Cardio)
	c.footer(l)

	return l.document(FileName(in.Student.Name, now))
}

func (c *Composer) header(l *layout, now time.Time) {
	l.begin(SectionHeader)
	l.heading(ProductName, 20)
	l.text(pageWidth-margin-60, "Relatório gerado em: "+now.In(c.location).Format("02/01/2006"), 10, false)
	l.y += 15

	l.current.Elements = append(l.current.Elements, Element{
		Kind:      KindRule,
		X:         margin,
		Y:         l.y,
		X2:        pageWidth - margin,
		LineWidth: 0.5,
		Color:     ruleColor,
	})
	l.y += 10
}

func (c *Composer) profile(l *layout, student students.Student) {
	l.begin(SectionProfile)
	l.heading("Dados do Aluno", 16)
	l.y += 8

	line := func(text string) {
		l.text(margin, text, 11, false)
		l.y += 6
	}

	line("Nome: " + student.Name)
	if age, ok := student.Age.Get(); ok {
		line(fmt.Sprintf("Idade: %d anos", age))
	}
	if goal := strings.TrimSpace(student.Goal); goal != "" {
		line("Objetivo: " + goal)
	}
	if w, ok := student.InitialWeight.Get(); ok && w > 0 {
		line("Peso Inicial: " + formatNumber(w) + " kg")
	}
	if h, ok := student.Height.Get(); ok && h > 0 {
		line("Altura: " + formatNumber(h) + " cm")
	}

	if obs := strings.TrimSpace(student.Observations); obs != "" {
		const size = 10.0
		lines := wrapText(c.measurer, "Observações: "+obs, size, pageWidth-2*margin)
		l.current.Elements = append(l.current.Elements, Element{
			Kind:       KindText,
			X:          margin,
			Y:          l.y,
			Lines:      lines,
			Size:       size,
			Align:      AlignLeft,
			Color:      black,
			LineHeight: size * ptToMM,
		})
		l.y += float64(len(lines))*5 + 3
	}

	l.y += 5
}

func (c *Composer) evolution(l *layout, records []students.EvolutionRecord) {
	summary, err := evolution.Summarize(evolution.Normalize(records))
	if err != nil {
		return
	}

	l.begin(SectionEvolution)
	l.heading("Evolução de Peso", 14)
	l.y += 7

	l.text(margin, fmt.Sprintf("Primeiro peso: %s kg (%s)", formatNumber(summary.FirstWeight), summary.First.Date.Format()), 11, false)
	l.y += 6
	l.text(margin, fmt.Sprintf("Último peso: %s kg (%s)", formatNumber(summary.LastWeight), summary.Last.Date.Format()), 11, false)
	l.y += 6

	variation := "Variação: " + summary.FormatDelta() + " kg"
	if summary.ElapsedKnown {
		variation += fmt.Sprintf(" em %d dias", summary.ElapsedDays)
	}
	l.text(margin, variation, 11, false)
	l.y += 10
}

func (c *Composer) workouts(l *layout, workouts []students.WorkoutSummary) {
	recent := RecentWorkouts(workouts, MaxRecentWorkouts)
	if len(recent) == 0 {
		return
	}

	l.begin(SectionWorkouts)
	l.heading("Últimos Treinos", 14)
	l.y += 7
	for i, w := range recent {
		l.text(margin+5, fmt.Sprintf("%d. %s - %s", i+1, w.Name, w.Date.Format()), 10, false)
		l.y += 5
	}
	l.y += 5
}

func (c *Composer) cardio(l *layout, sessions []students.CardioSession) {
	recent := RecentCardio(sessions, MaxRecentCardio)
	if len(recent) == 0 || l.y >= cardioCursorLimit {
		return
	}

	l.begin(SectionCardio)
	l.heading("Últimos Cardios", 14)
	l.y += 7
	for i, s := range recent {
		l.text(margin+5, fmt.Sprintf("%d. %s", i+1, c.cardioLine(s)), 10, false)
		l.y += 5
	}
}

// cardioLine leaves out unknown equipment and intensity values.
func (c *Composer) cardioLine(s students.CardioSession) string {
	var line string
	if s.Equipment.IsValid() {
		line = s.Equipment.String()
	}

	date := s.Date.Format()
	if s.Date.IsZero() && !s.CreatedAt.IsZero() {
		date = s.CreatedAt.In(c.location).Format("02/01/2006")
	}
	switch {
	case date == "":
	case line == "":
		line = date
	default:
		line += " - " + date
	}
	if minutes, ok := s.Duration.Get(); ok {
		line += fmt.Sprintf(" %d min", minutes)
	}
	if s.Intensity.IsValid() {
		line += " (" + s.Intensity.String() + ")"
	}
	return strings.TrimSpace(line)
}

func (c *Composer) footer(l *layout) {
	l.begin(SectionFooter)
	l.current.Elements = append(l.current.Elements, Element{
		Kind:  KindText,
		X:     pageWidth / 2,
		Y:     footerY,
		Lines: []string{ProductTagline},
		Size:  8,
		Align: AlignCenter,
		Color: gray,
	})
}

// RecentWorkouts keeps the workouts that carry a date, newest first, at most limit of them.
// Undated workouts are plans, not performed sessions.
func RecentWorkouts(workouts []students.WorkoutSummary, limit int) []students.WorkoutSummary {
	dated := make([]students.WorkoutSummary, 0, len(workouts))
	for _, w := range workouts {
		if !w.Date.IsZero() {
			dated = append(dated, w)
		}
	}
	sort.SliceStable(dated, func(i, j int) bool {
		return newerDay(dated[i].Date, dated[j].Date)
	})
	if len(dated) > limit {
		dated = dated[:limit]
	}
	return dated
}

// RecentCardio orders sessions by creation time, newest first, at most limit of them.
func RecentCardio(sessions []students.CardioSession, limit int) []students.CardioSession {
	sorted := make([]students.CardioSession, len(sessions))
	copy(sorted, sessions)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})
	if len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted
}

// newerDay orders valid dates descending; unparseable ones go last.
func newerDay(a, b students.Day) bool {
	if a.Valid() && b.Valid() {
		return b.Time().Before(a.Time())
	}
	return a.Valid() && !b.Valid()
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
