package report

import (
	"strings"
	"sync"

	"github.com/go-pdf/fpdf"
)

// TextMeasurer reports the printed width of a string, in millimetres, for the report font.
type TextMeasurer interface {
	StringWidth(text string, size float64, bold bool) float64
}

// FontMeasurer measures text with the Helvetica core font metrics of the PDF renderer.
type FontMeasurer struct {
	mu        sync.Mutex
	pdf       *fpdf.Fpdf
	translate func(string) string
}

var _ TextMeasurer = (*FontMeasurer)(nil)

func NewFontMeasurer() *FontMeasurer {
	pdf := fpdf.New("P", "mm", "A4", "")
	return &FontMeasurer{
		pdf:       pdf,
		translate: pdf.UnicodeTranslatorFromDescriptor(""),
	}
}

func (m *FontMeasurer) StringWidth(text string, size float64, bold bool) float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pdf.SetFont(fontFamily, fontStyle(bold), size)
	return m.pdf.GetStringWidth(m.translate(text))
}

// wrapText splits text into lines no wider than maxWidth, breaking on spaces
// and splitting words that do not fit on a line of their own.
func wrapText(m TextMeasurer, text string, size, maxWidth float64) []string {
	var lines []string
	for _, paragraph := range strings.Split(text, "\n") {
		words := strings.Fields(paragraph)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}

		line := ""
		for _, word := range words {
			candidate := word
			if line != "" {
				candidate = line + " " + word
			}
			if m.StringWidth(candidate, size, false) <= maxWidth {
				line = candidate
				continue
			}
			if line != "" {
				lines = append(lines, line)
			}
			line = word
			for m.StringWidth(line, size, false) > maxWidth {
				head, tail := splitWord(m, line, size, maxWidth)
				lines = append(lines, head)
				line = tail
			}
		}
		lines = append(lines, line)
	}
	return lines
}

func splitWord(m TextMeasurer, word string, size, maxWidth float64) (string, string) {
	runes := []rune(word)
	cut := 1
	for cut < len(runes) && m.StringWidth(string(runes[:cut+1]), size, false) <= maxWidth {
		cut++
	}
	return string(runes[:cut]), string(runes[cut:])
}

func fontStyle(bold bool) string {
	if bold {
		return "B"
	}
	return ""
}
