package report

import (
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"
)

// RenderPDF draws the document on a single A4 page and writes the PDF to w.
func RenderPDF(doc Document, w io.Writer) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(margin, margin, margin)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetTitle(doc.FileName, true)
	pdf.SetCreator(ProductName, true)
	pdf.AddPage()

	tr := pdf.UnicodeTranslatorFromDescriptor("")
	for _, section := range doc.Sections {
		for _, e := range section.Elements {
			switch e.Kind {
			case KindRule:
				pdf.SetDrawColor(e.Color.R, e.Color.G, e.Color.B)
				pdf.SetLineWidth(e.LineWidth)
				pdf.Line(e.X, e.Y, e.X2, e.Y)
			case KindText:
				pdf.SetFont(fontFamily, fontStyle(e.Bold), e.Size)
				pdf.SetTextColor(e.Color.R, e.Color.G, e.Color.B)
				for i, line := range e.Lines {
					text := tr(line)
					x := e.X
					if e.Align == AlignCenter {
						x -= pdf.GetStringWidth(text) / 2
					}
					pdf.Text(x, e.Y+float64(i)*e.LineHeight, text)
				}
			default:
				return fmt.Errorf("unknown element kind %q in section %s", e.Kind, section.Name)
			}
		}
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}
