package report

import (
	"regexp"
	"time"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// FileName derives the report file name from the student name and the UTC date of now,
// e.g. relatorio_Ana_Souza_2024-03-01.pdf.
func FileName(studentName string, now time.Time) string {
	return fileName("relatorio_", studentName, now, ".pdf")
}

// WorkbookFileName names the evolution chart export, e.g. evolucao_Ana_Souza_2024-03-01.xlsx.
func WorkbookFileName(studentName string, now time.Time) string {
	return fileName("evolucao_", studentName, now, ".xlsx")
}

func fileName(prefix, studentName string, now time.Time, ext string) string {
	return prefix + whitespaceRun.ReplaceAllString(studentName, "_") + "_" + now.UTC().Format("2006-01-02") + ext
}
