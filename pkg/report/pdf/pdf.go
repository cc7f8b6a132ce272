package pdf

import (
	"fmt"
	"io"
	"time"

	"github.com/go-pdf/fpdf"

	"minascan/entities"
)

const (
	labelW = 50.0
	valueW = 120.0
	rowH   = 7.0
)

// Document is what ends up on the exported report.
type Document struct {
	Title     string
	Field     *entities.Field
	Detection *entities.Detection
	Content   string
	AIContent *string
}

// FileName returns reporte_{id}_{YYYYmmdd_HHMMSS}.pdf.
func FileName(id uint, at time.Time) string {
	return fmt.Sprintf("reporte_%d_%s.pdf", id, at.Format("20060102_150405"))
}

type row struct{ label, value string }

func fieldRows(f *entities.Field) []row {
	if f == nil {
		return []row{{"Nombre del Campo:", "N/A"}, {"Tamaño (hectáreas):", "N/A"}, {"Ubicación:", "N/A"}, {"Descripción:", "N/A"}}
	}
	desc := "N/A"
	if f.Description != nil && *f.Description != "" {
		desc = *f.Description
	}
	return []row{
		{"Nombre del Campo:", f.Name},
		{"Tamaño (hectáreas):", fmt.Sprintf("%g", f.SizeHectares)},
		{"Ubicación:", f.Location},
		{"Descripción:", desc},
	}
}

func detectionRows(d *entities.Detection) []row {
	if d == nil {
		return []row{{"Fecha:", "N/A"}, {"Hora de inicio:", "N/A"}, {"Hora de finalización:", "N/A"},
			{"Tipo de plaga:", "N/A"}, {"Valor de predicción:", "N/A"}, {"Porcentaje afectado:", "N/A"}}
	}
	return []row{
		{"Fecha:", d.DateDetection.Format("2006-01-02")},
		{"Hora de inicio:", d.TimeInitial},
		{"Hora de finalización:", d.TimeFinal},
		{"Tipo de plaga:", d.Result},
		{"Valor de predicción:", d.PredictionValue},
		{"Porcentaje afectado:", fmt.Sprintf("%g%%", d.PlaguePercentage)},
	}
}

// Render writes doc as a Letter-size PDF.
func Render(w io.Writer, doc Document) error {
	p := fpdf.New("P", "mm", "Letter", "")
	tr := p.UnicodeTranslatorFromDescriptor("")
	p.SetTitle(tr(doc.Title), false)
	p.SetCreator("MinaScan", false)
	p.AddPage()

	p.SetFont("Helvetica", "B", 18)
	p.MultiCell(0, 9, tr(doc.Title), "", "C", false)
	p.Ln(8)

	heading := func(s string) {
		p.SetFont("Helvetica", "B", 13)
		p.CellFormat(0, 8, tr(s), "", 1, "L", false, 0, "")
		p.Ln(2)
	}
	table := func(rows []row) {
		p.SetFont("Helvetica", "", 10)
		for _, r := range rows {
			lines := p.SplitText(tr(r.value), valueW-2)
			h := rowH * float64(max(1, len(lines)))
			p.SetFillColor(190, 190, 190)
			p.CellFormat(labelW, h, tr(r.label), "1", 0, "L", true, 0, "")
			p.SetFillColor(245, 245, 220)
			p.MultiCell(valueW, rowH, tr(r.value), "1", "L", true)
		}
		p.Ln(8)
	}

	heading("INFORMACIÓN DEL CAMPO")
	table(fieldRows(doc.Field))
	heading("INFORMACIÓN DE LA DETECCIÓN")
	table(detectionRows(doc.Detection))

	heading("CONTENIDO DEL REPORTE")
	p.SetFont("Helvetica", "", 10)
	body := []string{doc.Content}
	if doc.AIContent != nil && *doc.AIContent != "" {
		body = Paragraphs(*doc.AIContent)
	}
	for _, para := range body {
		p.MultiCell(0, 5.5, tr(para), "", "L", false)
		p.Ln(4)
	}

	if err := p.Error(); err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	return p.Output(w)
}
