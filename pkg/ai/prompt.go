// pkg/ai/prompt.go

package ai

import (
	"fmt"
	"strings"

	"minascan/entities"
)

// ReportSections are the headings the model is asked to write, in order.
var ReportSections = []string{
	"Resumen ejecutivo",
	"Análisis de la situación actual",
	"Evaluación del impacto en el campo",
	"Recomendaciones técnicas",
	"Plan de acción sugerido",
	"Consideraciones de seguimiento",
}

func orDefault(s *string, def string) string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return def
	}
	return *s
}

// ReportPrompt renders the field and detection facts plus the user's notes.
func ReportPrompt(f *entities.Field, d *entities.Detection, notes string) string {
	var b strings.Builder
	b.WriteString("Genera un reporte técnico detallado sobre una detección de plagas en un campo agrícola con la siguiente información:\n\n")

	b.WriteString("INFORMACIÓN DEL CAMPO:\n")
	fmt.Fprintf(&b, "- Nombre: %s\n", f.Name)
	fmt.Fprintf(&b, "- Tamaño: %g hectáreas\n", f.SizeHectares)
	fmt.Fprintf(&b, "- Ubicación: %s\n", f.Location)
	fmt.Fprintf(&b, "- Descripción: %s\n\n", orDefault(f.Description, "No disponible"))

	b.WriteString("INFORMACIÓN DE LA DETECCIÓN:\n")
	fmt.Fprintf(&b, "- Fecha: %s\n", d.DateDetection.Format("2006-01-02"))
	fmt.Fprintf(&b, "- Hora de inicio: %s\n", d.TimeInitial)
	fmt.Fprintf(&b, "- Hora de finalización: %s\n", d.TimeFinal)
	fmt.Fprintf(&b, "- Tipo de plaga detectada: %s\n", d.Result)
	fmt.Fprintf(&b, "- Valor de predicción: %s\n", d.PredictionValue)
	fmt.Fprintf(&b, "- Porcentaje del campo afectado: %g%%\n\n", d.PlaguePercentage)

	b.WriteString("NOTAS ADICIONALES DEL USUARIO:\n")
	if strings.TrimSpace(notes) == "" {
		notes = "No hay notas adicionales"
	}
	b.WriteString(notes + "\n\n")

	b.WriteString("El reporte debe incluir:\n")
	for i, s := range ReportSections {
		fmt.Fprintf(&b, "%d. %s\n", i+1, s)
	}
	b.WriteString("\nFormatea el reporte de manera profesional y técnica, adecuado para uso agrícola. Separa los párrafos con una línea en blanco.")
	return b.String()
}
