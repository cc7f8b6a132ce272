package pdf

import (
	"bytes"
	"reflect"
	"testing"
	"time"

	"minascan/entities"
)

func TestParagraphs(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want []string
	}{
		{"plain", "Uno.\n\nDos.\n \n\nTres.", []string{"Uno.", "Dos.", "Tres."}},
		{"markdown", "## Resumen\n**Alerta** alta\n\n- regar", []string{"Resumen\nAlerta alta", "- regar"}},
		{"html", "<h2>Resumen</h2><p>Plaga <b>activa</b></p><ul><li>regar</li></ul>", []string{"Resumen", "Plaga activa", "- regar"}},
		{"empty", "  \n\n ", nil},
	}
	for _, tc := range cases {
		if got := Paragraphs(tc.in); !reflect.DeepEqual(got, tc.want) {
			t.Errorf("%s: expected %q, got %q", tc.name, tc.want, got)
		}
	}
}

func TestFileName(t *testing.T) {
	at := time.Date(2024, 5, 2, 14, 3, 9, 0, time.UTC)
	if got := FileName(7, at); got != "reporte_7_20240502_140309.pdf" {
		t.Errorf("unexpected name %s", got)
	}
}

func TestRender(t *testing.T) {
	desc := "ladera norte"
	ai := "Resumen ejecutivo\n\nAcción: fumigación localizada."
	doc := Document{
		Title:     "Inspección Lote 3",
		Field:     &entities.Field{Name: "Lote 3", SizeHectares: 4.5, Location: "-13.16,-74.22", Description: &desc},
		Detection: &entities.Detection{TimeInitial: "08:00:00", TimeFinal: "08:30:00", Result: "trips", PredictionValue: "0.8"},
		Content:   "Reporte generado automáticamente por Gemini AI.",
		AIContent: &ai,
	}
	var buf bytes.Buffer
	if err := Render(&buf, doc); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")) {
		t.Errorf("Expected a PDF header, got %q", buf.Bytes()[:8])
	}

	buf.Reset()
	if err := Render(&buf, Document{Title: "Sin datos", Content: "texto"}); err != nil {
		t.Errorf("Expected render without field or detection, got %v", err)
	}
}
