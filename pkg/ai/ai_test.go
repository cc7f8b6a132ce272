package ai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"minascan/entities"
	"minascan/pkg/apperr"
)

func sample() (*entities.Field, *entities.Detection) {
	desc := "ladera norte"
	f := &entities.Field{Name: "Lote 3", SizeHectares: 4.5, Location: "-13.16,-74.22", Description: &desc}
	d := &entities.Detection{
		DateDetection: time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC),
		TimeInitial:   "08:00:00", TimeFinal: "08:30:00",
		Result: "mosca_blanca", PredictionValue: "0.91", PlaguePercentage: 17.5,
	}
	return f, d
}

func TestReportPrompt(t *testing.T) {
	f, d := sample()
	p := ReportPrompt(f, d, "")
	for _, want := range []string{"- Nombre: Lote 3", "- Tamaño: 4.5 hectáreas", "- Descripción: ladera norte",
		"- Fecha: 2024-05-02", "- Tipo de plaga detectada: mosca_blanca", "17.5%", "No hay notas adicionales",
		"6. Consideraciones de seguimiento"} {
		if !strings.Contains(p, want) {
			t.Errorf("Expected prompt to contain %q", want)
		}
	}
	f.Description = nil
	if p := ReportPrompt(f, d, "revisar riego"); !strings.Contains(p, "No disponible") || !strings.Contains(p, "revisar riego") {
		t.Errorf("Expected default description and notes, got %s", p)
	}
}

func TestMockIsDeterministic(t *testing.T) {
	f, d := sample()
	a, _ := NewMock().GenerateReport(context.Background(), ReportPrompt(f, d, ""))
	b, _ := NewMock().GenerateReport(context.Background(), ReportPrompt(f, d, ""))
	if a != b {
		t.Errorf("Expected identical output")
	}
	if n := len(strings.Split(a, "\n\n")); n != len(ReportSections) {
		t.Errorf("Expected %d paragraphs, got %d", len(ReportSections), n)
	}
	if !strings.Contains(a, "mosca_blanca") {
		t.Errorf("Expected pest name in mock output: %s", a)
	}
}

func TestGeminiGenerateContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1beta/models/gemini-test:generateContent" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("x-goog-api-key") != "k" {
			t.Errorf("Expected api key header")
		}
		var body struct {
			Contents []geminiContent `json:"contents"`
		}
		json.NewDecoder(r.Body).Decode(&body)
		if len(body.Contents) != 1 || body.Contents[0].Parts[0].Text != "hola" {
			t.Errorf("unexpected body %+v", body)
		}
		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"Resumen "},{"text":"ejecutivo"}]}}]}`))
	}))
	defer srv.Close()

	got, err := NewGemini(srv.URL, "k", "gemini-test").GenerateReport(context.Background(), "hola")
	if err != nil {
		t.Fatal(err)
	}
	if got != "Resumen ejecutivo" {
		t.Errorf("Expected joined parts, got %q", got)
	}
}

func TestGeminiErrorsAreUpstream(t *testing.T) {
	cases := map[string]http.HandlerFunc{
		"status": func(w http.ResponseWriter, r *http.Request) { http.Error(w, "quota", http.StatusTooManyRequests) },
		"empty":  func(w http.ResponseWriter, r *http.Request) { w.Write([]byte(`{"candidates":[]}`)) },
		"junk":   func(w http.ResponseWriter, r *http.Request) { w.Write([]byte(`<html>`)) },
	}
	for name, h := range cases {
		srv := httptest.NewServer(h)
		_, err := NewGemini(srv.URL, "k", "m").GenerateReport(context.Background(), "x")
		if !errors.Is(err, apperr.ErrUpstream) {
			t.Errorf("%s: expected ErrUpstream, got %v", name, err)
		}
		srv.Close()
	}
}

func TestOpenAIChatCompletions(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" || r.Header.Get("Authorization") != "Bearer k" {
			t.Errorf("unexpected request %s %s", r.URL.Path, r.Header.Get("Authorization"))
		}
		w.Write([]byte(`{"choices":[{"message":{"content":"  texto  "}}]}`))
	}))
	defer srv.Close()

	got, err := NewOpenAI(srv.URL+"/", "k", "gpt").GenerateReport(context.Background(), "x")
	if err != nil || got != "texto" {
		t.Errorf("Expected trimmed content, got %q (%v)", got, err)
	}
}
