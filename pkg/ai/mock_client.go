// pkg/ai/mock_client.go

package ai

import (
	"context"
	"fmt"
	"strings"
)

type mockClient struct{}

// NewMock writes one short paragraph per report section, offline.
func NewMock() Client { return &mockClient{} }

func (m *mockClient) GenerateReport(ctx context.Context, prompt string) (string, error) {
	pest := lineValue(prompt, "- Tipo de plaga detectada:")
	field := lineValue(prompt, "- Nombre:")
	paras := make([]string, 0, len(ReportSections))
	for i, s := range ReportSections {
		paras = append(paras, fmt.Sprintf("%d. %s\nCampo %s, plaga %s.", i+1, s, field, pest))
	}
	return strings.Join(paras, "\n\n"), nil
}

func lineValue(text, prefix string) string {
	for _, l := range strings.Split(text, "\n") {
		l = strings.TrimSpace(l)
		if strings.HasPrefix(l, prefix) {
			return strings.TrimSpace(strings.TrimPrefix(l, prefix))
		}
	}
	return "N/A"
}
