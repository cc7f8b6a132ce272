package serviceImp

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"minascan/entities"
	"minascan/pkg/ai"
	"minascan/pkg/apperr"
	"minascan/pkg/logger"
	"minascan/pkg/report/pdf"
	repo "minascan/pkg/report/repository"
	"minascan/pkg/report/service"
)

type FieldFinder interface {
	Get(id, uid uint) (*entities.Field, error)
}

type DetectionFinder interface {
	Get(id, uid uint) (*entities.Detection, error)
}

type reportSvc struct {
	r          repo.ReportRepository
	fields     FieldFinder
	detections DetectionFinder
	ai         ai.Client
	dir        string
	now        func() time.Time
}

func NewReportService(r repo.ReportRepository, fields FieldFinder, detections DetectionFinder, client ai.Client, reportsDir string) service.ReportService {
	return &reportSvc{r: r, fields: fields, detections: detections, ai: client, dir: reportsDir, now: time.Now}
}

// facts loads the caller's field and detection for a report.
func (s *reportSvc) facts(uid, fieldID, detectionID uint) (*entities.Field, *entities.Detection, error) {
	f, err := s.fields.Get(fieldID, uid)
	if err != nil {
		return nil, nil, err
	}
	d, err := s.detections.Get(detectionID, uid)
	if err != nil {
		return nil, nil, err
	}
	if d.FieldID != f.ID {
		return nil, nil, fmt.Errorf("%w: detection %d was not taken on field %d", apperr.ErrInvalid, d.ID, f.ID)
	}
	return f, d, nil
}

func (s *reportSvc) Create(uid uint, in service.CreateInput) (*entities.Report, error) {
	if _, _, err := s.facts(uid, in.FieldID, in.DetectionID); err != nil {
		return nil, err
	}
	rep := &entities.Report{
		UserID:      uid,
		FieldID:     in.FieldID,
		DetectionID: in.DetectionID,
		Title:       strings.TrimSpace(in.Title),
		Content:     in.Content,
	}
	if err := s.r.Create(rep); err != nil {
		return nil, fmt.Errorf("create report: %w", err)
	}
	return rep, nil
}

func (s *reportSvc) GenerateAI(ctx context.Context, uid uint, in service.GenerateInput) (*entities.Report, error) {
	f, d, err := s.facts(uid, in.FieldID, in.DetectionID)
	if err != nil {
		return nil, err
	}
	notes := ""
	if in.AdditionalNotes != nil {
		notes = *in.AdditionalNotes
	}
	text, err := s.ai.GenerateReport(ctx, ai.ReportPrompt(f, d, notes))
	if err != nil {
		return nil, fmt.Errorf("generate report content: %w", err)
	}
	rep := &entities.Report{
		UserID:             uid,
		FieldID:            f.ID,
		DetectionID:        d.ID,
		Title:              strings.TrimSpace(in.Title),
		Content:            service.AIContentNote,
		AIGeneratedContent: &text,
	}
	if err := s.r.Create(rep); err != nil {
		return nil, fmt.Errorf("create report: %w", err)
	}
	return rep, nil
}

func (s *reportSvc) List(uid uint) ([]entities.Report, error) { return s.r.ListByUser(uid) }

func (s *reportSvc) Get(id, uid uint) (*entities.Report, error) { return s.r.FindByID(id, uid) }

func (s *reportSvc) ListForUsers(uids []uint) ([]entities.Report, error) {
	return s.r.ListByUsers(uids)
}

func (s *reportSvc) Update(id, uid uint, p service.ReportPatch) (*entities.Report, error) {
	rep, err := s.r.FindByID(id, uid)
	if err != nil {
		return nil, err
	}
	if p.Title != nil {
		rep.Title = strings.TrimSpace(*p.Title)
	}
	if p.Content != nil {
		rep.Content = *p.Content
	}
	if err := s.r.Update(rep); err != nil {
		return nil, err
	}
	return rep, nil
}

func (s *reportSvc) Delete(id, uid uint) error {
	rep, err := s.r.FindByID(id, uid)
	if err != nil {
		return err
	}
	removePDF(rep.PDFPath)
	return s.r.Delete(rep)
}

func (s *reportSvc) ExportPDF(id, uid uint) (string, error) {
	rep, err := s.r.FindByID(id, uid)
	if err != nil {
		return "", err
	}
	doc := pdf.Document{Title: rep.Title, Content: rep.Content, AIContent: rep.AIGeneratedContent}
	// a vanished field or detection prints as N/A
	if f, err := s.fields.Get(rep.FieldID, uid); err == nil {
		doc.Field = f
	}
	if d, err := s.detections.Get(rep.DetectionID, uid); err == nil {
		doc.Detection = d
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("create reports dir: %w", err)
	}
	path := filepath.Join(s.dir, pdf.FileName(rep.ID, s.now()))
	out, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create pdf: %w", err)
	}
	if err := pdf.Render(out, doc); err != nil {
		out.Close()
		os.Remove(path)
		return "", err
	}
	if err := out.Close(); err != nil {
		return "", fmt.Errorf("write pdf: %w", err)
	}

	previous := rep.PDFPath
	rep.PDFPath = &path
	if err := s.r.Update(rep); err != nil {
		return "", err
	}
	if previous != nil && *previous != path {
		removePDF(previous)
	}
	return path, nil
}

func removePDF(path *string) {
	if path == nil || *path == "" {
		return
	}
	if err := os.Remove(*path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logger.LogError(logger.Get(), "report", "removePDF", "could not remove pdf", map[string]any{"path": *path}, err)
	}
}
