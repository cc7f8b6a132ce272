package serviceImp

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"minascan/entities"
	"minascan/pkg/apperr"
	"minascan/pkg/detection/annotate"
	"minascan/pkg/detection/inference"
	repo "minascan/pkg/detection/repository"
	"minascan/pkg/detection/service"
)

// FieldFinder checks field ownership.
type FieldFinder interface {
	Get(id, uid uint) (*entities.Field, error)
}

type detectionSvc struct {
	r        repo.DetectionRepository
	fields   FieldFinder
	detector inference.Detector
	now      func() time.Time
}

func NewDetectionService(r repo.DetectionRepository, fields FieldFinder, detector inference.Detector) service.DetectionService {
	return &detectionSvc{r: r, fields: fields, detector: detector, now: time.Now}
}

func (s *detectionSvc) Analyze(ctx context.Context, uid uint, in service.AnalyzeInput) (*service.AnalyzeResult, error) {
	if !strings.HasPrefix(strings.ToLower(in.ContentType), "image/") {
		return nil, fmt.Errorf("%w: file must be an image", apperr.ErrBadRequest)
	}
	if p := in.PlaguePercentage; p != nil && (*p < 0 || *p > 100) {
		return nil, fmt.Errorf("%w: plague_percentage must be between 0 and 100", apperr.ErrInvalid)
	}
	img, err := annotate.Decode(in.Image)
	if err != nil {
		return nil, fmt.Errorf("%w: could not process image", apperr.ErrBadRequest)
	}
	// the detector must see the same oriented pixels the boxes are clamped to and drawn on
	upright, err := annotate.EncodeJPEG(img)
	if err != nil {
		return nil, err
	}
	if in.FieldID != nil {
		if _, err := s.fields.Get(*in.FieldID, uid); err != nil {
			return nil, err
		}
	}

	started := s.now()
	preds, err := s.detector.Detect(ctx, upright)
	if err != nil {
		return nil, fmt.Errorf("run inference: %w", err)
	}
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	pests := make([]entities.DetectedPest, 0, len(preds))
	for _, p := range preds {
		pests = append(pests, entities.DetectedPest{
			ClassName:   p.Class,
			Confidence:  p.Confidence,
			BoundingBox: annotate.ToCorners(p.X, p.Y, p.Width, p.Height, w, h),
		})
	}

	res := &service.AnalyzeResult{
		Success:     true,
		Message:     fmt.Sprintf("Se detectaron %d plagas", len(pests)),
		Detections:  pests,
		ImageWidth:  w,
		ImageHeight: h,
	}
	if in.ReturnImage && len(pests) > 0 {
		b64, err := annotate.EncodeBase64JPEG(annotate.Draw(img, pests))
		if err != nil {
			return nil, err
		}
		res.ProcessedImageBase64 = &b64
	}

	if in.FieldID != nil {
		d := summarize(uid, *in.FieldID, pests, started, s.now())
		if in.PlaguePercentage != nil {
			d.PlaguePercentage = *in.PlaguePercentage
		}
		if err := d.SetBoxes(pests); err != nil {
			return nil, err
		}
		if err := s.r.Create(d, nil); err != nil {
			return nil, fmt.Errorf("save detection: %w", err)
		}
		res.DetectionID = &d.ID
	}
	return res, nil
}

// summarize labels a detection with its most confident class.
func summarize(uid, fieldID uint, pests []entities.DetectedPest, start, end time.Time) *entities.Detection {
	d := &entities.Detection{
		UserID:        uid,
		FieldID:       fieldID,
		DateDetection: start,
		TimeInitial:   start.Format(clockLayout),
		TimeFinal:     end.Format(clockLayout),
		Result:        "sin plagas",
	}
	if len(pests) == 0 {
		d.PredictionValue = "0.00"
		return d
	}
	sorted := append([]entities.DetectedPest(nil), pests...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Confidence > sorted[j].Confidence })
	d.Result = sorted[0].ClassName
	d.Confidence = sorted[0].Confidence
	d.PredictionValue = strconv.FormatFloat(sorted[0].Confidence, 'f', 2, 64)
	return d
}

func (s *detectionSvc) Save(uid uint, in service.SaveInput) (*entities.Detection, error) {
	start, err := ParseClock(in.TimeInitial)
	if err != nil {
		return nil, fmt.Errorf("%w: time_initial: %v", apperr.ErrInvalid, err)
	}
	end, err := ParseClock(in.TimeFinal)
	if err != nil {
		return nil, fmt.Errorf("%w: time_final: %v", apperr.ErrInvalid, err)
	}
	if end.Before(start) {
		return nil, fmt.Errorf("%w: time_final is before time_initial", apperr.ErrInvalid)
	}
	date, err := ParseDate(in.DateDetection)
	if err != nil {
		return nil, fmt.Errorf("%w: date_detection: %v", apperr.ErrInvalid, err)
	}
	if in.PlaguePercentage < 0 || in.PlaguePercentage > 100 {
		return nil, fmt.Errorf("%w: plague_percentage must be between 0 and 100", apperr.ErrInvalid)
	}
	if _, err := s.fields.Get(in.FieldID, uid); err != nil {
		return nil, err
	}

	d := &entities.Detection{
		UserID:           uid,
		FieldID:          in.FieldID,
		DateDetection:    date,
		TimeInitial:      start.Format(clockLayout),
		TimeFinal:        end.Format(clockLayout),
		Result:           strings.TrimSpace(in.Result),
		PredictionValue:  strings.TrimSpace(in.PredictionValue),
		PlaguePercentage: in.PlaguePercentage,
	}
	if v, err := strconv.ParseFloat(strings.TrimSuffix(d.PredictionValue, "%"), 64); err == nil {
		d.Confidence = v
	}
	if err := s.r.Create(d, in.ImageID); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *detectionSvc) List(uid uint, fieldID *uint) ([]entities.Detection, error) {
	return s.r.List(uid, fieldID)
}

func (s *detectionSvc) Get(id, uid uint) (*entities.Detection, error) { return s.r.FindByID(id, uid) }

func (s *detectionSvc) Delete(id, uid uint) error {
	d, err := s.r.FindByID(id, uid)
	if err != nil {
		return err
	}
	return s.r.Delete(d)
}

const clockLayout = "15:04:05"

// ParseClock accepts HH:MM:SS or HH:MM.
func ParseClock(v string) (time.Time, error) {
	v = strings.TrimSpace(v)
	for _, layout := range []string{clockLayout, "15:04"} {
		if t, err := time.Parse(layout, v); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid time %q, expected HH:MM[:SS]", v)
}

// ParseDate accepts YYYY-MM-DD, RFC3339 and "YYYY-MM-DD HH:MM:SS".
func ParseDate(v string) (time.Time, error) {
	v = strings.TrimSpace(v)
	for _, layout := range []string{"2006-01-02", time.RFC3339, "2006-01-02T15:04:05", "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, v); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", v)
}
