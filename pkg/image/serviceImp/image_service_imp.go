package serviceImp

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"minascan/entities"
	"minascan/pkg/apperr"
	"minascan/pkg/image/repository"
	"minascan/pkg/image/service"
	"minascan/pkg/image/storage"
	"minascan/pkg/logger"
)

type imageSvc struct {
	r     repository.ImageRepository
	store storage.ObjectStore
	now   func() time.Time
}

func NewImageService(r repository.ImageRepository, store storage.ObjectStore) service.ImageService {
	return &imageSvc{r: r, store: store, now: time.Now}
}

func (s *imageSvc) Upload(ctx context.Context, uid uint, in service.UploadInput) (*entities.Image, error) {
	ct := strings.ToLower(strings.TrimSpace(in.ContentType))
	if !service.AllowedContentTypes[ct] {
		return nil, fmt.Errorf("%w: file type not allowed, only JPEG, PNG or JPG images", apperr.ErrBadRequest)
	}
	if len(in.Data) == 0 {
		return nil, fmt.Errorf("%w: empty file", apperr.ErrBadRequest)
	}
	if in.PlaguePercentage < 0 || in.PlaguePercentage > 100 {
		return nil, fmt.Errorf("%w: porcentaje_plaga must be between 0 and 100", apperr.ErrInvalid)
	}
	if in.DetectionID != nil {
		owner, err := s.r.DetectionOwner(*in.DetectionID)
		if err != nil {
			return nil, err
		}
		if owner != uid {
			return nil, fmt.Errorf("detection %w", apperr.ErrNotFound)
		}
	}

	key, url, err := s.put(ctx, in.FileName, ct, in.Data)
	if err != nil {
		return nil, storeError(err)
	}

	img := &entities.Image{
		UserID:           uid,
		DetectionID:      in.DetectionID,
		ImagePath:        url,
		ObjectKey:        key,
		ContentType:      ct,
		PlaguePercentage: in.PlaguePercentage,
	}
	if err := s.r.Create(img); err != nil {
		if derr := s.store.Delete(ctx, key); derr != nil {
			logger.LogError(logger.Get(), "image", "Upload", "orphaned object", map[string]any{"key": key}, derr)
		}
		return nil, fmt.Errorf("save image: %w", err)
	}
	return img, nil
}

// put stores data under the client's file name, or under a uuid-prefixed
// name when that key is already taken.
func (s *imageSvc) put(ctx context.Context, name, contentType string, data []byte) (string, string, error) {
	key := storage.CleanKey(name)
	if key == "" || filepath.Ext(key) == "" {
		ext := ".jpg"
		if contentType == "image/png" {
			ext = ".png"
		}
		key = uuid.NewString() + ext
		url, err := s.store.Put(ctx, key, contentType, data)
		return key, url, err
	}
	url, err := s.store.Put(ctx, key, contentType, data)
	if errors.Is(err, storage.ErrObjectExists) {
		key = uuid.NewString() + "_" + key
		url, err = s.store.Put(ctx, key, contentType, data)
	}
	return key, url, err
}

// storeError sorts object-store failures into 400 for credential problems
// and 500 for everything else.
func storeError(err error) error {
	switch {
	case errors.Is(err, storage.ErrNoCredentials):
		return apperr.Tag(apperr.ErrBadRequest, storage.ErrNoCredentials)
	case errors.Is(err, storage.ErrPartialCredentials):
		return apperr.Tag(apperr.ErrBadRequest, storage.ErrPartialCredentials)
	default:
		return apperr.Tag(apperr.ErrUpstream, fmt.Errorf("upload failed: %w", err))
	}
}

func (s *imageSvc) List(uid uint) ([]entities.Image, error) { return s.r.ListByUser(uid) }

func (s *imageSvc) Get(id, uid uint) (*entities.Image, error) { return s.r.FindOwned(id, uid) }

func (s *imageSvc) SetValidation(id, uid uint, p service.ValidationPatch) (*entities.Image, error) {
	img, err := s.r.FindByID(id)
	if err != nil {
		return nil, err
	}
	if img.DetectionID == nil {
		return nil, fmt.Errorf("%w: image is not attached to a detection", apperr.ErrInvalid)
	}
	owner, err := s.r.DetectionOwner(*img.DetectionID)
	if err != nil {
		return nil, err
	}
	if owner != uid {
		return nil, fmt.Errorf("%w: detection belongs to another user", apperr.ErrForbidden)
	}

	if p.IsValidated != nil {
		img.IsValidated = *p.IsValidated
		if img.IsValidated {
			now := s.now()
			img.ValidatedAt = &now
		} else {
			img.ValidatedAt = nil
		}
	}
	if p.IsFalsePositive != nil {
		img.IsFalsePositive = *p.IsFalsePositive
	}
	if err := s.r.Update(img); err != nil {
		return nil, err
	}
	return img, nil
}

func (s *imageSvc) Delete(ctx context.Context, id, uid uint) error {
	img, err := s.r.FindOwned(id, uid)
	if err != nil {
		return err
	}
	if img.ObjectKey != "" {
		if err := s.store.Delete(ctx, img.ObjectKey); err != nil {
			return storeError(err)
		}
	}
	return s.r.Delete(img)
}
