package serviceImp

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gorm.io/gorm"

	"minascan/entities"
	"minascan/pkg/apperr"
	"minascan/pkg/image/repositoryImp"
	"minascan/pkg/image/service"
	"minascan/pkg/image/storage"
	"minascan/pkg/testutil"
)

type failingStore struct{ err error }

func (f failingStore) Put(context.Context, string, string, []byte) (string, error) { return "", f.err }
func (f failingStore) Delete(context.Context, string) error                        { return f.err }

func setup(t *testing.T) (service.ImageService, *gorm.DB, *storage.Local) {
	t.Helper()
	db := testutil.NewDB(t)
	store, err := storage.NewLocal(t.TempDir(), "http://cdn.test/uploads")
	if err != nil {
		t.Fatal(err)
	}
	return NewImageService(repositoryImp.New(db), store), db, store
}

func stored(store *storage.Local, key string) bool {
	_, err := os.Stat(filepath.Join(store.Dir(), key))
	return err == nil
}

func jpeg(name string) service.UploadInput {
	return service.UploadInput{FileName: name, ContentType: "image/jpeg", Data: []byte{0xff, 0xd8, 0xff}, PlaguePercentage: 12}
}

func TestUploadStoresAndPersists(t *testing.T) {
	s, db, store := setup(t)
	u := testutil.SeedUser(t, db, "ana@farm.pe", entities.RoleEmployee)
	ctx := context.Background()

	img, err := s.Upload(ctx, u.ID, jpeg("hoja.jpg"))
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if img.ImagePath != "http://cdn.test/uploads/hoja.jpg" || img.PlaguePercentage != 12 {
		t.Errorf("unexpected image %+v", img)
	}
	if !stored(store, "hoja.jpg") {
		t.Errorf("Expected object stored")
	}

	again, err := s.Upload(ctx, u.ID, jpeg("hoja.jpg"))
	if err != nil {
		t.Fatal(err)
	}
	if again.ObjectKey == "hoja.jpg" || !strings.HasSuffix(again.ObjectKey, "_hoja.jpg") {
		t.Errorf("Expected uuid-prefixed key on collision, got %s", again.ObjectKey)
	}
	if !stored(store, again.ObjectKey) {
		t.Errorf("Expected second object stored under %s", again.ObjectKey)
	}

	if err := s.Delete(ctx, again.ID, u.ID); err != nil {
		t.Fatal(err)
	}
	if !stored(store, "hoja.jpg") {
		t.Errorf("Expected deleting the second upload to keep the first object")
	}

	list, _ := s.List(u.ID)
	if len(list) != 1 || list[0].ID != img.ID {
		t.Errorf("Expected only the first image left, got %+v", list)
	}
}

func TestUploadRejects(t *testing.T) {
	s, db, _ := setup(t)
	u := testutil.SeedUser(t, db, "ana@farm.pe", entities.RoleEmployee)
	other := testutil.SeedUser(t, db, "luis@farm.pe", entities.RoleEmployee)
	f := testutil.SeedField(t, db, other.ID, "Lote 9")
	d := entities.Detection{UserID: other.ID, FieldID: f.ID, Result: "trips"}
	db.Create(&d)

	gif := jpeg("a.gif")
	gif.ContentType = "image/gif"
	if _, err := s.Upload(context.Background(), u.ID, gif); !errors.Is(err, apperr.ErrBadRequest) {
		t.Errorf("Expected ErrBadRequest for gif, got %v", err)
	}
	pct := jpeg("a.jpg")
	pct.PlaguePercentage = 140
	if _, err := s.Upload(context.Background(), u.ID, pct); !errors.Is(err, apperr.ErrInvalid) {
		t.Errorf("Expected ErrInvalid for percentage, got %v", err)
	}
	foreign := jpeg("a.jpg")
	foreign.DetectionID = &d.ID
	if _, err := s.Upload(context.Background(), u.ID, foreign); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("Expected ErrNotFound for another user's detection, got %v", err)
	}
}

func TestUploadStoreErrorsMapToStatus(t *testing.T) {
	db := testutil.NewDB(t)
	u := testutil.SeedUser(t, db, "ana@farm.pe", entities.RoleEmployee)
	cases := []struct {
		err    error
		status int
		msg    string
	}{
		{storage.ErrNoCredentials, 400, "credentials not found"},
		{storage.ErrPartialCredentials, 400, "incomplete credentials"},
		{errors.New("bucket exploded"), 500, "upload failed: bucket exploded"},
	}
	for _, tc := range cases {
		s := NewImageService(repositoryImp.New(db), failingStore{tc.err})
		_, err := s.Upload(context.Background(), u.ID, jpeg("a.jpg"))
		if got := apperr.Status(err); got != tc.status {
			t.Errorf("%v: expected status %d, got %d", tc.err, tc.status, got)
		}
		if err == nil || err.Error() != tc.msg {
			t.Errorf("%v: expected message %q, got %v", tc.err, tc.msg, err)
		}
	}
	var n int64
	db.Model(&entities.Image{}).Count(&n)
	if n != 0 {
		t.Errorf("Expected no rows after failed uploads, got %d", n)
	}
}

func TestSetValidation(t *testing.T) {
	s, db, _ := setup(t)
	u := testutil.SeedUser(t, db, "ana@farm.pe", entities.RoleEmployee)
	other := testutil.SeedUser(t, db, "luis@farm.pe", entities.RoleEmployee)
	f := testutil.SeedField(t, db, u.ID, "Lote 1")
	mine := entities.Detection{UserID: u.ID, FieldID: f.ID, Result: "trips"}
	db.Create(&mine)

	loose, _ := s.Upload(context.Background(), u.ID, jpeg("loose.jpg"))
	yes, no := true, false
	if _, err := s.SetValidation(loose.ID, u.ID, service.ValidationPatch{IsValidated: &yes}); !errors.Is(err, apperr.ErrInvalid) {
		t.Errorf("Expected ErrInvalid without detection, got %v", err)
	}

	in := jpeg("attached.jpg")
	in.DetectionID = &mine.ID
	img, err := s.Upload(context.Background(), u.ID, in)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.SetValidation(img.ID, other.ID, service.ValidationPatch{IsValidated: &yes}); !errors.Is(err, apperr.ErrForbidden) {
		t.Errorf("Expected ErrForbidden for another user, got %v", err)
	}
	if _, err := s.SetValidation(9999, u.ID, service.ValidationPatch{}); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}

	got, err := s.SetValidation(img.ID, u.ID, service.ValidationPatch{IsValidated: &yes})
	if err != nil {
		t.Fatal(err)
	}
	if !got.IsValidated || got.ValidatedAt == nil || got.IsFalsePositive {
		t.Errorf("unexpected validation state %+v", got)
	}

	got, _ = s.SetValidation(img.ID, u.ID, service.ValidationPatch{IsFalsePositive: &yes})
	if !got.IsValidated || !got.IsFalsePositive {
		t.Errorf("Expected is_validated untouched by partial update, got %+v", got)
	}
	got, _ = s.SetValidation(img.ID, u.ID, service.ValidationPatch{IsValidated: &no})
	if got.IsValidated || got.ValidatedAt != nil || !got.IsFalsePositive {
		t.Errorf("Expected validation cleared and false positive kept, got %+v", got)
	}
}

func TestDeleteRemovesObject(t *testing.T) {
	s, db, store := setup(t)
	u := testutil.SeedUser(t, db, "ana@farm.pe", entities.RoleEmployee)
	other := testutil.SeedUser(t, db, "luis@farm.pe", entities.RoleEmployee)
	img, _ := s.Upload(context.Background(), u.ID, jpeg("x.png"))

	if err := s.Delete(context.Background(), img.ID, other.ID); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("Expected ErrNotFound for another user, got %v", err)
	}
	if err := s.Delete(context.Background(), img.ID, u.ID); err != nil {
		t.Fatal(err)
	}
	if stored(store, "x.png") {
		t.Errorf("Expected object removed")
	}
	if _, err := s.Get(img.ID, u.ID); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("Expected row removed, got %v", err)
	}
}
