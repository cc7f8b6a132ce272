// Package testutil holds helpers shared by package tests.
package testutil

import (
	"path/filepath"
	"testing"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"minascan/database"
	"minascan/entities"
	"minascan/pkg/crypto"
)

const EncryptionKey = "test-encryption-key"

// NewDB opens a migrated sqlite database in the test's temp dir.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()
	c, err := crypto.NewCipher(EncryptionKey)
	if err != nil {
		t.Fatalf("cipher: %v", err)
	}
	crypto.Register(c)
	db, err := database.Open("sqlite://"+filepath.Join(t.TempDir(), "minascan_test.db"), nil)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

// SeedUser inserts an active user with password "secret".
func SeedUser(t testing.TB, db *gorm.DB, email string, role entities.Role) *entities.User {
	t.Helper()
	hashed, _ := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
	u := &entities.User{Email: email, HashedPassword: string(hashed), FullName: email, Role: role, IsActive: true}
	if err := db.Create(u).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return u
}

func SeedField(t testing.TB, db *gorm.DB, userID uint, name string) *entities.Field {
	t.Helper()
	f := &entities.Field{UserID: userID, Name: name, SizeHectares: 2.5, CantPlants: 1200, Location: "-12.05,-77.04"}
	if err := db.Create(f).Error; err != nil {
		t.Fatalf("seed field: %v", err)
	}
	return f
}
