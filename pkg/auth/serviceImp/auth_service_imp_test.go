package serviceImp

import (
	"errors"
	"regexp"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"minascan/entities"
	"minascan/pkg/apperr"
	"minascan/pkg/auth/repositoryImp"
	"minascan/pkg/auth/service"
	"minascan/pkg/auth/token"
	"minascan/pkg/testutil"
)

func newService(t *testing.T) service.AuthService {
	t.Helper()
	db := testutil.NewDB(t)
	tm, err := token.NewManager("test-secret", "HS256", 30*time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	return WithCost(NewAuthService(repositoryImp.New(db), tm), bcrypt.MinCost)
}

func register(t *testing.T, s service.AuthService, email string, role entities.Role) *entities.User {
	t.Helper()
	u, err := s.Register(service.RegisterInput{Email: email, FullName: "User " + email, Role: role, Password: "secret1"})
	if err != nil {
		t.Fatalf("Register(%s): %v", email, err)
	}
	return u
}

func TestGenerateLinkingCode(t *testing.T) {
	re := regexp.MustCompile(`^[A-Z0-9]{8}$`)
	for i := 0; i < 50; i++ {
		code, err := GenerateLinkingCode()
		if err != nil {
			t.Fatal(err)
		}
		if !re.MatchString(code) {
			t.Fatalf("Expected 8 chars of [A-Z0-9], got %q", code)
		}
	}
}

func TestRegister(t *testing.T) {
	s := newService(t)

	boss := register(t, s, "Boss@Farm.pe", entities.RoleBoss)
	if boss.Email != "boss@farm.pe" {
		t.Errorf("Expected normalized email, got %s", boss.Email)
	}
	if boss.LinkingCode == nil || len(*boss.LinkingCode) != 8 {
		t.Errorf("Expected boss to get a linking code, got %v", boss.LinkingCode)
	}
	if boss.HashedPassword == "secret1" {
		t.Errorf("Expected password to be hashed")
	}

	emp := register(t, s, "emp@farm.pe", entities.RoleEmployee)
	if emp.LinkingCode != nil {
		t.Errorf("Expected no linking code for employee")
	}

	_, err := s.Register(service.RegisterInput{Email: "boss@farm.pe", FullName: "Dup", Role: entities.RoleEmployee, Password: "secret1"})
	if !errors.Is(err, apperr.ErrConflict) {
		t.Errorf("Expected ErrConflict for duplicate email, got %v", err)
	}
}

func TestLoginAndToken(t *testing.T) {
	s := newService(t)
	u := register(t, s, "ana@farm.pe", entities.RoleEmployee)

	if _, err := s.Login("ana@farm.pe", "wrong"); !errors.Is(err, apperr.ErrUnauthorized) {
		t.Errorf("Expected ErrUnauthorized for bad password, got %v", err)
	}
	if _, err := s.Login("nobody@farm.pe", "secret1"); !errors.Is(err, apperr.ErrUnauthorized) {
		t.Errorf("Expected ErrUnauthorized for unknown email, got %v", err)
	}

	res, err := s.Login("ANA@farm.pe", "secret1")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if res.TokenType != "bearer" || res.AccessToken == "" || res.User.ID != u.ID {
		t.Errorf("unexpected login result %+v", res)
	}

	got, err := s.UserFromToken(res.AccessToken)
	if err != nil {
		t.Fatalf("UserFromToken: %v", err)
	}
	if got.ID != u.ID {
		t.Errorf("Expected user %d, got %d", u.ID, got.ID)
	}
	if _, err := s.UserFromToken("garbage"); !errors.Is(err, apperr.ErrUnauthorized) {
		t.Errorf("Expected ErrUnauthorized for garbage token, got %v", err)
	}
}

func TestUpdateMeIsPartial(t *testing.T) {
	s := newService(t)
	u := register(t, s, "ana@farm.pe", entities.RoleEmployee)
	other := register(t, s, "luis@farm.pe", entities.RoleEmployee)

	name := "Ana María"
	got, err := s.UpdateMe(u, service.UserPatch{FullName: &name})
	if err != nil {
		t.Fatal(err)
	}
	if got.FullName != name || got.Email != "ana@farm.pe" || !got.IsActive {
		t.Errorf("Expected only full_name to change, got %+v", got)
	}

	taken := other.Email
	if _, err := s.UpdateMe(u, service.UserPatch{Email: &taken}); !errors.Is(err, apperr.ErrConflict) {
		t.Errorf("Expected ErrConflict for taken email, got %v", err)
	}
}

func TestLinkingFlow(t *testing.T) {
	s := newService(t)
	boss := register(t, s, "boss@farm.pe", entities.RoleBoss)
	emp := register(t, s, "emp@farm.pe", entities.RoleEmployee)

	if _, err := s.Boss(emp); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("Expected ErrNotFound before linking, got %v", err)
	}

	res, err := s.LinkEmployee(emp, "ZZZZZZZZ")
	if err != nil {
		t.Fatal(err)
	}
	if res.Success {
		t.Errorf("Expected invalid code to fail softly")
	}

	res, err = s.LinkEmployee(emp, *boss.LinkingCode)
	if err != nil {
		t.Fatal(err)
	}
	if !res.Success || res.BossName == nil || *res.BossName != boss.FullName {
		t.Errorf("unexpected link result %+v", res)
	}

	got, err := s.Boss(emp)
	if err != nil || got.ID != boss.ID {
		t.Errorf("Expected boss %d, got %v (%v)", boss.ID, got, err)
	}
	list, err := s.Employees(boss)
	if err != nil || len(list) != 1 || list[0].ID != emp.ID {
		t.Errorf("Expected one employee, got %v (%v)", list, err)
	}

	if _, err := s.LinkEmployee(boss, *boss.LinkingCode); !errors.Is(err, apperr.ErrForbidden) {
		t.Errorf("Expected bosses to be refused, got %v", err)
	}
}

func TestRegenerateLinkingCode(t *testing.T) {
	s := newService(t)
	boss := register(t, s, "boss@farm.pe", entities.RoleBoss)
	old := *boss.LinkingCode

	code, err := s.RegenerateLinkingCode(boss)
	if err != nil {
		t.Fatal(err)
	}
	if code == old {
		t.Errorf("Expected a new code")
	}
	got, err := s.LinkingCode(boss)
	if err != nil || got != code {
		t.Errorf("Expected %s, got %s (%v)", code, got, err)
	}

	emp := register(t, s, "emp@farm.pe", entities.RoleEmployee)
	if _, err := s.LinkingCode(emp); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("Expected ErrNotFound when no code exists, got %v", err)
	}
}
