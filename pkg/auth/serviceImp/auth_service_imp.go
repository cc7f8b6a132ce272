package serviceImp

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"minascan/entities"
	"minascan/pkg/apperr"
	"minascan/pkg/auth/repository"
	"minascan/pkg/auth/service"
	"minascan/pkg/auth/token"
)

const (
	linkingCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	linkingCodeLength   = 8
	codeAttempts        = 5
)

type authSvc struct {
	users  repository.UserRepository
	tokens *token.Manager
	cost   int
}

func NewAuthService(users repository.UserRepository, tokens *token.Manager) service.AuthService {
	return &authSvc{users: users, tokens: tokens, cost: bcrypt.DefaultCost}
}

// WithCost lowers the bcrypt cost; tests use bcrypt.MinCost.
func WithCost(s service.AuthService, cost int) service.AuthService {
	if a, ok := s.(*authSvc); ok {
		a.cost = cost
	}
	return s
}

func (s *authSvc) Register(in service.RegisterInput) (*entities.User, error) {
	email := normalizeEmail(in.Email)
	if _, err := s.users.FindByEmail(email); err == nil {
		return nil, fmt.Errorf("email %w", apperr.ErrConflict)
	} else if !errors.Is(err, apperr.ErrNotFound) {
		return nil, err
	}
	if !in.Role.Valid() {
		return nil, fmt.Errorf("%w: role must be employee or boss", apperr.ErrInvalid)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	u := &entities.User{
		Email:          email,
		HashedPassword: string(hashed),
		FullName:       strings.TrimSpace(in.FullName),
		Role:           in.Role,
		IsActive:       true,
	}
	if u.IsBoss() {
		code, err := s.newLinkingCode()
		if err != nil {
			return nil, err
		}
		u.LinkingCode = &code
	}
	if err := s.users.Create(u); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}

func (s *authSvc) Login(email, password string) (*service.LoginResult, error) {
	bad := fmt.Errorf("%w: incorrect email or password", apperr.ErrUnauthorized)
	u, err := s.users.FindByEmail(normalizeEmail(email))
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, bad
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.HashedPassword), []byte(password)); err != nil {
		return nil, bad
	}
	tok, err := s.tokens.Issue(u.Email, u.ID, string(u.Role))
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &service.LoginResult{AccessToken: tok, TokenType: "bearer", User: u}, nil
}

func (s *authSvc) UserFromToken(raw string) (*entities.User, error) {
	claims, err := s.tokens.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrUnauthorized, err)
	}
	u, err := s.users.FindByEmail(claims.Subject)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, fmt.Errorf("%w: could not validate credentials", apperr.ErrUnauthorized)
		}
		return nil, err
	}
	return u, nil
}

func (s *authSvc) UpdateMe(u *entities.User, p service.UserPatch) (*entities.User, error) {
	if p.Email != nil {
		email := normalizeEmail(*p.Email)
		if email != u.Email {
			if _, err := s.users.FindByEmail(email); err == nil {
				return nil, fmt.Errorf("email %w", apperr.ErrConflict)
			} else if !errors.Is(err, apperr.ErrNotFound) {
				return nil, err
			}
			u.Email = email
		}
	}
	if p.FullName != nil {
		u.FullName = strings.TrimSpace(*p.FullName)
	}
	if p.IsActive != nil {
		u.IsActive = *p.IsActive
	}
	if err := s.users.Update(u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *authSvc) LinkEmployee(employee *entities.User, code string) (*service.LinkResult, error) {
	if employee.Role != entities.RoleEmployee {
		return nil, fmt.Errorf("%w: employees only", apperr.ErrForbidden)
	}
	invalid := &service.LinkResult{Success: false, Message: "Código de vinculación inválido"}
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return invalid, nil
	}
	boss, err := s.users.FindBossByCode(code)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return invalid, nil
		}
		return nil, err
	}
	employee.BossID = &boss.ID
	if err := s.users.Update(employee); err != nil {
		return nil, err
	}
	name := boss.FullName
	return &service.LinkResult{Success: true, Message: "Empleado vinculado exitosamente", BossName: &name}, nil
}

func (s *authSvc) Employees(boss *entities.User) ([]entities.User, error) {
	return s.users.ListEmployees(boss.ID)
}

func (s *authSvc) EmployeeIDs(boss *entities.User) ([]uint, error) {
	return s.users.EmployeeIDs(boss.ID)
}

func (s *authSvc) Boss(employee *entities.User) (*entities.User, error) {
	if employee.BossID == nil {
		return nil, fmt.Errorf("%w: no boss assigned", apperr.ErrNotFound)
	}
	return s.users.FindByID(*employee.BossID)
}

func (s *authSvc) RegenerateLinkingCode(boss *entities.User) (string, error) {
	if !boss.IsBoss() {
		return "", fmt.Errorf("%w: bosses only", apperr.ErrForbidden)
	}
	code, err := s.newLinkingCode()
	if err != nil {
		return "", err
	}
	boss.LinkingCode = &code
	if err := s.users.Update(boss); err != nil {
		return "", err
	}
	return code, nil
}

func (s *authSvc) LinkingCode(boss *entities.User) (string, error) {
	if boss.LinkingCode == nil || *boss.LinkingCode == "" {
		return "", fmt.Errorf("%w: no linking code generated", apperr.ErrNotFound)
	}
	return *boss.LinkingCode, nil
}

func (s *authSvc) newLinkingCode() (string, error) {
	for i := 0; i < codeAttempts; i++ {
		code, err := GenerateLinkingCode()
		if err != nil {
			return "", err
		}
		taken, err := s.users.CodeExists(code)
		if err != nil {
			return "", err
		}
		if !taken {
			return code, nil
		}
	}
	return "", errors.New("could not generate a unique linking code")
}

// GenerateLinkingCode returns 8 random characters from [A-Z0-9].
func GenerateLinkingCode() (string, error) {
	var b strings.Builder
	max := big.NewInt(int64(len(linkingCodeAlphabet)))
	for i := 0; i < linkingCodeLength; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		b.WriteByte(linkingCodeAlphabet[n.Int64()])
	}
	return b.String(), nil
}

func normalizeEmail(s string) string { return strings.ToLower(strings.TrimSpace(s)) }
