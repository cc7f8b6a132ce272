package service

import "minascan/entities"

type AuthService interface {
	Register(in RegisterInput) (*entities.User, error)
	Login(email, password string) (*LoginResult, error)
	UserFromToken(raw string) (*entities.User, error)
	UpdateMe(u *entities.User, patch UserPatch) (*entities.User, error)

	LinkEmployee(employee *entities.User, code string) (*LinkResult, error)
	Employees(boss *entities.User) ([]entities.User, error)
	EmployeeIDs(boss *entities.User) ([]uint, error)
	Boss(employee *entities.User) (*entities.User, error)
	RegenerateLinkingCode(boss *entities.User) (string, error)
	LinkingCode(boss *entities.User) (string, error)
}

type RegisterInput struct {
	Email    string        `json:"email" form:"email" validate:"required,email,max=100"`
	FullName string        `json:"full_name" form:"full_name" validate:"required,max=100"`
	Role     entities.Role `json:"role" form:"role" validate:"required,oneof=employee boss"`
	Password string        `json:"password" form:"password" validate:"required,min=6,max=72"`
}

// LoginInput accepts the OAuth2 password form (username=email) or a JSON body.
type LoginInput struct {
	Username string `json:"username" form:"username"`
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password" validate:"required"`
}

func (in LoginInput) Login() string {
	if in.Username != "" {
		return in.Username
	}
	return in.Email
}

// UserPatch applies only the non-nil fields.
type UserPatch struct {
	Email    *string `json:"email" validate:"omitempty,email,max=100"`
	FullName *string `json:"full_name" validate:"omitempty,max=100"`
	IsActive *bool   `json:"is_active"`
}

type LoginResult struct {
	AccessToken string         `json:"access_token"`
	TokenType   string         `json:"token_type"`
	User        *entities.User `json:"user"`
}

type LinkResult struct {
	Success  bool    `json:"success"`
	Message  string  `json:"message"`
	BossName *string `json:"boss_name"`
}
