package entities

import "time"

type Role string

const (
	RoleEmployee Role = "employee"
	RoleBoss     Role = "boss"
)

func (r Role) Valid() bool { return r == RoleEmployee || r == RoleBoss }

type User struct {
	ID             uint    `gorm:"primaryKey" json:"id"`
	Email          string  `gorm:"size:100;uniqueIndex;not null" json:"email"`
	HashedPassword string  `gorm:"size:255;not null" json:"-"`
	FullName       string  `gorm:"size:100" json:"full_name"`
	Role           Role    `gorm:"size:16;not null;default:employee" json:"role"`
	IsActive       bool    `gorm:"not null;default:true" json:"is_active"`
	BossID         *uint   `gorm:"index" json:"boss_id"`
	Boss           *User   `gorm:"constraint:OnDelete:SET NULL" json:"-"`
	LinkingCode    *string `gorm:"size:10;uniqueIndex" json:"linking_code"` // bosses only

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u *User) IsBoss() bool { return u.Role == RoleBoss }
