package user

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrNotFound  = errors.New("user not found")
	ErrNotFarmer = errors.New("user is not a farmer")
)

type Role string

const (
	RoleFarmer Role = "FARMER"
	RoleBuyer  Role = "BUYER"
)

// DefaultCreditScore is assigned to new farmers until an external
// scoring run updates it.
const DefaultCreditScore = 600

type User struct {
	ID          uint64         `gorm:"primaryKey;column:id" json:"-"`
	UserID      string         `gorm:"size:32;uniqueIndex:ux_users_user_id_active" json:"user_id"`
	Name        string         `gorm:"size:255" json:"name"`
	Email       string         `gorm:"size:255;index" json:"email"`
	Role        Role           `gorm:"type:enum('FARMER','BUYER')" json:"role"`
	CreditScore int            `gorm:"default:0" json:"credit_score,omitempty"`
	Location    string         `gorm:"size:255" json:"location"`
	JoinDate    time.Time      `gorm:"type:date" json:"join_date"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string { return "users" }
