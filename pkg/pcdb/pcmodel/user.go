package pcmodel

import (
	"fmt"
	"strings"
	"time"
)

// User is the identity a caller authenticates as. The core only reads it.
type User struct {
	ID        int          `json:"id"`
	UUID      string       `json:"uuid" gorm:"size:36"`
	Username  string       `json:"username" gorm:"uniqueIndex;size:150"`
	FirstName string       `json:"first_name" gorm:"size:150"`
	LastName  string       `json:"last_name" gorm:"size:150"`
	Email     string       `json:"email" gorm:"size:254"`
	APIToken  string       `json:"-" gorm:"column:api_token;index;size:80"`
	IsAdmin   bool         `json:"is_admin"`
	Profile   *UserProfile `json:"profile,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

func (u User) FullName() string {
	return strings.TrimSpace(fmt.Sprintf("%s %s", u.FirstName, u.LastName))
}

func (u User) String() string {
	return u.Username
}
