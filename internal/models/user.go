package models

import "golang.org/x/crypto/bcrypt"

// Field limits shared by forms and column sizes.
const (
	MaxNameLen     = 20
	MaxUsernameLen = 20
	MaxTitleLen    = 60
	YearLen        = 4
)

type User struct {
	ID           int    `gorm:"primaryKey" json:"id"`
	Name         string `gorm:"size:20" json:"name"`
	Username     string `gorm:"size:20" json:"username"`
	PasswordHash string `gorm:"size:128" json:"-"`
}

// SetPassword stores a bcrypt hash of password.
func (u *User) SetPassword(password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return nil
}

// ValidatePassword reports whether password matches the stored hash.
// A user without a hash never validates.
func (u *User) ValidatePassword(password string) bool {
	if u.PasswordHash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}
