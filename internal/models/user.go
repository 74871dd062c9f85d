// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// PasswordCost is the bcrypt cost used by SetPassword.
var PasswordCost = bcrypt.DefaultCost

// User represents a registered member of the Holonet.
// Favorites are not held on the struct; they are read through the
// junction tables by FavoriteRepository.
type User struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	Email            string    `gorm:"size:120;not null;uniqueIndex;check:chk_users_email_present,email <> ''" json:"email"`
	Password         string    `gorm:"not null;check:chk_users_password_present,password <> ''" json:"-"`
	FirstName        string    `gorm:"size:50;not null;check:chk_users_first_name_present,first_name <> ''" json:"first_name"`
	LastName         string    `gorm:"size:50;not null;check:chk_users_last_name_present,last_name <> ''" json:"last_name"`
	SubscriptionDate time.Time `gorm:"not null;autoCreateTime" json:"subscription_date"`
	// IsActive defaults to true on insert; a false value on Create is
	// replaced by the column default, use UserRepository.SetActive instead.
	IsActive bool `gorm:"not null;default:true" json:"is_active"`
}

// SetPassword hashes plain with bcrypt and stores the hash.
func (u *User) SetPassword(plain string) error {
	return u.SetPasswordWithCost(plain, PasswordCost)
}

// SetPasswordWithCost is SetPassword with an explicit bcrypt cost.
func (u *User) SetPasswordWithCost(plain string, cost int) error {
	if plain == "" {
		return NewValidationError("password must not be empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return NewInternalError(err)
	}
	u.Password = string(hash)
	return nil
}

// CheckPassword reports whether plain matches the stored hash.
func (u *User) CheckPassword(plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(plain)) == nil
}

// FullName joins first and last name with a single space.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// BeforeSave refuses to persist a password that is not a bcrypt hash.
func (u *User) BeforeSave(_ *gorm.DB) error {
	// Column updates and UserRepository.Update without a loaded hash
	// leave the field empty and do not write it.
	if u.Password == "" {
		return nil
	}
	if _, err := bcrypt.Cost([]byte(u.Password)); err != nil {
		return ErrPlaintextPassword
	}
	return nil
}

// Serialize returns the public projection of the user. The password is never included.
func (u *User) Serialize() map[string]any {
	return map[string]any{
		"id":                u.ID,
		"email":             u.Email,
		"first_name":        u.FirstName,
		"last_name":         u.LastName,
		"subscription_date": FormatTimestamp(u.SubscriptionDate),
	}
}
