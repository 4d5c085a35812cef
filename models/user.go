package models

import (
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type User struct {
	Base
	Email        string `json:"email" gorm:"size:191;uniqueIndex;not null"`
	FullName     string `json:"full_name" gorm:"size:120"`
	Role         string `json:"role" gorm:"size:20;not null"`
	Password     string `json:"password,omitempty" gorm:"-"`
	PasswordHash string `json:"-" gorm:"not null"`
}

func (u *User) SlugSource() string {
	if u.FullName != "" {
		return u.FullName
	}
	return u.Email
}

func (u *User) DisplayName() string { return u.FullName }

// BeforeSave hashes a plain password set on the model and clears it.
func (u *User) BeforeSave(tx *gorm.DB) error {
	if u.Password == "" {
		return nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	u.Password = ""
	return nil
}

// CheckPassword compares a plain password with the stored hash.
func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}
