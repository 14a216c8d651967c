package models

import (
	"gorm.io/gorm"
	"golang.org/x/crypto/bcrypt"
)

type UserRole string

const (
	RoleClient UserRole = "client"
	RoleAdmin  UserRole = "admin"
)

type User struct {
	gorm.Model
	FirstName    string `json:"firstName" gorm:"column:first_name;not null"`
	LastName     string `json:"lastName" gorm:"column:last_name;not null"`
	Email        string `json:"email" gorm:"column:email;unique;not null"`
	Password     string `json:"-" gorm:"-"` // Transient plaintext, never persisted
	PasswordHash string `json:"-" gorm:"column:password_hash;not null"`
	Phone        string `json:"phone" gorm:"column:phone"`
	Street       string `json:"street" gorm:"column:street"`
	City         string `json:"city" gorm:"column:city"`
	PostalCode   string `json:"postalCode" gorm:"column:postal_code"`
	Country      string `json:"country" gorm:"column:country;default:'France'"`
	Role         string `json:"role" gorm:"column:role;not null;default:'client'"`
}

// TableName specifies the table name
func (User) TableName() string {
	return "users"
}

func (u *User) HashPassword() error {
	if u.Password == "" {
		return nil
	}
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hashedPassword)
	return nil
}

func (u *User) CheckPassword(password string) error {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
}

func (u *User) IsAdmin() bool {
	return u.Role == string(RoleAdmin)
}
