package models

import (
	"sync"
	"testing"

	"gorm.io/gorm/schema"
)

func TestUserPasswordNeverReachesDatabase(t *testing.T) {
	s, err := schema.Parse(&User{}, &sync.Map{}, schema.NamingStrategy{})
	if err != nil {
		t.Fatalf("schema.Parse: %v", err)
	}

	// The transient plaintext field must not map to a column: a field that is
	// excluded from migration but not from DML makes every user INSERT/UPDATE
	// reference a column the users table does not have.
	if _, ok := s.FieldsByDBName["password"]; ok {
		t.Error("users schema maps a password column")
	}
	if f := s.LookUpField("Password"); f != nil && (f.Creatable || f.Updatable || f.Readable) {
		t.Error("Password field participates in SQL statements")
	}

	if _, ok := s.FieldsByDBName["password_hash"]; !ok {
		t.Error("users schema lost the password_hash column")
	}
}

func TestHashPassword(t *testing.T) {
	u := &User{Password: "secret123"}
	if err := u.HashPassword(); err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if u.PasswordHash == "" || u.PasswordHash == "secret123" {
		t.Errorf("hash = %q", u.PasswordHash)
	}
	if err := u.CheckPassword("secret123"); err != nil {
		t.Errorf("CheckPassword: %v", err)
	}
	if err := u.CheckPassword("wrong"); err == nil {
		t.Error("CheckPassword accepted a wrong password")
	}
}

func TestHashPasswordEmptyIsNoop(t *testing.T) {
	u := &User{}
	if err := u.HashPassword(); err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if u.PasswordHash != "" {
		t.Errorf("hash set for empty password: %q", u.PasswordHash)
	}
}
