package store

import (
	"errors"

	"gorm.io/gorm"

	"github.com/shahidarif12/AstraCommand/internal/auth"
	"github.com/shahidarif12/AstraCommand/internal/model"
)

// EnsureAdmin seeds an admin account with the given credentials if no
// account with that username exists yet.
func (s *Store) EnsureAdmin(username, password string) error {
	var count int64
	if err := s.db.Model(&model.Admin{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	return s.db.Create(&model.Admin{Username: username, PasswordHash: hash}).Error
}

func (s *Store) GetAdmin(username string) (*model.Admin, error) {
	var admin model.Admin
	err := s.db.Where("username = ?", username).First(&admin).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrAdminNotFound
	}
	if err != nil {
		return nil, err
	}
	return &admin, nil
}
