package repo

import (
	"errors"

	"gorm.io/gorm"
)

var (
	ErrUserAlreadyExist   = errors.New("user already exist")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrCarNotFound        = errors.New("car not found")
)

// GormRepo is the single storage handle. Every persistence statement in the
// service goes through one of its methods, so the relational engine stays
// swappable and nothing touches an ambient global.
type GormRepo struct {
	DB *gorm.DB
}

func New(db *gorm.DB) *GormRepo {
	return &GormRepo{DB: db}
}
