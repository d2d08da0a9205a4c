package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/carshop/backend/internal/hash"
	"github.com/carshop/backend/internal/models"
)

type UserInfo struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

func (r *GormRepo) CreateUser(ctx context.Context, username, passwordHash string) (*models.User, error) {
	user := models.User{
		Username:     username,
		PasswordHash: passwordHash,
	}
	tx := r.DB.WithContext(ctx).Where("username = ?", username).FirstOrCreate(&user)
	if tx.Error != nil {
		return nil, tx.Error
	}
	if tx.RowsAffected == 0 {
		return nil, ErrUserAlreadyExist
	}
	return &user, nil
}

func (r *GormRepo) FindUser(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := r.DB.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// VerifyUser resolves a username/password pair to the stored user. Absent
// record and wrong password collapse into the same error so the caller
// cannot tell which one failed.
func (r *GormRepo) VerifyUser(ctx context.Context, username, password string) (*models.User, error) {
	user, err := r.FindUser(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !hash.CheckPassword(user.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

func (r *GormRepo) DeleteUser(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Delete(&models.User{}, id).Error
}

func (r *GormRepo) ListUsers(ctx context.Context) ([]UserInfo, error) {
	var users []models.User
	if err := r.DB.WithContext(ctx).Order("id ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	out := make([]UserInfo, 0, len(users))
	for _, u := range users {
		out = append(out, UserInfo{ID: u.ID, Name: u.Username})
	}
	return out, nil
}

// EnsureAdmin seeds the admin record from configuration. Safe to call on
// every startup, the record is only created when missing.
func (r *GormRepo) EnsureAdmin(ctx context.Context, username, passwordHash string) error {
	admin := models.Admin{
		Username:     username,
		PasswordHash: passwordHash,
	}
	return r.DB.WithContext(ctx).Where("username = ?", username).FirstOrCreate(&admin).Error
}

func (r *GormRepo) VerifyAdmin(ctx context.Context, username, password string) (*models.Admin, error) {
	var admin models.Admin
	if err := r.DB.WithContext(ctx).Where("username = ?", username).First(&admin).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !hash.CheckPassword(admin.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	return &admin, nil
}
