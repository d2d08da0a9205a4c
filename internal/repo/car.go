package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/carshop/backend/internal/models"
)

func (r *GormRepo) CreateCar(ctx context.Context, car *models.Car) error {
	return r.DB.WithContext(ctx).Create(car).Error
}

func (r *GormRepo) GetCar(ctx context.Context, id uint) (*models.Car, error) {
	var car models.Car
	if err := r.DB.WithContext(ctx).First(&car, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCarNotFound
		}
		return nil, err
	}
	return &car, nil
}

func (r *GormRepo) ListCars(ctx context.Context) ([]models.Car, error) {
	cars := make([]models.Car, 0)
	if err := r.DB.WithContext(ctx).Order("id ASC").Find(&cars).Error; err != nil {
		return nil, err
	}
	return cars, nil
}

// DeleteCar removes the record together with any cart rows referencing it,
// and reports whether a car was actually deleted plus its image path so the
// caller can clean up the stored file. Deleting an absent id is a no-op.
func (r *GormRepo) DeleteCar(ctx context.Context, id uint) (string, bool, error) {
	var car models.Car
	txErr := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&car, id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.Car{}, id).Error; err != nil {
			return err
		}
		return tx.Where("car_id = ?", id).Delete(&models.CartItem{}).Error
	})
	if txErr != nil {
		if errors.Is(txErr, gorm.ErrRecordNotFound) {
			return "", false, nil
		}
		return "", false, txErr
	}
	return car.ImagePath, true, nil
}
