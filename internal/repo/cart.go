package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/carshop/backend/internal/models"
)

type CartRow struct {
	CartItemID uint   `json:"cart_item_id"`
	CarID      uint   `json:"car_id"`
	Brand      string `json:"brand"`
	Model      string `json:"model"`
	Price      int    `json:"price"`
	ImagePath  string `json:"image_path"`
}

type CheckoutResult struct {
	ItemsCount int `json:"items_count"`
	TotalPrice int `json:"total_price"`
}

// AddToCart inserts a cart row after checking the car exists. Repeated adds
// of the same car intentionally create distinct rows.
func (r *GormRepo) AddToCart(ctx context.Context, userID, carID uint) (*models.CartItem, error) {
	var car models.Car
	if err := r.DB.WithContext(ctx).First(&car, carID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCarNotFound
		}
		return nil, err
	}

	item := models.CartItem{UserID: userID, CarID: carID}
	if err := r.DB.WithContext(ctx).Create(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *GormRepo) GetCart(ctx context.Context, userID uint) ([]CartRow, error) {
	rows := make([]CartRow, 0)
	err := r.DB.WithContext(ctx).
		Model(&models.CartItem{}).
		Select("cart_items.id AS cart_item_id, cars.id AS car_id, cars.brand, cars.model, cars.price, cars.image_path").
		Joins("JOIN cars ON cars.id = cart_items.car_id").
		Where("cart_items.user_id = ?", userID).
		Order("cart_items.id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// RemoveOneFromCart deletes the oldest matching row for (user, car). Nothing
// matching is a silent no-op.
func (r *GormRepo) RemoveOneFromCart(ctx context.Context, userID, carID uint) error {
	var item models.CartItem
	err := r.DB.WithContext(ctx).
		Where("user_id = ? AND car_id = ?", userID, carID).
		Order("id ASC").
		First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	return r.DB.WithContext(ctx).Delete(&item).Error
}

// CheckoutCart clears the user's cart and returns the count and summed price
// of the cleared items. The read locks the rows for the duration of the
// transaction, so two racing checkouts serialize and only one sees the items.
func (r *GormRepo) CheckoutCart(ctx context.Context, userID uint) (*CheckoutResult, error) {
	var res CheckoutResult

	txErr := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		q := tx
		// sqlite has no FOR UPDATE; its single writer serializes anyway.
		if tx.Dialector.Name() == "postgres" {
			q = tx.Clauses(clause.Locking{Strength: "UPDATE"})
		}
		var items []models.CartItem
		if err := q.Where("user_id = ?", userID).Find(&items).Error; err != nil {
			return err
		}
		if len(items) == 0 {
			return nil
		}

		// rows whose car vanished are cleared but not counted, matching
		// what GetCart shows
		var total, counted int
		for _, it := range items {
			var car models.Car
			if err := tx.First(&car, it.CarID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					continue
				}
				return err
			}
			total += car.Price
			counted++
		}

		if err := tx.Where("user_id = ?", userID).Delete(&models.CartItem{}).Error; err != nil {
			return err
		}

		res.ItemsCount = counted
		res.TotalPrice = total
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return &res, nil
}
