package models

type User struct {
	ID           uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Username     string `gorm:"unique;index;not null"    json:"name"`
	PasswordHash string `gorm:"not null"                 json:"-"`
}

type Admin struct {
	ID           uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Username     string `gorm:"unique;index;not null"    json:"name"`
	PasswordHash string `gorm:"not null"                 json:"-"`
}

const (
	DriveFront = "front"
	DriveRear  = "rear"
	DriveAll   = "all"
)

type Car struct {
	ID           uint    `gorm:"primaryKey;autoIncrement"      json:"id"`
	Brand        string  `gorm:"not null"                      json:"brand"`
	Model        string  `gorm:"not null"                      json:"model"`
	Power        int     `gorm:"not null;check:power > 0"      json:"power"`
	Displacement float64 `gorm:"not null;check:displacement > 0" json:"displacement"`
	Drive        string  `gorm:"not null"                      json:"drive"`
	Price        int     `gorm:"not null;check:price > 0"      json:"price"`
	ImagePath    string  `gorm:"not null"                      json:"image_path"`
}

type CartItem struct {
	ID     uint `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID uint `gorm:"index;not null"           json:"user_id"`
	CarID  uint `gorm:"not null"                 json:"car_id"`
}
