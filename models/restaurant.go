package models

import "time"

type Restaurant struct {
	ID           uint       `json:"id" gorm:"primaryKey"`
	OwnerID      uint       `json:"owner_id" gorm:"not null"`
	Owner        User       `json:"owner,omitempty" gorm:"foreignKey:OwnerID"`
	Name         string     `json:"name" gorm:"not null"`
	Cuisine      string     `json:"cuisine" gorm:"not null"`
	DeliveryTime string     `json:"delivery_time"`
	Address      string     `json:"address"`
	Phone        string     `json:"phone"`
	Rating       float64    `json:"rating" gorm:"default:0"`
	IsActive     bool       `json:"is_active" gorm:"default:true"`
	MenuItems    []MenuItem `json:"menu_items,omitempty" gorm:"foreignKey:RestaurantID"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

type MenuItem struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	RestaurantID uint      `json:"restaurant_id" gorm:"not null"`
	Name         string    `json:"name" gorm:"not null"`
	Description  string    `json:"description"`
	Price        float64   `json:"price" gorm:"not null"`
	Category     string    `json:"category"`
	ImageURL     string    `json:"image_url"`
	IsAvailable  bool      `json:"is_available" gorm:"default:true"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
