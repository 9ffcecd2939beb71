package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PlaceholderImageURL is stored when a listing is created without an image.
const PlaceholderImageURL = "https://placehold.co/600x400"

type Product struct {
	ID          uint            `gorm:"primarykey" json:"id"`
	Title       string          `gorm:"not null;size:200" json:"title"`
	Description string          `gorm:"type:text;not null" json:"description"`
	Price       decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price"`
	ImageURL    string          `gorm:"not null" json:"imageUrl"`
	OwnerID     uint            `gorm:"not null;index" json:"ownerId"`
	CategoryID  uint            `gorm:"not null;index" json:"categoryId"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
	DeletedAt   gorm.DeletedAt  `gorm:"index" json:"-"`

	// Relationships
	Owner    *ProductOwner `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	Category *Category     `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}

func (Product) TableName() string {
	return "products"
}

// ProductOwner is the public view of a listing's owner.
type ProductOwner struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
}

func (ProductOwner) TableName() string {
	return "users"
}

// ProductSummary is the projection returned by catalog search.
type ProductSummary struct {
	ID         uint            `json:"id"`
	Title      string          `json:"title"`
	Price      decimal.Decimal `json:"price"`
	ImageURL   string          `json:"imageUrl"`
	CategoryID uint            `json:"categoryId"`
}
