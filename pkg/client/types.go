package client

import (
	"time"

	"github.com/shopspring/decimal"
)

type User struct {
	ID        uint      `json:"id"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"createdAt"`
}

type Category struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type Owner struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
}

type Product struct {
	ID          uint            `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	ImageURL    string          `json:"imageUrl"`
	OwnerID     uint            `json:"ownerId"`
	CategoryID  uint            `json:"categoryId"`
	CreatedAt   time.Time       `json:"createdAt"`
	Owner       *Owner          `json:"owner,omitempty"`
	Category    *Category       `json:"category,omitempty"`
}

type ProductSummary struct {
	ID         uint            `json:"id"`
	Title      string          `json:"title"`
	Price      decimal.Decimal `json:"price"`
	ImageURL   string          `json:"imageUrl"`
	CategoryID uint            `json:"categoryId"`
}

type NewProduct struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	CategoryID  uint            `json:"categoryId"`
	ImageURL    string          `json:"imageUrl,omitempty"`
}

// ProductPatch is a partial update; nil fields are not sent.
type ProductPatch struct {
	Title       *string          `json:"title,omitempty"`
	Description *string          `json:"description,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	CategoryID  *uint            `json:"categoryId,omitempty"`
	ImageURL    *string          `json:"imageUrl,omitempty"`
}

type SearchQuery struct {
	Query      string
	CategoryID uint
}

type CartItem struct {
	ID        uint     `json:"id"`
	ProductID uint     `json:"productId"`
	Quantity  int      `json:"quantity"`
	Product   *Product `json:"product,omitempty"`
}

type OrderItem struct {
	ID        uint            `json:"id"`
	ProductID uint            `json:"productId"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	Product   *Product        `json:"product,omitempty"`
}

type Order struct {
	ID        uint        `json:"id"`
	UserID    uint        `json:"userId"`
	CreatedAt time.Time   `json:"createdAt"`
	Items     []OrderItem `json:"items"`
}

// Total sums the purchase-time prices of the order lines.
func (o Order) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}

// CartTotal sums the current product prices of the cart lines. Lines without
// product detail count as zero.
func CartTotal(items []CartItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		if item.Product == nil {
			continue
		}
		total = total.Add(item.Product.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}

type ImageUpload struct {
	UploadURL string    `json:"uploadUrl"`
	FileURL   string    `json:"fileUrl"`
	Key       string    `json:"key"`
	ExpiresAt time.Time `json:"expiresAt"`
}
