package model

// DefaultCategories is upserted by name on every startup.
var DefaultCategories = []string{"Electronics", "Furniture", "Books", "Clothing", "Sports"}

type Category struct {
	ID   uint   `gorm:"primarykey" json:"id"`
	Name string `gorm:"uniqueIndex;not null;size:100" json:"name"`
}

func (Category) TableName() string {
	return "categories"
}
