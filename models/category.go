package models

// Category represents a product category.
// Its ID is generated by the repository before the row is written.
type Category struct {
	ID   string `gorm:"primaryKey;type:text"`
	Name string `gorm:"type:text;not null;check:chk_categories_name,name <> ''"`
}

func (c *Category) TableName() string {
	return "categories"
}

// CategoryWithProducts is the read model returned by the catalog listing:
// a category together with every product that belongs to it.
type CategoryWithProducts struct {
	ID       string
	Name     string
	Products []Product
}
