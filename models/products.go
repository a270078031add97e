package models

// Product represents a product in the catalog.
// It always belongs to exactly one category. The foreign key deliberately
// has no cascading action: dependents are removed by the repository.
type Product struct {
	ID         string    `gorm:"primaryKey;type:text"`
	Name       string    `gorm:"type:text;not null;check:chk_products_name,name <> ''"`
	CategoryID string    `gorm:"type:text;not null;index"`
	Category   *Category `gorm:"foreignKey:CategoryID;constraint:OnUpdate:NO ACTION,OnDelete:NO ACTION"`
}

func (p *Product) TableName() string {
	return "products"
}
