package models

// GroupProducts nests products under their owning category.
//
// Categories keep their input order and so do the products inside each
// category. A category without products gets an empty, non-nil slice.
// Products whose CategoryID matches none of the categories are not emitted.
func GroupProducts(categories []Category, products []Product) []CategoryWithProducts {
	byCategory := make(map[string][]Product, len(categories))
	for _, p := range products {
		byCategory[p.CategoryID] = append(byCategory[p.CategoryID], p)
	}

	out := make([]CategoryWithProducts, 0, len(categories))
	for _, c := range categories {
		items := byCategory[c.ID]
		if items == nil {
			items = []Product{}
		}
		out = append(out, CategoryWithProducts{
			ID:       c.ID,
			Name:     c.Name,
			Products: items,
		})
	}
	return out
}
