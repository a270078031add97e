package models

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	opCreateCategory = "create_category_with_products"
	opListCatalog    = "list_categories_with_products"
	opDeleteCategory = "delete_category"
	opDeleteProduct  = "delete_product"
)

// CreatedCategory is the store-confirmed result of CreateCategoryWithProducts.
type CreatedCategory struct {
	Category Category
	Products []Product
}

// CatalogRepository runs every catalog operation as one transaction.
// It holds no state besides its handle, so a single value is shared by all requests.
type CatalogRepository struct {
	db       *gorm.DB
	log      logrus.FieldLogger
	newID    func() string
	readOpts []*sql.TxOptions
}

func NewCatalogRepository(db *gorm.DB, logger logrus.FieldLogger) *CatalogRepository {
	r := &CatalogRepository{
		db:    db,
		log:   logger,
		newID: uuid.NewString,
	}
	// Two statements under READ COMMITTED may observe different commits.
	if db.Dialector.Name() == "postgres" {
		r.readOpts = []*sql.TxOptions{{Isolation: sql.LevelRepeatableRead, ReadOnly: true}}
	}
	return r
}

// WithIDGenerator returns a copy of the repository that uses gen for new row ids.
func (r *CatalogRepository) WithIDGenerator(gen func() string) *CatalogRepository {
	cp := *r
	cp.newID = gen
	return &cp
}

// session detaches cancellation: an abandoned request must not roll back a
// transaction that is already in flight.
func (r *CatalogRepository) session(ctx context.Context) *gorm.DB {
	return r.db.WithContext(context.WithoutCancel(ctx))
}

func (r *CatalogRepository) fail(op, message string, err error) error {
	r.log.WithField("op", op).Errorf("%s: %v", message, err)
	return &StorageError{Op: op, Message: message, Err: err}
}

// CreateCategoryWithProducts stores a new category and all of its products, or
// nothing at all. The input must already satisfy CreateCategoryInput.Validate.
func (r *CatalogRepository) CreateCategoryWithProducts(ctx context.Context, in CreateCategoryInput) (*CreatedCategory, error) {
	category := Category{ID: r.newID(), Name: in.Category.Name}

	rows := make([]Product, len(in.Products))
	ids := make([]string, len(in.Products))
	for i, p := range in.Products {
		rows[i] = Product{ID: r.newID(), Name: p.Name, CategoryID: category.ID}
		ids[i] = rows[i].ID
	}

	var created CreatedCategory
	err := r.session(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(&category).Error; err != nil {
			return fmt.Errorf("could not insert category: %w", err)
		}
		if err := tx.Omit(clause.Associations).Create(&rows).Error; err != nil {
			return fmt.Errorf("could not insert products: %w", err)
		}

		// Read back what the store holds rather than echoing the input.
		if err := tx.Take(&created.Category, "id = ?", category.ID).Error; err != nil {
			return fmt.Errorf("could not read back category: %w", err)
		}
		stored, err := findProductsInOrder(tx, ids)
		if err != nil {
			return err
		}
		created.Products = stored
		return nil
	})
	if err != nil {
		return nil, r.fail(opCreateCategory, "failed to create category and products", err)
	}

	r.log.Infof("Category created successfully with ID: %s, Name: %s, Products: %d",
		created.Category.ID, created.Category.Name, len(created.Products))
	return &created, nil
}

func findProductsInOrder(tx *gorm.DB, ids []string) ([]Product, error) {
	var found []Product
	if err := tx.Where("id IN ?", ids).Find(&found).Error; err != nil {
		return nil, fmt.Errorf("could not read back products: %w", err)
	}

	byID := make(map[string]Product, len(found))
	for _, p := range found {
		byID[p.ID] = p
	}

	out := make([]Product, 0, len(ids))
	for _, id := range ids {
		p, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("product %s missing after insert", id)
		}
		out = append(out, p)
	}
	return out, nil
}

// ListCategoriesWithProducts reads both tables in one transaction and returns
// every category with its products nested.
func (r *CatalogRepository) ListCategoriesWithProducts(ctx context.Context) ([]CategoryWithProducts, error) {
	var (
		categories []Category
		products   []Product
	)
	err := r.session(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Find(&categories).Error; err != nil {
			return fmt.Errorf("could not select categories: %w", err)
		}
		if err := tx.Find(&products).Error; err != nil {
			return fmt.Errorf("could not select products: %w", err)
		}
		return nil
	}, r.readOpts...)
	if err != nil {
		return nil, r.fail(opListCatalog, "failed to fetch categories and products", err)
	}

	r.log.Infof("Retrieved %d categories and %d products", len(categories), len(products))
	return GroupProducts(categories, products), nil
}

// DeleteCategory removes the category's products and then the category itself.
// Deleting an id that does not exist succeeds without touching any row.
func (r *CatalogRepository) DeleteCategory(ctx context.Context, categoryID string) error {
	var productsDeleted, categoriesDeleted int64
	err := r.session(ctx).Transaction(func(tx *gorm.DB) error {
		// Products first: the foreign key has no ON DELETE action.
		res := tx.Where("category_id = ?", categoryID).Delete(&Product{})
		if res.Error != nil {
			return fmt.Errorf("could not delete products of category: %w", res.Error)
		}
		productsDeleted = res.RowsAffected

		res = tx.Where("id = ?", categoryID).Delete(&Category{})
		if res.Error != nil {
			return fmt.Errorf("could not delete category: %w", res.Error)
		}
		categoriesDeleted = res.RowsAffected
		return nil
	})
	if err != nil {
		return r.fail(opDeleteCategory, "failed to delete category", err)
	}

	if categoriesDeleted == 0 {
		r.log.Debugf("Delete of category ID %s matched no rows", categoryID)
		return nil
	}
	r.log.Infof("Category deleted successfully with ID: %s (%d products removed)", categoryID, productsDeleted)
	return nil
}

// DeleteProduct removes a single product. Deleting an id that does not exist
// succeeds without touching any row.
func (r *CatalogRepository) DeleteProduct(ctx context.Context, productID string) error {
	var existing []Product
	var deleted int64
	err := r.session(ctx).Transaction(func(tx *gorm.DB) error {
		// Advisory read for the log line only; the delete runs regardless.
		if err := tx.Where("id = ?", productID).Limit(1).Find(&existing).Error; err != nil {
			return fmt.Errorf("could not select product: %w", err)
		}

		res := tx.Where("id = ?", productID).Delete(&Product{})
		if res.Error != nil {
			return fmt.Errorf("could not delete product: %w", res.Error)
		}
		deleted = res.RowsAffected
		return nil
	})
	if err != nil {
		return r.fail(opDeleteProduct, "failed to delete product", err)
	}

	if len(existing) == 0 || deleted == 0 {
		r.log.Debugf("Delete of product ID %s matched no rows", productID)
		return nil
	}
	r.log.Infof("Product deleted successfully with ID: %s, Name: %s, Category: %s",
		existing[0].ID, existing[0].Name, existing[0].CategoryID)
	return nil
}
