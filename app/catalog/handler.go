package catalog

import (
	"context"
	"net/http"

	"github.com/catalogapp/catalog-api/app/response"
	"github.com/catalogapp/catalog-api/models"
	"github.com/sirupsen/logrus"
)

type Response struct {
	Categories []Category `json:"categories"`
}

type Category struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Products []Product `json:"products"`
}

type Product struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	CategoryID string `json:"categoryId"`
}

type CatalogProvider interface {
	ListCategoriesWithProducts(ctx context.Context) ([]models.CategoryWithProducts, error)
}

type CatalogHandler struct {
	repo CatalogProvider
	log  logrus.FieldLogger
}

func NewCatalogHandler(r CatalogProvider, logger logrus.FieldLogger) *CatalogHandler {
	return &CatalogHandler{
		repo: r,
		log:  logger,
	}
}

func (h *CatalogHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	res, err := h.repo.ListCategoriesWithProducts(r.Context())
	if err != nil {
		h.log.Warnf("Failed to list catalog: %v", err)
		response.FailureWithNullData(w, http.StatusInternalServerError, "failed to fetch categories and products")
		return
	}

	categories := make([]Category, len(res))
	for i, c := range res {
		products := make([]Product, len(c.Products))
		for j, p := range c.Products {
			products[j] = Product{
				ID:         p.ID,
				Name:       p.Name,
				CategoryID: p.CategoryID,
			}
		}
		categories[i] = Category{
			ID:       c.ID,
			Name:     c.Name,
			Products: products,
		}
	}

	response.Success(w, http.StatusOK, Response{Categories: categories})
}
