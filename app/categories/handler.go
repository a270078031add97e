package categories

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/catalogapp/catalog-api/app/response"
	"github.com/catalogapp/catalog-api/models"
	"github.com/sirupsen/logrus"
)

type CategoryResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type ProductResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	CategoryID string `json:"categoryId"`
}

type CreateResponse struct {
	Category CategoryResponse  `json:"category"`
	Products []ProductResponse `json:"products"`
}

// MaxCreateBodyBytes bounds the create request body.
const MaxCreateBodyBytes = 1 << 20

type CategoryProvider interface {
	CreateCategoryWithProducts(ctx context.Context, in models.CreateCategoryInput) (*models.CreatedCategory, error)
	DeleteCategory(ctx context.Context, categoryID string) error
}

type CategoryHandler struct {
	repo CategoryProvider
	log  logrus.FieldLogger
}

func NewCategoryHandler(r CategoryProvider, logger logrus.FieldLogger) *CategoryHandler {
	return &CategoryHandler{repo: r, log: logger}
}

func (h *CategoryHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxCreateBodyBytes)

	var input models.CreateCategoryInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			response.FailureWithNullData(w, http.StatusRequestEntityTooLarge, "Request body too large")
			return
		}
		response.FailureWithNullData(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	input = input.Normalized()
	if err := input.Validate(); err != nil {
		h.log.Warnf("Rejected create category request: %v", err)
		response.FailureWithNullData(w, http.StatusBadRequest, err.Error())
		return
	}

	created, err := h.repo.CreateCategoryWithProducts(r.Context(), input)
	if err != nil {
		response.FailureWithNullData(w, http.StatusInternalServerError, "Failed to create category")
		return
	}

	products := make([]ProductResponse, len(created.Products))
	for i, p := range created.Products {
		products[i] = ProductResponse{
			ID:         p.ID,
			Name:       p.Name,
			CategoryID: p.CategoryID,
		}
	}

	response.Success(w, http.StatusCreated, CreateResponse{
		Category: CategoryResponse{
			ID:   created.Category.ID,
			Name: created.Category.Name,
		},
		Products: products,
	})
}

func (h *CategoryHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	categoryID := strings.TrimSpace(r.PathValue("categoryId"))
	if categoryID == "" {
		response.Failure(w, http.StatusBadRequest, "Missing category ID")
		return
	}

	if err := h.repo.DeleteCategory(r.Context(), categoryID); err != nil {
		response.Failure(w, http.StatusInternalServerError, "Failed to delete category")
		return
	}

	response.Success(w, http.StatusOK, nil)
}
