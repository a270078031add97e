package products

import (
	"context"
	"net/http"
	"strings"

	"github.com/catalogapp/catalog-api/app/response"
)

type ProductRemover interface {
	DeleteProduct(ctx context.Context, productID string) error
}

type ProductHandler struct {
	repo ProductRemover
}

func NewProductHandler(r ProductRemover) *ProductHandler {
	return &ProductHandler{repo: r}
}

func (h *ProductHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	productID := strings.TrimSpace(r.PathValue("productId"))
	if productID == "" {
		response.Failure(w, http.StatusBadRequest, "Missing product ID")
		return
	}

	if err := h.repo.DeleteProduct(r.Context(), productID); err != nil {
		response.Failure(w, http.StatusInternalServerError, "Failed to delete product")
		return
	}

	response.Success(w, http.StatusOK, nil)
}
