package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/catalogapp/catalog-api/models"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

// --- Mock Repo ---

type MockCatalogRepo struct {
	Categories []models.CategoryWithProducts
	Err        error

	calls int
}

func (m *MockCatalogRepo) ListCategoriesWithProducts(ctx context.Context) ([]models.CategoryWithProducts, error) {
	m.calls++
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Categories, nil
}

// --- Helpers ---

type envelope struct {
	Success bool     `json:"success"`
	Data    Response `json:"data"`
	Error   *string  `json:"error"`
}

func newTestLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

// --- Tests ---

func TestHandleGet(t *testing.T) {
	testCases := []struct {
		name               string
		mockRepoSetup      func() *MockCatalogRepo
		expectedStatusCode int
		checkResponse      func(t *testing.T, rec *httptest.ResponseRecorder)
	}{
		{
			name: "Success with nested products",
			mockRepoSetup: func() *MockCatalogRepo {
				return &MockCatalogRepo{
					Categories: []models.CategoryWithProducts{
						{
							ID:   "cat_a",
							Name: "Electronics",
							Products: []models.Product{
								{ID: "p1", Name: "Speaker", CategoryID: "cat_a"},
								{ID: "p2", Name: "Lamp", CategoryID: "cat_a"},
							},
						},
						{ID: "cat_b", Name: "Books", Products: []models.Product{}},
					},
				}
			},
			expectedStatusCode: http.StatusOK,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var resp envelope
				err := json.NewDecoder(rec.Body).Decode(&resp)
				assert.NoError(t, err)
				assert.True(t, resp.Success)
				assert.Nil(t, resp.Error)
				assert.Len(t, resp.Data.Categories, 2)
				assert.Equal(t, "Electronics", resp.Data.Categories[0].Name)
				assert.Equal(t, []Product{
					{ID: "p1", Name: "Speaker", CategoryID: "cat_a"},
					{ID: "p2", Name: "Lamp", CategoryID: "cat_a"},
				}, resp.Data.Categories[0].Products)
			},
		},
		{
			name: "Category without products is rendered as an empty array",
			mockRepoSetup: func() *MockCatalogRepo {
				return &MockCatalogRepo{
					Categories: []models.CategoryWithProducts{
						{ID: "cat_b", Name: "Books", Products: []models.Product{}},
					},
				}
			},
			expectedStatusCode: http.StatusOK,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.JSONEq(t,
					`{"success":true,"data":{"categories":[{"id":"cat_b","name":"Books","products":[]}]},"error":null}`,
					rec.Body.String())
			},
		},
		{
			name: "Empty catalog",
			mockRepoSetup: func() *MockCatalogRepo {
				return &MockCatalogRepo{Categories: []models.CategoryWithProducts{}}
			},
			expectedStatusCode: http.StatusOK,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.JSONEq(t, `{"success":true,"data":{"categories":[]},"error":null}`, rec.Body.String())
			},
		},
		{
			name: "Repository error",
			mockRepoSetup: func() *MockCatalogRepo {
				return &MockCatalogRepo{Err: errors.New("db down")}
			},
			expectedStatusCode: http.StatusInternalServerError,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var errResp map[string]any
				err := json.NewDecoder(rec.Body).Decode(&errResp)
				assert.NoError(t, err)
				assert.Equal(t, false, errResp["success"])
				assert.Equal(t, "failed to fetch categories and products", errResp["error"])
				data, hasData := errResp["data"]
				assert.True(t, hasData, "failure body must carry a data key")
				assert.Nil(t, data)
				assert.NotContains(t, rec.Body.String(), "db down")
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			mockRepo := tc.mockRepoSetup()
			handler := NewCatalogHandler(mockRepo, newTestLogger())
			req := httptest.NewRequest("GET", "/api/v1/secure/category", nil)
			rec := httptest.NewRecorder()

			// Act
			handler.HandleGet(rec, req)

			// Assert
			assert.Equal(t, tc.expectedStatusCode, rec.Code)
			assert.Equal(t, 1, mockRepo.calls)

			if tc.checkResponse != nil {
				tc.checkResponse(t, rec)
			}
		})
	}
}
