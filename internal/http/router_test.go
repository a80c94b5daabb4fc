package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/resumoteca/resumoteca/internal/auth"
	"github.com/resumoteca/resumoteca/internal/config"
	"github.com/resumoteca/resumoteca/internal/database"
	"github.com/resumoteca/resumoteca/internal/database/books"
	"github.com/resumoteca/resumoteca/internal/database/taxonomy"
)

func setupTestRouter(t *testing.T) (*gin.Engine, *books.Repository, func()) {
	gin.SetMode(gin.TestMode)

	dbPath := "./test_http_" + t.Name() + ".db"
	db, err := database.NewDatabase(dbPath)
	require.NoError(t, err)

	taxonomyRepo := taxonomy.NewRepository(db.DB)
	booksRepo := books.NewRepository(db.DB, taxonomyRepo)

	authCfg := config.Auth{Mode: config.AuthModeNone}
	router := NewRouter(RouterConfig{
		Database:       db,
		Version:        "test",
		BookReader:     booksRepo,
		BookWriter:     booksRepo,
		TaxonomyReader: taxonomyRepo,
		AuthConfig:     authCfg,
		AuthMiddleware: auth.NewMiddleware(nil, nil, authCfg),
	})

	cleanup := func() {
		db.Close()
		os.Remove(dbPath)
	}

	return router, booksRepo, cleanup
}

func validPayload(slug string) map[string]any {
	return map[string]any{
		"title":      "Deep Work: Regras para o Sucesso em um Mundo Distraído",
		"author":     "Cal Newport",
		"year":       2016,
		"categories": []string{"Produtividade", "Negócios"},
		"themes":     []string{"Foco", "Trabalho profundo"},
		"summary": "Cal Newport argumenta que a capacidade de concentração profunda é cada vez mais rara e valiosa " +
			"na economia atual, e apresenta estratégias concretas para cultivá-la no dia a dia.",
		"keyTakeaways": []string{
			"O trabalho profundo é raro e valioso",
			"Elimine distrações sistematicamente",
			"Crie rotinas de concentração",
		},
		"forWhom": "Profissionais do conhecimento que precisam de foco prolongado.",
		"quote":   "Clareza sobre o que importa fornece clareza sobre o que não importa.",
		"slug":    slug,
	}
}

func doJSON(router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func TestHealthEndpoints(t *testing.T) {
	router, _, cleanup := setupTestRouter(t)
	defer cleanup()

	rr := doJSON(router, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = doJSON(router, http.MethodGet, "/ping", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "pong")
}

func TestGetAllBooks_Empty(t *testing.T) {
	router, _, cleanup := setupTestRouter(t)
	defer cleanup()

	rr := doJSON(router, http.MethodGet, "/api/books", nil)

	assert.Equal(t, http.StatusOK, rr.Code)
	var resp struct {
		Count int        `json:"count"`
		Books []BookView `json:"books"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Zero(t, resp.Count)
	assert.NotNil(t, resp.Books)
}

func TestCreateBook(t *testing.T) {
	router, _, cleanup := setupTestRouter(t)
	defer cleanup()

	rr := doJSON(router, http.MethodPost, "/api/admin/books", validPayload("deep-work"))

	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	var view BookView
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &view))
	assert.NotZero(t, view.ID)
	assert.Equal(t, "deep-work", view.Slug)
	assert.ElementsMatch(t, []string{"Produtividade", "Negócios"}, view.Categories)
	assert.Len(t, view.KeyTakeaways, 3)
	// Omitted cover image falls back to the placeholder
	assert.Equal(t, config.PlaceholderCover, view.CoverImage)
}

func TestCreateBook_ValidationErrors(t *testing.T) {
	router, _, cleanup := setupTestRouter(t)
	defer cleanup()

	payload := validPayload("bad-book")
	payload["title"] = "ab"
	payload["year"] = 999
	payload["categories"] = []string{}
	payload["keyTakeaways"] = []string{"um", "dois"}

	rr := doJSON(router, http.MethodPost, "/api/admin/books", payload)

	require.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	var resp struct {
		Error   string            `json:"error"`
		Details map[string]string `json:"details"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Contains(t, resp.Details, "title")
	assert.Contains(t, resp.Details, "year")
	assert.Contains(t, resp.Details, "categories")
	assert.Contains(t, resp.Details, "keyTakeaways")
	// Valid fields carry no error
	assert.NotContains(t, resp.Details, "author")
}

func TestCreateBook_InvalidSlug(t *testing.T) {
	router, _, cleanup := setupTestRouter(t)
	defer cleanup()

	for _, slug := range []string{"Com-Maiuscula", "espaço aqui", "-leading", "trailing-", "doubled--hyphen"} {
		rr := doJSON(router, http.MethodPost, "/api/admin/books", validPayload(slug))
		assert.Equal(t, http.StatusUnprocessableEntity, rr.Code, "slug %q should be rejected", slug)
	}
}

func TestCreateBook_DuplicateSlug(t *testing.T) {
	router, _, cleanup := setupTestRouter(t)
	defer cleanup()

	rr := doJSON(router, http.MethodPost, "/api/admin/books", validPayload("deep-work"))
	require.Equal(t, http.StatusCreated, rr.Code)

	rr = doJSON(router, http.MethodPost, "/api/admin/books", validPayload("deep-work"))
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Contains(t, rr.Body.String(), "duplicate_slug")
}

func TestCreateBook_MalformedJSON(t *testing.T) {
	router, _, cleanup := setupTestRouter(t)
	defer cleanup()

	req := httptest.NewRequest(http.MethodPost, "/api/admin/books", bytes.NewBufferString("{not json"))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestGetBookBySlug(t *testing.T) {
	router, _, cleanup := setupTestRouter(t)
	defer cleanup()

	rr := doJSON(router, http.MethodPost, "/api/admin/books", validPayload("deep-work"))
	require.Equal(t, http.StatusCreated, rr.Code)

	rr = doJSON(router, http.MethodGet, "/api/books/deep-work", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	var view BookView
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &view))
	assert.Equal(t, "Cal Newport", view.Author)

	rr = doJSON(router, http.MethodGet, "/api/books/nao-existe", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestSearchBooks(t *testing.T) {
	router, _, cleanup := setupTestRouter(t)
	defer cleanup()

	rr := doJSON(router, http.MethodPost, "/api/admin/books", validPayload("deep-work"))
	require.Equal(t, http.StatusCreated, rr.Code)

	// Case-insensitive substring match
	rr = doJSON(router, http.MethodGet, "/api/books/search?q=DEEP", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	var resp struct {
		Count int `json:"count"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Count)

	// Theme names are searchable too
	rr = doJSON(router, http.MethodGet, "/api/books/search?q=foco", nil)
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Count)

	// Empty query yields an empty result set
	rr = doJSON(router, http.MethodGet, "/api/books/search?q=", nil)
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Zero(t, resp.Count)
}

func TestGetAllCategories_SeededDefaults(t *testing.T) {
	router, _, cleanup := setupTestRouter(t)
	defer cleanup()

	rr := doJSON(router, http.MethodGet, "/api/categories", nil)

	assert.Equal(t, http.StatusOK, rr.Code)
	var resp struct {
		Count      int            `json:"count"`
		Categories []CategoryView `json:"categories"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, len(database.DefaultCategoryNames()), resp.Count)
	for _, view := range resp.Categories {
		assert.Zero(t, view.BookCount)
	}
}

func TestGetBooksByCategory(t *testing.T) {
	router, _, cleanup := setupTestRouter(t)
	defer cleanup()

	rr := doJSON(router, http.MethodPost, "/api/admin/books", validPayload("deep-work"))
	require.Equal(t, http.StatusCreated, rr.Code)

	rr = doJSON(router, http.MethodGet, "/api/categories/Produtividade/books", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	var resp struct {
		Count int `json:"count"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Count)

	// Known category with no books is an empty list, not a 404
	rr = doJSON(router, http.MethodGet, "/api/categories/Filosofia/books", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Zero(t, resp.Count)

	// Matching is exact and case-sensitive: unknown name is a 404
	rr = doJSON(router, http.MethodGet, "/api/categories/produtividade/books", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestUpdateBook(t *testing.T) {
	router, repo, cleanup := setupTestRouter(t)
	defer cleanup()

	rr := doJSON(router, http.MethodPost, "/api/admin/books", validPayload("deep-work"))
	require.Equal(t, http.StatusCreated, rr.Code)
	var created BookView
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &created))

	payload := validPayload("deep-work")
	payload["title"] = "Deep Work (edição revisada e ampliada)"
	payload["categories"] = []string{"Negócios"}

	rr = doJSON(router, http.MethodPut, fmt.Sprintf("/api/admin/books/%d", created.ID), payload)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	var updated BookView
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &updated))
	assert.Equal(t, "Deep Work (edição revisada e ampliada)", updated.Title)
	assert.Equal(t, []string{"Negócios"}, updated.Categories)

	// The stored row matches what the API returned
	book, err := repo.GetBookByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, updated.Title, book.Title)
}

func TestUpdateBook_NotFound(t *testing.T) {
	router, _, cleanup := setupTestRouter(t)
	defer cleanup()

	rr := doJSON(router, http.MethodPut, "/api/admin/books/9999", validPayload("ghost"))
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestDeleteBook(t *testing.T) {
	router, _, cleanup := setupTestRouter(t)
	defer cleanup()

	rr := doJSON(router, http.MethodPost, "/api/admin/books", validPayload("deep-work"))
	require.Equal(t, http.StatusCreated, rr.Code)
	var created BookView
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &created))

	rr = doJSON(router, http.MethodDelete, fmt.Sprintf("/api/admin/books/%d", created.ID), nil)
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = doJSON(router, http.MethodGet, "/api/books/deep-work", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestDeleteBook_NotFound(t *testing.T) {
	router, _, cleanup := setupTestRouter(t)
	defer cleanup()

	rr := doJSON(router, http.MethodDelete, "/api/admin/books/9999", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = doJSON(router, http.MethodDelete, "/api/admin/books/not-a-number", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
