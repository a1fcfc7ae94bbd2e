package contact

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Drwalbin/contacts-api/internal"
	"github.com/Drwalbin/contacts-api/internal/model"
	"github.com/Drwalbin/contacts-api/pkg/middleware"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Auth on the contact routes is exercised through the router wiring,
// the handlers themselves don't look at the caller identity
func newTestEnv(t *testing.T) (*gin.Engine, *internal.Deps) {
	t.Helper()

	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(model.Contact{}))

	d := &internal.Deps{DB: db}

	r := gin.New()
	r.Use(middleware.NewRequestIDMiddleware())

	r.GET("/api/contacts", func(c *gin.Context) { ContactList(c, d) })
	r.GET("/api/contacts/:contactId", func(c *gin.Context) { ContactFetch(c, d) })
	r.POST("/api/contacts", func(c *gin.Context) { ContactCreate(c, d) })
	r.PUT("/api/contacts/:contactId", func(c *gin.Context) { ContactUpdate(c, d) })
	r.PATCH("/api/contacts/:contactId/favorite", func(c *gin.Context) { ContactUpdateFavorite(c, d) })
	r.DELETE("/api/contacts/:contactId", func(c *gin.Context) { ContactDelete(c, d) })

	return r, d
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	resp := map[string]any{}
	if w.Body.Len() > 0 {
		json.Unmarshal(w.Body.Bytes(), &resp)
	}

	return w, resp
}

func TestContactCreate(t *testing.T) {
	r, d := newTestEnv(t)

	w, resp := doJSON(t, r, http.MethodPost, "/api/contacts", gin.H{
		"name":  "Ala Kowalska",
		"email": "ala@x.com",
		"phone": "123-456-789",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "Ala Kowalska", resp["name"])
	assert.Equal(t, false, resp["favorite"])

	var count int64
	require.NoError(t, d.DB.Model(model.Contact{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestContactCreateMissingName(t *testing.T) {
	r, _ := newTestEnv(t)

	w, _ := doJSON(t, r, http.MethodPost, "/api/contacts", gin.H{"email": "ala@x.com"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestContactCreateBadEmail(t *testing.T) {
	r, _ := newTestEnv(t)

	w, _ := doJSON(t, r, http.MethodPost, "/api/contacts", gin.H{"name": "Ala", "email": "nope"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestContactFetch(t *testing.T) {
	r, d := newTestEnv(t)

	c := model.Contact{Name: "Ola", Email: "ola@x.com"}
	require.NoError(t, d.DB.Create(&c).Error)

	w, resp := doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/contacts/%d", c.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Ola", resp["name"])

	w, resp = doJSON(t, r, http.MethodGet, "/api/contacts/99999", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Not found", resp["message"])
}

func TestContactListPagination(t *testing.T) {
	r, d := newTestEnv(t)

	for i := range 25 {
		require.NoError(t, d.DB.Create(&model.Contact{Name: fmt.Sprintf("c%02d", i)}).Error)
	}

	w, resp := doJSON(t, r, http.MethodGet, "/api/contacts?page=2&limit=10", nil)
	require.Equal(t, http.StatusOK, w.Code)

	assert.EqualValues(t, 25, resp["total"])
	assert.EqualValues(t, 2, resp["page"])

	contacts := resp["contacts"].([]any)
	require.Len(t, contacts, 10)

	first := contacts[0].(map[string]any)
	assert.Equal(t, "c10", first["name"])
}

func TestContactListBadPageParams(t *testing.T) {
	r, d := newTestEnv(t)
	require.NoError(t, d.DB.Create(&model.Contact{Name: "only"}).Error)

	// Garbage paging params fall back to defaults instead of failing
	w, resp := doJSON(t, r, http.MethodGet, "/api/contacts?page=x&limit=-5", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, resp["page"])
}

func TestContactUpdate(t *testing.T) {
	r, d := newTestEnv(t)

	c := model.Contact{Name: "Ola", Phone: "111"}
	require.NoError(t, d.DB.Create(&c).Error)

	w, resp := doJSON(t, r, http.MethodPut, fmt.Sprintf("/api/contacts/%d", c.ID), gin.H{"phone": "222"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "222", resp["phone"])
	assert.Equal(t, "Ola", resp["name"])

	w, _ = doJSON(t, r, http.MethodPut, "/api/contacts/99999", gin.H{"phone": "222"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = doJSON(t, r, http.MethodPut, fmt.Sprintf("/api/contacts/%d", c.ID), gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestContactFavorite(t *testing.T) {
	r, d := newTestEnv(t)

	c := model.Contact{Name: "Ola"}
	require.NoError(t, d.DB.Create(&c).Error)

	w, resp := doJSON(t, r, http.MethodPatch, fmt.Sprintf("/api/contacts/%d/favorite", c.ID), gin.H{"favorite": true})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, resp["favorite"])

	w, resp = doJSON(t, r, http.MethodPatch, fmt.Sprintf("/api/contacts/%d/favorite", c.ID), gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "missing field favorite", resp["message"])

	w, _ = doJSON(t, r, http.MethodPatch, "/api/contacts/99999/favorite", gin.H{"favorite": true})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestContactDelete(t *testing.T) {
	r, d := newTestEnv(t)

	c := model.Contact{Name: "Ola"}
	require.NoError(t, d.DB.Create(&c).Error)

	w, resp := doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/contacts/%d", c.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "contact deleted", resp["message"])

	// Deleting again is a 404, the record is gone
	w, _ = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/contacts/%d", c.ID), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
