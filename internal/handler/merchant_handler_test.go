package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"merchantdesk/internal/model"
	"merchantdesk/pkg/database"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.Merchant{}))
	database.SetDB(db)
}

func request(t *testing.T, handlerFunc echo.HandlerFunc, method, target, body string, params ...string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()

	var reqBody *strings.Reader
	if body != "" {
		reqBody = strings.NewReader(body)
	} else {
		reqBody = strings.NewReader("")
	}

	req := httptest.NewRequest(method, target, reqBody)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	for i := 0; i+1 < len(params); i += 2 {
		c.SetParamNames(params[i])
		c.SetParamValues(params[i+1])
	}

	require.NoError(t, handlerFunc(c))
	return rec
}

func seedMerchant(t *testing.T, name, country string) model.Merchant {
	t.Helper()
	m := model.Merchant{MerchantName: name, Country: country}
	require.NoError(t, database.GetDB().Create(&m).Error)
	return m
}

func TestCreateMerchant(t *testing.T) {
	setupTestDB(t)

	rec := request(t, CreateMerchant, http.MethodPost, "/merchants",
		`{"merchant_name":"  Acme  ","country":" US "}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created model.Merchant
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.NotZero(t, created.ID)
	assert.Equal(t, "Acme", created.MerchantName, "fields are trimmed before storage")
	assert.Equal(t, "US", created.Country)

	// The new record shows up in the list exactly once.
	rec = request(t, ListMerchants, http.MethodGet, "/merchants", "")
	var merchants []model.Merchant
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &merchants))
	require.Len(t, merchants, 1)
	assert.Equal(t, created.ID, merchants[0].ID)
}

func TestCreateMerchantValidation(t *testing.T) {
	setupTestDB(t)

	cases := []struct {
		name string
		body string
	}{
		{"missing name", `{"merchant_name":"","country":"US"}`},
		{"missing country", `{"merchant_name":"Acme","country":""}`},
		{"whitespace only", `{"merchant_name":"   ","country":"US"}`},
		{"name too short", `{"merchant_name":"A","country":"US"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := request(t, CreateMerchant, http.MethodPost, "/merchants", tc.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)

			var resp map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.NotEmpty(t, resp["error"])
		})
	}
}

func TestListMerchantsOrderedByID(t *testing.T) {
	setupTestDB(t)
	seedMerchant(t, "Charlie", "FR")
	seedMerchant(t, "Alpha", "DE")
	seedMerchant(t, "Bravo", "JP")

	rec := request(t, ListMerchants, http.MethodGet, "/merchants", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var merchants []model.Merchant
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &merchants))
	require.Len(t, merchants, 3)
	for i := 1; i < len(merchants); i++ {
		assert.Less(t, merchants[i-1].ID, merchants[i].ID)
	}
}

func TestGetMerchant(t *testing.T) {
	setupTestDB(t)
	m := seedMerchant(t, "Acme", "US")

	rec := request(t, GetMerchant, http.MethodGet, "/merchants/1", "",
		"id", fmt.Sprint(m.ID))
	require.Equal(t, http.StatusOK, rec.Code)

	var got model.Merchant
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, m.ID, got.ID)
	assert.Equal(t, "Acme", got.MerchantName)
}

func TestGetMerchantAbsentReturnsNull(t *testing.T) {
	setupTestDB(t)

	rec := request(t, GetMerchant, http.MethodGet, "/merchants/99", "", "id", "99")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "null", strings.TrimSpace(rec.Body.String()))
}

func TestGetMerchantInvalidID(t *testing.T) {
	setupTestDB(t)

	rec := request(t, GetMerchant, http.MethodGet, "/merchants/abc", "", "id", "abc")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateMerchant(t *testing.T) {
	setupTestDB(t)
	m := seedMerchant(t, "Acme", "US")

	rec := request(t, UpdateMerchant, http.MethodPut, "/merchants/1",
		`{"merchant_name":"Acme Corp","country":"Canada"}`,
		"id", fmt.Sprint(m.ID))
	require.Equal(t, http.StatusOK, rec.Code)

	var updated model.Merchant
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, m.ID, updated.ID)
	assert.Equal(t, "Acme Corp", updated.MerchantName)
	assert.Equal(t, "Canada", updated.Country)
}

func TestUpdateMerchantNotFound(t *testing.T) {
	setupTestDB(t)

	rec := request(t, UpdateMerchant, http.MethodPut, "/merchants/99",
		`{"merchant_name":"Ghost","country":"Nowhere"}`,
		"id", "99")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteMerchantIdempotent(t *testing.T) {
	setupTestDB(t)
	m := seedMerchant(t, "Acme", "US")

	rec := request(t, DeleteMerchant, http.MethodDelete, "/merchants/1", "",
		"id", fmt.Sprint(m.ID))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, float64(m.ID), resp["id"])
	assert.Equal(t, "Merchant deleted", resp["message"])

	// Deleting the same ID again still succeeds.
	rec = request(t, DeleteMerchant, http.MethodDelete, "/merchants/1", "",
		"id", fmt.Sprint(m.ID))
	assert.Equal(t, http.StatusOK, rec.Code)

	// And the list no longer contains it.
	rec = request(t, ListMerchants, http.MethodGet, "/merchants", "")
	var merchants []model.Merchant
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &merchants))
	assert.Empty(t, merchants)
}
