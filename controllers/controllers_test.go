package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/officeeats/cafeteria-app/config"
	"github.com/officeeats/cafeteria-app/router"
	"github.com/officeeats/cafeteria-app/services"
)

// newTestServer stands up the full router against a fresh in-memory
// database with the demo seed data.
func newTestServer(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db))
	require.NoError(t, config.Seed(db))

	carts := services.NewCartManager()
	notifier := services.NewNotifier(&services.LogSender{DB: db}, time.Second)
	orders := services.NewOrderService(db, carts, notifier)
	stats := services.NewStatsService(db)

	return router.SetupRouter(db, carts, orders, stats, notifier), db
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var body *bytes.Buffer
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewBuffer(raw)
	} else {
		body = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequest(method, path, body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data, _ := resp["data"].(map[string]interface{})
	return data
}

func decodeList(t *testing.T, w *httptest.ResponseRecorder) []interface{} {
	t.Helper()
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	list, _ := resp["data"].([]interface{})
	return list
}

func login(t *testing.T, r *gin.Engine, email, password string) string {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/auth/login", "", gin.H{
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	token, _ := decodeData(t, w)["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func loginAdmin(t *testing.T, r *gin.Engine) string {
	return login(t, r, "admin@company.com", "admin123")
}

func loginEmployee(t *testing.T, r *gin.Engine) string {
	return login(t, r, "john.doe@company.com", "employee123")
}
