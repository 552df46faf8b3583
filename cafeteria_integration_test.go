package main

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
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/officeeats/cafeteria-app/config"
	"github.com/officeeats/cafeteria-app/router"
	"github.com/officeeats/cafeteria-app/services"
)

type apiResponse struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func call(t *testing.T, r *gin.Engine, method, path, token string, payload interface{}) (*httptest.ResponseRecorder, apiResponse) {
	t.Helper()

	var body bytes.Buffer
	if payload != nil {
		require.NoError(t, json.NewEncoder(&body).Encode(payload))
	}

	req, err := http.NewRequest(method, path, &body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp apiResponse
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	}
	return w, resp
}

// TestCafeteriaEndToEnd walks the whole employee and admin journey over the
// real router: login, browse, fill a cart, place the order, work it through
// the kitchen, and check the dashboard and the notification log.
func TestCafeteriaEndToEnd(t *testing.T) {
	gin.SetMode(gin.TestMode)

	db, err := config.InitDB()
	require.NoError(t, err)

	carts := services.NewCartManager()
	notifier := services.NewNotifier(&services.LogSender{DB: db}, time.Second)
	orders := services.NewOrderService(db, carts, notifier)
	stats := services.NewStatsService(db)
	r := router.SetupRouter(db, carts, orders, stats, notifier)

	// Both demo accounts can log in.
	var employeeToken, adminToken string
	for _, creds := range []struct {
		email, password string
		token           *string
	}{
		{"john.doe@company.com", "employee123", &employeeToken},
		{"admin@company.com", "admin123", &adminToken},
	} {
		w, resp := call(t, r, http.MethodPost, "/auth/login", "", gin.H{
			"email":    creds.email,
			"password": creds.password,
		})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var data struct {
			Token string `json:"token"`
		}
		require.NoError(t, json.Unmarshal(resp.Data, &data))
		require.NotEmpty(t, data.Token)
		*creds.token = data.Token
	}

	// A websocket client is listening for live updates.
	srv := httptest.NewServer(r)
	defer srv.Close()
	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws?token=" + employeeToken
	ws, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer ws.Close()

	// The employee browses lunch and fills a cart.
	w, resp := call(t, r, http.MethodGet, "/menus?category=lunch", employeeToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var menus []struct {
		ID   uint   `json:"id"`
		Name string `json:"name"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &menus))
	require.NotEmpty(t, menus)

	w, _ = call(t, r, http.MethodPost, "/cart/items", employeeToken, gin.H{
		"menu_id":              menus[0].ID,
		"quantity":             2,
		"special_instructions": "no onions",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// Place the order.
	w, resp = call(t, r, http.MethodPost, "/orders", employeeToken, gin.H{"notes": "desk 14"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var placed struct {
		ID             uint       `json:"id"`
		Status         string     `json:"status"`
		Total          float64    `json:"total"`
		EstimatedReady *time.Time `json:"estimated_ready"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &placed))
	assert.Equal(t, "pending", placed.Status)
	assert.Greater(t, placed.Total, 0.0)
	require.NotNil(t, placed.EstimatedReady)

	// The placement is pushed to the websocket client.
	require.NoError(t, ws.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, raw, err := ws.ReadMessage()
	require.NoError(t, err)
	var event struct {
		Event string `json:"event"`
	}
	require.NoError(t, json.Unmarshal(raw, &event))
	assert.Equal(t, "order_update", event.Event)

	// The admin works the order through the kitchen.
	advance := fmt.Sprintf("/admin/orders/%d/advance", placed.ID)
	for _, want := range []string{"confirmed", "preparing", "ready", "completed"} {
		w, resp = call(t, r, http.MethodPatch, advance, adminToken, nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var got struct {
			Status string `json:"status"`
		}
		require.NoError(t, json.Unmarshal(resp.Data, &got))
		assert.Equal(t, want, got.Status)
	}

	// Completed revenue shows up on the dashboard.
	w, resp = call(t, r, http.MethodGet, "/admin/dashboard", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var dash struct {
		OrdersToday  int64   `json:"orders_today"`
		RevenueToday float64 `json:"revenue_today"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &dash))
	assert.GreaterOrEqual(t, dash.OrdersToday, int64(1))
	assert.InDelta(t, placed.Total, dash.RevenueToday, 0.0001)

	// Confirmation and ready-for-pickup notifications land in the log.
	require.Eventually(t, func() bool {
		w, resp := call(t, r, http.MethodGet, "/admin/notifications", adminToken, nil)
		if w.Code != http.StatusOK {
			return false
		}
		var notes []struct {
			Subject string `json:"subject"`
		}
		if err := json.Unmarshal(resp.Data, &notes); err != nil {
			return false
		}
		var confirmation, ready bool
		for _, n := range notes {
			switch n.Subject {
			case "Order Confirmation":
				confirmation = true
			case "Order Ready for Pickup":
				ready = true
			}
		}
		return confirmation && ready
	}, 2*time.Second, 10*time.Millisecond)
}
