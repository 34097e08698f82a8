package integrationtests

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"marketgo/internal/auction"
	"marketgo/internal/auth"
	"marketgo/internal/cart"
	"marketgo/internal/checkout"
	"marketgo/internal/dataservice"
	"marketgo/internal/listing"
	"marketgo/internal/messaging"
	"marketgo/internal/notify"
	"marketgo/internal/server"
	"marketgo/internal/storage"
	"marketgo/services/market/handler"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

// SetupTestRouter initializes the full application router over in-memory
// backends for integration testing.
func SetupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	db := dataservice.NewMemoryStore()
	kv := storage.NewMemoryStore()
	notifier := notify.NopNotifier{}

	marketHandler := handler.NewMarketHandler(
		auth.NewService(db),
		listing.NewService(db),
		auction.NewService(db, notifier),
		cart.NewManager(kv, notifier),
		checkout.NewService(db, notifier),
		messaging.NewService(db),
	)
	return server.SetupRouter(marketHandler)
}

// ExecuteRequest executes an HTTP request and returns the response recorder.
// An empty token leaves the request anonymous.
func ExecuteRequest(t *testing.T, router *gin.Engine, method, url, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reqBody []byte
	var err error
	switch v := body.(type) {
	case nil:
	case []byte:
		reqBody = v
	case string:
		reqBody = []byte(v)
	default:
		reqBody, err = json.Marshal(v)
		require.NoError(t, err)
	}

	req := httptest.NewRequest(method, url, bytes.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// ExecuteRequestAndParse executes an HTTP request and parses the JSON envelope.
func ExecuteRequestAndParse(t *testing.T, router *gin.Engine, method, url, token string, body any) (map[string]any, *httptest.ResponseRecorder) {
	t.Helper()

	w := ExecuteRequest(t, router, method, url, token, body)

	var resp map[string]any
	if len(w.Body.Bytes()) > 0 {
		err := json.Unmarshal(w.Body.Bytes(), &resp)
		require.NoError(t, err)
	}
	return resp, w
}

// SignUpUser registers an account and returns its user id and session token.
func SignUpUser(t *testing.T, router *gin.Engine, username string) (string, string) {
	t.Helper()

	resp, w := ExecuteRequestAndParse(t, router, http.MethodPost, "/auth/signup", "",
		map[string]any{"username": username, "password": "integration-pass"})
	require.Equal(t, http.StatusCreated, w.Code)

	data := resp["data"].(map[string]any)
	return data["user_id"].(string), data["token"].(string)
}

// CreateListing publishes a product as the given user and returns its id.
func CreateListing(t *testing.T, router *gin.Engine, token, title string, price float64) string {
	t.Helper()

	resp, w := ExecuteRequestAndParse(t, router, http.MethodPost, "/products", token,
		map[string]any{"title": title, "price": price, "category": "General"})
	require.Equal(t, http.StatusCreated, w.Code)

	data := resp["data"].(map[string]any)
	return data["product_id"].(string)
}
