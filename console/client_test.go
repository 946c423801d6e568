package console

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inventory/models"
)

func newTestServer(t *testing.T, register func(r *gin.Engine)) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	register(r)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func TestLoginStoresToken(t *testing.T) {
	srv := newTestServer(t, func(r *gin.Engine) {
		r.POST("/api/auth/login", func(c *gin.Context) {
			var body map[string]string
			require.NoError(t, c.ShouldBindJSON(&body))
			assert.Equal(t, "admin@example.com", body["email"])
			c.JSON(http.StatusOK, gin.H{"token": "tok-123"})
		})
	})

	client := NewClient(srv.URL)
	require.NoError(t, client.Login(context.Background(), "admin@example.com", "secret"))
	assert.Equal(t, "tok-123", client.Token())
}

func TestBearerHeaderAttached(t *testing.T) {
	srv := newTestServer(t, func(r *gin.Engine) {
		r.GET("/api/products", func(c *gin.Context) {
			assert.Equal(t, "Bearer tok-123", c.GetHeader("Authorization"))
			c.JSON(http.StatusOK, []gin.H{})
		})
	})

	client := NewClient(srv.URL)
	client.SetToken("tok-123")
	_, err := client.Products(context.Background(), "")
	require.NoError(t, err)
}

func TestUnauthorizedClearsToken(t *testing.T) {
	srv := newTestServer(t, func(r *gin.Engine) {
		r.GET("/api/products", func(c *gin.Context) {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid token"})
		})
	})

	client := NewClient(srv.URL)
	client.SetToken("expired")
	_, err := client.Products(context.Background(), "")
	require.ErrorIs(t, err, ErrSessionExpired)
	assert.Empty(t, client.Token())
}

func TestAPIErrorCarriesServerMessage(t *testing.T) {
	srv := newTestServer(t, func(r *gin.Engine) {
		r.POST("/api/customers/delete", func(c *gin.Context) {
			c.JSON(http.StatusForbidden, gin.H{"message": "Invalid password"})
		})
	})

	client := NewClient(srv.URL)
	client.SetToken("tok")
	err := client.DeleteCustomer(context.Background(), models.DeleteInput{ID: "abc", Pass: "wrong"})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusForbidden, apiErr.Status)
	assert.Equal(t, "Invalid password", apiErr.Message)
}

func TestLowStockOrderPreserved(t *testing.T) {
	srv := newTestServer(t, func(r *gin.Engine) {
		r.GET("/api/low-stock", func(c *gin.Context) {
			c.JSON(http.StatusOK, []gin.H{
				{"name": "bolts", "quantity": 0},
				{"name": "nuts", "quantity": 2},
				{"name": "screws", "quantity": 4},
			})
		})
	})

	client := NewClient(srv.URL)
	client.SetToken("tok")
	products, err := client.LowStockProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 3)
	assert.Equal(t, "bolts", products[0].Name)
	assert.True(t, products[0].Quantity <= products[1].Quantity)
	assert.True(t, products[1].Quantity <= products[2].Quantity)
}

func TestSearchQueryEncoded(t *testing.T) {
	srv := newTestServer(t, func(r *gin.Engine) {
		r.GET("/api/customers", func(c *gin.Context) {
			assert.Equal(t, "hand saw", c.Query("search"))
			c.JSON(http.StatusOK, []gin.H{})
		})
	})

	client := NewClient(srv.URL)
	client.SetToken("tok")
	_, err := client.Customers(context.Background(), "hand saw")
	require.NoError(t, err)
}
