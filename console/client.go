// Package console implements the API client and list presentation state used
// by the terminal frontend.
package console

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"inventory/models"
)

// ErrSessionExpired is returned when the server answers 401. The stored token
// is cleared before the error is reported, so the next call starts clean.
var ErrSessionExpired = errors.New("session expired")

type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %d %s", e.Status, e.Message)
}

type Client struct {
	baseURL string
	http    *http.Client

	mu    sync.Mutex
	token string
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

func (c *Client) Token() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.token
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		c.SetToken("")
		return ErrSessionExpired
	}
	if resp.StatusCode >= 400 {
		var payload struct {
			Message string `json:"message"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&payload)
		if payload.Message == "" {
			payload.Message = resp.Status
		}
		return &APIError{Status: resp.StatusCode, Message: payload.Message}
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *Client) Login(ctx context.Context, email, password string) error {
	var resp struct {
		Token string `json:"token"`
	}
	err := c.do(ctx, http.MethodPost, "/api/auth/login", models.LoginInput{
		Email:    email,
		Password: password,
	}, &resp)
	if err != nil {
		return err
	}
	c.SetToken(resp.Token)
	return nil
}

func (c *Client) Me(ctx context.Context) (models.User, error) {
	var user models.User
	err := c.do(ctx, http.MethodGet, "/api/auth/me", nil, &user)
	return user, err
}

func searchPath(path, search string) string {
	if search == "" {
		return path
	}
	return path + "?search=" + url.QueryEscape(search)
}

func (c *Client) Products(ctx context.Context, search string) ([]models.Product, error) {
	var products []models.Product
	err := c.do(ctx, http.MethodGet, searchPath("/api/products", search), nil, &products)
	return products, err
}

func (c *Client) Product(ctx context.Context, id string) (models.Product, error) {
	var product models.Product
	err := c.do(ctx, http.MethodGet, "/api/products/"+id, nil, &product)
	return product, err
}

func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/products/"+id, nil, nil)
}

// LowStockProducts returns products at or below their minimum, lowest
// quantity first.
func (c *Client) LowStockProducts(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	err := c.do(ctx, http.MethodGet, "/api/low-stock", nil, &products)
	return products, err
}

func (c *Client) Sales(ctx context.Context) ([]models.Sale, error) {
	var sales []models.Sale
	err := c.do(ctx, http.MethodGet, "/api/sales", nil, &sales)
	return sales, err
}

func (c *Client) RecentSales(ctx context.Context) ([]models.Sale, error) {
	var sales []models.Sale
	err := c.do(ctx, http.MethodGet, "/api/sales/recent", nil, &sales)
	return sales, err
}

func (c *Client) CreateSale(ctx context.Context, input models.SaleInput) (models.Sale, error) {
	var sale models.Sale
	err := c.do(ctx, http.MethodPost, "/api/sales", input, &sale)
	return sale, err
}

func (c *Client) PaySale(ctx context.Context, id string, input models.SalePaymentInput) (models.Sale, error) {
	var sale models.Sale
	err := c.do(ctx, http.MethodPut, "/api/sales/"+id+"/pay", input, &sale)
	return sale, err
}

func (c *Client) CancelSale(ctx context.Context, input models.CancelSaleInput) error {
	return c.do(ctx, http.MethodPost, "/api/sales/delete", input, nil)
}

func (c *Client) Customers(ctx context.Context, search string) ([]models.Customer, error) {
	var customers []models.Customer
	err := c.do(ctx, http.MethodGet, searchPath("/api/customers", search), nil, &customers)
	return customers, err
}

func (c *Client) CreateCustomer(ctx context.Context, customer models.Customer) (models.Customer, error) {
	var created models.Customer
	err := c.do(ctx, http.MethodPost, "/api/customers", customer, &created)
	return created, err
}

func (c *Client) DeleteCustomer(ctx context.Context, input models.DeleteInput) error {
	return c.do(ctx, http.MethodPost, "/api/customers/delete", input, nil)
}

func (c *Client) Expenses(ctx context.Context, search string) ([]models.Expense, error) {
	var expenses []models.Expense
	err := c.do(ctx, http.MethodGet, searchPath("/api/expend", search), nil, &expenses)
	return expenses, err
}

func (c *Client) Borrows(ctx context.Context) ([]models.Borrow, error) {
	var borrows []models.Borrow
	err := c.do(ctx, http.MethodGet, "/api/borrows", nil, &borrows)
	return borrows, err
}

func (c *Client) ApplyPartialPayment(ctx context.Context, id string, input models.PartialPaymentInput) (models.Borrow, error) {
	var borrow models.Borrow
	err := c.do(ctx, http.MethodPatch, "/api/borrows/"+id+"/partial-payment", input, &borrow)
	return borrow, err
}

type Stats struct {
	TotalProducts int64   `json:"totalProducts"`
	TotalSales    int64   `json:"totalSales"`
	TotalRevenue  float64 `json:"totalRevenue"`
	LowStockItems int64   `json:"lowStockItems"`
}

func (c *Client) Stats(ctx context.Context) (Stats, error) {
	var resp struct {
		Data Stats `json:"data"`
	}
	err := c.do(ctx, http.MethodGet, "/api/stats", nil, &resp)
	return resp.Data, err
}

func (c *Client) MonthlyStatistic(ctx context.Context, year, month int) (map[string]any, error) {
	var report map[string]any
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/statistic/%d/%d", year, month), nil, &report)
	return report, err
}
