// Package client is a typed HTTP client for the marketplace API.
package client

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
)

// APIError is returned for every non-2xx response.
type APIError struct {
	Status  int    `json:"-"`
	Code    string `json:"error"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d %s: %s", e.Status, e.Code, e.Message)
}

type Client struct {
	http *resty.Client
}

// New creates a client for the server at baseURL, e.g. http://localhost:4000.
func New(baseURL string) *Client {
	r := resty.New().
		SetBaseURL(baseURL+"/api").
		SetTimeout(30*time.Second).
		SetHeader("Accept", "application/json").
		SetError(&APIError{})
	return &Client{http: r}
}

// SetToken sets the bearer token sent with every request.
func (c *Client) SetToken(token string) {
	c.http.SetAuthToken(token)
}

type tokenResponse struct {
	Token string `json:"token"`
}

type okResponse struct {
	OK bool `json:"ok"`
}

func (c *Client) do(ctx context.Context, method, path string, body, result interface{}) error {
	req := c.http.R().SetContext(ctx)
	if body != nil {
		req.SetHeader("Content-Type", "application/json").SetBody(body)
	}
	if result != nil {
		req.SetResult(result)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		return err
	}
	return checkResponse(resp)
}

func checkResponse(resp *resty.Response) error {
	if !resp.IsError() {
		return nil
	}
	apiErr, ok := resp.Error().(*APIError)
	if !ok || apiErr == nil {
		apiErr = &APIError{Message: string(resp.Body())}
	}
	apiErr.Status = resp.StatusCode()
	return apiErr
}

// Register creates an account and keeps the returned token for later calls.
func (c *Client) Register(ctx context.Context, email, password, username string) (string, error) {
	var out tokenResponse
	body := map[string]string{"email": email, "password": password, "username": username}
	if err := c.do(ctx, http.MethodPost, "/auth/register", body, &out); err != nil {
		return "", err
	}
	c.SetToken(out.Token)
	return out.Token, nil
}

// Login keeps the returned token for later calls.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	var out tokenResponse
	body := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/auth/login", body, &out); err != nil {
		return "", err
	}
	c.SetToken(out.Token)
	return out.Token, nil
}

func (c *Client) Me(ctx context.Context) (*User, error) {
	var out User
	if err := c.do(ctx, http.MethodGet, "/me", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateUsername(ctx context.Context, username string) (*User, error) {
	var out User
	if err := c.do(ctx, http.MethodPut, "/me", map[string]string{"username": username}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Categories(ctx context.Context) ([]Category, error) {
	var out []Category
	if err := c.do(ctx, http.MethodGet, "/categories", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateProduct(ctx context.Context, p NewProduct) (*Product, error) {
	var out Product
	if err := c.do(ctx, http.MethodPost, "/products", p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateProduct(ctx context.Context, id uint, patch ProductPatch) (*Product, error) {
	var out Product
	if err := c.do(ctx, http.MethodPut, "/products/"+strconv.FormatUint(uint64(id), 10), patch, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteProduct(ctx context.Context, id uint) error {
	var out okResponse
	return c.do(ctx, http.MethodDelete, "/products/"+strconv.FormatUint(uint64(id), 10), nil, &out)
}

func (c *Client) MyListings(ctx context.Context) ([]Product, error) {
	var out []Product
	if err := c.do(ctx, http.MethodGet, "/my/listings", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ExportListings downloads the caller's listings as an xlsx workbook.
func (c *Client) ExportListings(ctx context.Context) ([]byte, error) {
	resp, err := c.http.R().SetContext(ctx).Get("/my/listings/export")
	if err != nil {
		return nil, err
	}
	if err := checkResponse(resp); err != nil {
		return nil, err
	}
	return resp.Body(), nil
}

func (c *Client) SearchProducts(ctx context.Context, q SearchQuery) ([]ProductSummary, error) {
	var out []ProductSummary
	req := c.http.R().SetContext(ctx).SetResult(&out)
	if q.Query != "" {
		req.SetQueryParam("q", q.Query)
	}
	if q.CategoryID != 0 {
		req.SetQueryParam("categoryId", strconv.FormatUint(uint64(q.CategoryID), 10))
	}
	resp, err := req.Get("/products")
	if err != nil {
		return nil, err
	}
	if err := checkResponse(resp); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Product(ctx context.Context, id uint) (*Product, error) {
	var out Product
	if err := c.do(ctx, http.MethodGet, "/products/"+strconv.FormatUint(uint64(id), 10), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) AddToCart(ctx context.Context, productID uint, quantity int) (*CartItem, error) {
	var out CartItem
	body := map[string]interface{}{"productId": productID, "quantity": quantity}
	if err := c.do(ctx, http.MethodPost, "/cart/add", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Cart(ctx context.Context) ([]CartItem, error) {
	var out []CartItem
	if err := c.do(ctx, http.MethodGet, "/cart", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) RemoveFromCart(ctx context.Context, itemID uint) error {
	var out okResponse
	return c.do(ctx, http.MethodDelete, "/cart/"+strconv.FormatUint(uint64(itemID), 10), nil, &out)
}

func (c *Client) Checkout(ctx context.Context) (*Order, error) {
	var out Order
	if err := c.do(ctx, http.MethodPost, "/checkout", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Orders(ctx context.Context) ([]Order, error) {
	var out []Order
	if err := c.do(ctx, http.MethodGet, "/orders", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// PresignImageUpload asks for an upload URL for a listing image.
func (c *Client) PresignImageUpload(ctx context.Context, filename, contentType string) (*ImageUpload, error) {
	var out ImageUpload
	body := map[string]string{"filename": filename, "contentType": contentType}
	if err := c.do(ctx, http.MethodPost, "/upload/image", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
