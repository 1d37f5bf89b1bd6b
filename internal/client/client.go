package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/mbsolutions/storefront/internal/domain/catalog"
)

// APIError carries the decoded error body of a failed storefront call
type APIError struct {
	Status     int      `json:"-"`
	Message    string   `json:"error"`
	Allowed    []string `json:"allowed,omitempty"`
	RetryAfter int      `json:"retryAfter,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("storefront: %s (status %d)", e.Message, e.Status)
}

// Client talks to the storefront API. The zero token is fine for public
// endpoints; call Login (or SetToken) before using the admin operations.
type Client struct {
	baseURL string
	http    *http.Client
	token   string
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client, mainly for tests
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithToken seeds the client with an existing bearer token
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// New creates a storefront API client for the given base URL
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetToken replaces the bearer token used for admin calls
func (c *Client) SetToken(token string) {
	c.token = token
}

type loginRequest struct {
	Usuario    string `json:"usuario"`
	Contrasena string `json:"contraseña"`
}

type loginResponse struct {
	Success bool   `json:"success"`
	Token   string `json:"token"`
	Message string `json:"message"`
}

// Login authenticates against the admin credential and stores the returned
// token on the client for subsequent admin calls
func (c *Client) Login(ctx context.Context, usuario, contrasena string) (string, error) {
	var resp loginResponse
	err := c.do(ctx, http.MethodPost, "/api/login", loginRequest{Usuario: usuario, Contrasena: contrasena}, &resp)
	if err != nil {
		return "", err
	}
	c.token = resp.Token
	return resp.Token, nil
}

// Products fetches the full public catalog
func (c *Client) Products(ctx context.Context) ([]catalog.Product, error) {
	var products []catalog.Product
	if err := c.do(ctx, http.MethodGet, "/api/productos", nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// Product fetches a single catalog entry by id
func (c *Client) Product(ctx context.Context, id int64) (*catalog.Product, error) {
	var product catalog.Product
	if err := c.do(ctx, http.MethodGet, "/api/productos/"+strconv.FormatInt(id, 10), nil, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// ProductInput is the admin create/update payload. For updates, nil pointer
// fields are left untouched by the server.
type ProductInput struct {
	Code        *string  `json:"code,omitempty"`
	Name        *string  `json:"name,omitempty"`
	Category    *string  `json:"category,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	Stock       *int     `json:"stock,omitempty"`
	Description *string  `json:"description,omitempty"`
	Image       *string  `json:"image,omitempty"`
}

type mutationResponse struct {
	Success bool             `json:"success"`
	Message string           `json:"message"`
	Product *catalog.Product `json:"product"`
}

// CreateProduct adds a product to the catalog (admin)
func (c *Client) CreateProduct(ctx context.Context, input ProductInput) (*catalog.Product, error) {
	var resp mutationResponse
	if err := c.do(ctx, http.MethodPost, "/api/productos", input, &resp); err != nil {
		return nil, err
	}
	return resp.Product, nil
}

// UpdateProduct applies a partial update to a product (admin)
func (c *Client) UpdateProduct(ctx context.Context, id int64, input ProductInput) (*catalog.Product, error) {
	var resp mutationResponse
	if err := c.do(ctx, http.MethodPut, "/api/productos/"+strconv.FormatInt(id, 10), input, &resp); err != nil {
		return nil, err
	}
	return resp.Product, nil
}

// DeleteProduct removes a product and returns the removed record (admin)
func (c *Client) DeleteProduct(ctx context.Context, id int64) (*catalog.Product, error) {
	var resp mutationResponse
	if err := c.do(ctx, http.MethodDelete, "/api/productos/"+strconv.FormatInt(id, 10), nil, &resp); err != nil {
		return nil, err
	}
	return resp.Product, nil
}

// OrderCustomer mirrors the checkout form fields
type OrderCustomer struct {
	Nombre    string `json:"nombre"`
	Email     string `json:"email"`
	Telefono  string `json:"telefono,omitempty"`
	Direccion string `json:"direccion"`
	Notas     string `json:"notas,omitempty"`
}

// OrderLine is one cart line as submitted at checkout
type OrderLine struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

// OrderRequest is the checkout payload
type OrderRequest struct {
	Cliente   OrderCustomer `json:"cliente"`
	Productos []OrderLine   `json:"productos"`
	Total     float64       `json:"total"`
	Fecha     string        `json:"fecha,omitempty"`
}

type orderResponse struct {
	Success  bool   `json:"success"`
	Message  string `json:"message"`
	PedidoID int64  `json:"pedidoId"`
}

// SubmitOrder sends a checkout order and returns the assigned order id
func (c *Client) SubmitOrder(ctx context.Context, req OrderRequest) (int64, error) {
	var resp orderResponse
	if err := c.do(ctx, http.MethodPost, "/api/enviar-pedido", req, &resp); err != nil {
		return 0, err
	}
	return resp.PedidoID, nil
}

// HealthStatus is the health endpoint response
type HealthStatus struct {
	Status    string `json:"status"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

// Health checks whether the API is up
func (c *Client) Health(ctx context.Context) (*HealthStatus, error) {
	var status HealthStatus
	if err := c.do(ctx, http.MethodGet, "/api/health", nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		apiErr := &APIError{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		_ = json.NewDecoder(resp.Body).Decode(apiErr)
		return apiErr
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
