package apiclient

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
	"time"
)

// ErrUnauthorized marks a 401 from the backend: the stored token is expired
// or revoked and the session must be cleared.
var ErrUnauthorized = errors.New("unauthorized")

// APIError is a non-2xx backend answer carrying the localized detail message
// from the error envelope.
type APIError struct {
	Status int
	Detail string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Detail)
}

type User struct {
	Code    string `json:"code"`
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	IsAdmin int    `json:"is_admin"`
	IDHash  string `json:"id_hash"`
}

type LoginResult struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	User        User   `json:"user"`
}

type ChatResult struct {
	Reply       string `json:"reply"`
	OrderPlaced bool   `json:"order_placed"`
}

type Location struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type Statistics struct {
	TotalUsers     int64 `json:"total_users"`
	TotalAdmins    int64 `json:"total_admins"`
	TotalLocations int64 `json:"total_locations"`
	TotalOrders    int64 `json:"total_orders"`
	OrdersToday    int64 `json:"orders_today"`
}

// Client talks to the assistant backend. A zero token on a call means the
// endpoint is public.
type Client struct {
	baseURL string
	http    *http.Client
}

// New builds a client for the backend at baseURL.
func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 60 * time.Second},
	}
}

func (c *Client) do(ctx context.Context, method, path, token string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("backend unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var detail struct {
			Detail string `json:"detail"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&detail)
		if resp.StatusCode == http.StatusUnauthorized {
			return fmt.Errorf("%w: %s", ErrUnauthorized, detail.Detail)
		}
		return &APIError{Status: resp.StatusCode, Detail: detail.Detail}
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// Login exchanges an access code for a token and profile.
func (c *Client) Login(ctx context.Context, code string) (*LoginResult, error) {
	var result LoginResult
	err := c.do(ctx, http.MethodPost, "/login_json", "", map[string]string{"code": code}, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// Chat runs one assistant turn with the prior conversation history.
func (c *Client) Chat(ctx context.Context, token, message string, history []string) (*ChatResult, error) {
	var result ChatResult
	err := c.do(ctx, http.MethodPost, "/chat", token, map[string]interface{}{
		"message": message,
		"history": history,
	}, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// Locations returns the caller's allowed delivery sites.
func (c *Client) Locations(ctx context.Context, token string) ([]Location, error) {
	var result []Location
	if err := c.do(ctx, http.MethodGet, "/user-locations", token, nil, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// --- Admin console operations ---

func (c *Client) ListUsers(ctx context.Context, token string) ([]User, error) {
	var result []User
	if err := c.do(ctx, http.MethodGet, "/admin/users", token, nil, &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *Client) CreateUser(ctx context.Context, token, code, name, phone string) error {
	return c.do(ctx, http.MethodPost, "/admin/users", token, map[string]string{
		"code":  code,
		"name":  name,
		"phone": phone,
	}, nil)
}

func (c *Client) UpdateUserField(ctx context.Context, token, ref, field, value string) error {
	return c.do(ctx, http.MethodPut, "/admin/users/"+url.PathEscape(ref), token, map[string]string{
		"field": field,
		"value": value,
	}, nil)
}

func (c *Client) DeleteUser(ctx context.Context, token, ref string) error {
	return c.do(ctx, http.MethodDelete, "/admin/users/"+url.PathEscape(ref), token, nil, nil)
}

func (c *Client) LocationCatalog(ctx context.Context, token string) ([]Location, error) {
	var result []Location
	if err := c.do(ctx, http.MethodGet, "/admin/locations", token, nil, &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *Client) CreateLocation(ctx context.Context, token, name string) error {
	return c.do(ctx, http.MethodPost, "/admin/locations", token, map[string]string{"name": name}, nil)
}

func (c *Client) DeleteLocation(ctx context.Context, token string, id uint) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/admin/locations/%d", id), token, nil, nil)
}

func (c *Client) UserLocations(ctx context.Context, token, userRef string) ([]Location, error) {
	var result []Location
	path := "/admin/user-locations?user_ref=" + url.QueryEscape(userRef)
	if err := c.do(ctx, http.MethodGet, path, token, nil, &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *Client) SetUserLocations(ctx context.Context, token, userRef string, locationIDs []uint) error {
	if locationIDs == nil {
		locationIDs = []uint{}
	}
	return c.do(ctx, http.MethodPut, "/admin/user-locations", token, map[string]interface{}{
		"user_ref":     userRef,
		"location_ids": locationIDs,
	}, nil)
}

func (c *Client) AddUserLocation(ctx context.Context, token, userRef string, locationID uint) error {
	return c.do(ctx, http.MethodPost, "/admin/user-locations/add", token, map[string]interface{}{
		"user_ref":    userRef,
		"location_id": locationID,
	}, nil)
}

func (c *Client) RemoveUserLocation(ctx context.Context, token, userRef string, locationID uint) error {
	return c.do(ctx, http.MethodDelete, "/admin/user-locations/remove", token, map[string]interface{}{
		"user_ref":    userRef,
		"location_id": locationID,
	}, nil)
}

func (c *Client) GetStatistics(ctx context.Context, token string) (*Statistics, error) {
	var result Statistics
	if err := c.do(ctx, http.MethodGet, "/admin/statistics", token, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
