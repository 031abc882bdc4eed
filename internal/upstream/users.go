package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// Profile 上游用户档案
type Profile struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

// AddressInput 收货地址载荷
type AddressInput struct {
	Label        string `json:"label,omitempty"`
	AddressLine1 string `json:"address_line1"`
	AddressLine2 string `json:"address_line2,omitempty"`
	City         string `json:"city"`
	State        string `json:"state,omitempty"`
	Pincode      string `json:"pincode"`
	Phone        string `json:"phone,omitempty"`
	IsDefault    bool   `json:"is_default,omitempty"`
}

// Address 上游返回的收货地址
type Address struct {
	ID           uint   `json:"id"`
	Label        string `json:"label"`
	AddressLine1 string `json:"address_line1"`
	AddressLine2 string `json:"address_line2"`
	City         string `json:"city"`
	State        string `json:"state"`
	Pincode      string `json:"pincode"`
	Phone        string `json:"phone"`
	IsDefault    bool   `json:"is_default"`
}

// Login 登录代理（原样透传响应，令牌由上游签发）
func (c *Client) Login(ctx context.Context, body json.RawMessage) (json.RawMessage, error) {
	return c.ProxyJSON(ctx, http.MethodPost, "/auth/login/", "", body)
}

// Register 注册代理
func (c *Client) Register(ctx context.Context, body json.RawMessage) (json.RawMessage, error) {
	return c.ProxyJSON(ctx, http.MethodPost, "/auth/register/", "", body)
}

// Logout 注销代理
func (c *Client) Logout(ctx context.Context, authHeader string) (json.RawMessage, error) {
	return c.ProxyJSON(ctx, http.MethodPost, "/auth/logout/", authHeader, nil)
}

// GetMe 拉取当前用户档案（鉴权快照来源）
func (c *Client) GetMe(ctx context.Context, authHeader string) (*Profile, error) {
	var profile Profile
	if err := c.do(ctx, http.MethodGet, "/auth/me/", authHeader, nil, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// ListAddresses 拉取当前用户地址
func (c *Client) ListAddresses(ctx context.Context, authHeader string) ([]Address, error) {
	var addresses []Address
	if err := c.do(ctx, http.MethodGet, "/auth/addresses/", authHeader, nil, &addresses); err != nil {
		return nil, err
	}
	return addresses, nil
}

// CreateAddress 创建收货地址
func (c *Client) CreateAddress(ctx context.Context, authHeader string, input AddressInput) (*Address, error) {
	var address Address
	if err := c.do(ctx, http.MethodPost, "/auth/addresses/", authHeader, input, &address); err != nil {
		return nil, err
	}
	return &address, nil
}

// UpdateAddress 更新收货地址
func (c *Client) UpdateAddress(ctx context.Context, authHeader string, id uint, input AddressInput) (*Address, error) {
	var address Address
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/auth/addresses/%d/", id), authHeader, input, &address); err != nil {
		return nil, err
	}
	return &address, nil
}

// DeleteAddress 删除收货地址
func (c *Client) DeleteAddress(ctx context.Context, authHeader string, id uint) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/auth/addresses/%d/", id), authHeader, nil, nil)
}
