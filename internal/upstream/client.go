package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ronoos/storefront/internal/config"
)

var (
	// ErrConfigInvalid 上游配置缺失或非法
	ErrConfigInvalid = errors.New("upstream config invalid")
	// ErrRequestFailed 请求未到达上游（网络层失败）
	ErrRequestFailed = errors.New("upstream request failed")
	// ErrResponseInvalid 上游响应无法解析
	ErrResponseInvalid = errors.New("upstream response invalid")
)

const defaultTimeout = 10 * time.Second

// APIError 上游返回的业务错误
// Detail 为上游 {"detail": "..."} 中的服务端消息，供前端原样展示
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	if strings.TrimSpace(e.Detail) == "" {
		return fmt.Sprintf("upstream error: status %d", e.StatusCode)
	}
	return fmt.Sprintf("upstream error: status %d: %s", e.StatusCode, e.Detail)
}

// ErrorDetail 提取上游服务端消息；非上游业务错误返回空串
func ErrorDetail(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return strings.TrimSpace(apiErr.Detail)
	}
	return ""
}

// IsNotFound 判断上游是否返回 404
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// IsUnauthorized 判断上游是否返回 401
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized
}

// Client 烘焙后端 API 客户端
// 每个请求只尝试一次，不做重试；鉴权头从前端请求原样透传
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient 创建上游客户端
func NewClient(cfg *config.UpstreamConfig) (*Client, error) {
	if cfg == nil || strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, ErrConfigInvalid
	}
	timeout := defaultTimeout
	if cfg.TimeoutSeconds > 0 {
		timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

// ProxyJSON 原样转发一个 JSON 请求并返回上游正文
func (c *Client) ProxyJSON(ctx context.Context, method, path, authHeader string, body json.RawMessage) (json.RawMessage, error) {
	var out json.RawMessage
	if err := c.do(ctx, method, path, authHeader, body, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) do(ctx context.Context, method, path, authHeader string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := encodeBody(body)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrRequestFailed, err)
		}
		reader = bytes.NewReader(payload)
	}

	url := c.baseURL + "/" + strings.TrimLeft(path, "/")
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if strings.TrimSpace(authHeader) != "" {
		req.Header.Set("Authorization", authHeader)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrResponseInvalid, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{
			StatusCode: resp.StatusCode,
			Detail:     extractDetail(raw),
		}
	}

	if out == nil || len(raw) == 0 {
		return nil
	}
	if rawOut, ok := out.(*json.RawMessage); ok {
		*rawOut = append((*rawOut)[:0], raw...)
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%w: %v", ErrResponseInvalid, err)
	}
	return nil
}

func encodeBody(body interface{}) ([]byte, error) {
	if raw, ok := body.(json.RawMessage); ok {
		return raw, nil
	}
	return json.Marshal(body)
}

// extractDetail 尽力取出上游错误消息
// 兼容 {"detail": "..."} 与 {"error": "..."} 两种形态
func extractDetail(raw []byte) string {
	var payload struct {
		Detail string `json:"detail"`
		Error  string `json:"error"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return ""
	}
	if strings.TrimSpace(payload.Detail) != "" {
		return strings.TrimSpace(payload.Detail)
	}
	return strings.TrimSpace(payload.Error)
}
