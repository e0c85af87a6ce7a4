package httpx

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/bytedance/sonic"
)

// httpx 是一个简单的http客户端
// 用于调用不走模型组件的REST接口(如Ollama管理接口)

var (
	client *HttpClient
	once   sync.Once
)

const (
	GET    = "GET"
	POST   = "POST"
	DELETE = "DELETE"
)

type HttpClient struct {
	Client *http.Client
}

// NewHttpClient 单例模式维护一个client
func NewHttpClient() *HttpClient {
	once.Do(func() {
		client = &HttpClient{
			Client: &http.Client{Timeout: 60 * time.Second},
		}
	})
	return client
}

func GetHttpClient() *HttpClient {
	return NewHttpClient()
}

// do 发送请求
func (c *HttpClient) do(ctx context.Context, method, url string, headers http.Header, body any) (resp *http.Response, err error) {
	var reader io.Reader
	if body != nil {
		var bodyBytes []byte
		if bodyBytes, err = sonic.Marshal(body); err != nil {
			return nil, fmt.Errorf("[httpx] marshal request body: %w", err)
		}
		reader = bytes.NewBuffer(bodyBytes)
	}
	var req *http.Request
	if req, err = http.NewRequestWithContext(ctx, method, url, reader); err != nil {
		return nil, fmt.Errorf("[httpx] build request: %w", err)
	}
	for k, vv := range headers {
		req.Header[k] = vv
	}
	if body != nil && req.Header.Get("Content-Type") == "" {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.Client.Do(req)
}

func (c *HttpClient) getResp(ctx context.Context, method, url string, headers http.Header, body any) ([]byte, error) {
	resp, err := c.do(ctx, method, url, headers, body)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("[httpx] read response body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("[httpx] unexpected status %d: %s", resp.StatusCode, data)
	}
	return data, nil
}

func (c *HttpClient) Get(ctx context.Context, url string, headers http.Header) (resp map[string]any, err error) {
	var data []byte
	if data, err = c.getResp(ctx, GET, url, headers, nil); err != nil {
		return nil, err
	}
	if err = sonic.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("[httpx] unmarshal response: %w", err)
	}
	return resp, nil
}

func (c *HttpClient) Post(ctx context.Context, url string, headers http.Header, body any) (resp map[string]any, err error) {
	var data []byte
	if data, err = c.getResp(ctx, POST, url, headers, body); err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return map[string]any{}, nil
	}
	if err = sonic.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("[httpx] unmarshal response: %w", err)
	}
	return resp, nil
}

// Delete 发送DELETE请求, 只关心状态码
func (c *HttpClient) Delete(ctx context.Context, url string, headers http.Header, body any) error {
	_, err := c.getResp(ctx, DELETE, url, headers, body)
	return err
}
