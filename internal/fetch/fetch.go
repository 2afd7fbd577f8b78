// 包 fetch 封装出站 HTTP（代理/超时/限速感知重试）：
// - GetJSON：Web API 请求，429 按次数递增退避，其余失败固定等待后重试
// - GetPage：携带浏览器 UA 的单次页面抓取，用于社区页面
package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/go-resty/resty/v2"

	"go-steam-export/internal/logx"
)

// maxAttempts 为单次 API 请求的总尝试次数上限。
const maxAttempts = 3

// RequestError 表示重试预算耗尽后的终态失败。
type RequestError struct {
	URL  string
	Last string // 最后一次的状态或错误描述
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("max retries exceeded for %s (last: %s)", e.URL, e.Last)
}

// Client 为带重试的 HTTP 客户端（resty 封装）。
type Client struct {
	rc            *resty.Client
	rateLimitWait time.Duration
	retryWait     time.Duration
}

// Options 为客户端构造参数；时长字段为零值时采用默认值。
type Options struct {
	ProxyHTTP     string
	ProxyHTTPS    string
	Timeout       time.Duration
	RateLimitWait time.Duration // 429 的基础等待（按尝试次数递增），默认 30s
	RetryWait     time.Duration // 其他失败的固定等待，默认 5s
}

// New 创建客户端，支持 http/https 分协议代理与基础超时配置。
func New(opts Options) (*Client, error) {
	transport := &http.Transport{
		Proxy: func(req *http.Request) (*url.URL, error) {
			if req.URL.Scheme == "https" && opts.ProxyHTTPS != "" {
				return url.Parse(opts.ProxyHTTPS)
			}
			if req.URL.Scheme == "http" && opts.ProxyHTTP != "" {
				return url.Parse(opts.ProxyHTTP)
			}
			return http.ProxyFromEnvironment(req)
		},
		DialContext:           (&net.Dialer{Timeout: 10 * time.Second}).DialContext,
		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: 15 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 15 * time.Second
	}
	if opts.RateLimitWait <= 0 {
		opts.RateLimitWait = 30 * time.Second
	}
	if opts.RetryWait <= 0 {
		opts.RetryWait = 5 * time.Second
	}
	rc := resty.NewWithClient(&http.Client{Transport: transport, Timeout: opts.Timeout})
	rc.SetHeader("User-Agent", userAgent())
	return &Client{rc: rc, rateLimitWait: opts.RateLimitWait, retryWait: opts.RetryWait}, nil
}

// userAgent 返回常见浏览器 UA，减少 403/反爬误判；支持环境变量覆盖（SP_UA）。
func userAgent() string {
	if ua := os.Getenv("SP_UA"); ua != "" {
		return ua
	}
	return "Mozilla/5.0 (Windows NT 10.0; Win64; x64) Chrome/120.0"
}

// GetJSON 发起 GET 并把 200 响应体解码进 out，最多尝试 maxAttempts 次：
// - 429：等待 rateLimitWait×尝试次数 后重试（批量负载下限速属预期，不视为终态）
// - 其他非 200：等待 retryWait 后重试
// - 传输层错误：等待 retryWait 后重试，最后一次直接返回原错误
// 全部尝试耗尽仍未得到 200 时返回 *RequestError。
func (c *Client) GetJSON(ctx context.Context, rawURL string, query map[string]string, out any) error {
	var last string
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		resp, err := c.rc.R().SetContext(ctx).SetQueryParams(query).Get(rawURL)
		if err != nil {
			if attempt == maxAttempts {
				return fmt.Errorf("GET %s: %w", rawURL, err)
			}
			last = err.Error()
			if err := sleep(ctx, c.retryWait); err != nil {
				return err
			}
			continue
		}
		switch {
		case resp.StatusCode() == http.StatusTooManyRequests:
			wait := c.rateLimitWait * time.Duration(attempt)
			logx.Warnf("触发限速：等待 %s 后重试（第 %d 次）", wait, attempt)
			last = resp.Status()
			if err := sleep(ctx, wait); err != nil {
				return err
			}
		case resp.StatusCode() != http.StatusOK:
			last = resp.Status()
			if err := sleep(ctx, c.retryWait); err != nil {
				return err
			}
		default:
			if err := json.Unmarshal(resp.Body(), out); err != nil {
				return fmt.Errorf("decode %s: %w", rawURL, err)
			}
			return nil
		}
	}
	return &RequestError{URL: rawURL, Last: last}
}

// GetPage 抓取 HTML 页面并返回响应体。
// 页面抓取不走重试预算：单次失败直接上抛，由适配器决定兜底或回退。
func (c *Client) GetPage(ctx context.Context, rawURL string) ([]byte, error) {
	resp, err := c.rc.R().SetContext(ctx).Get(rawURL)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", rawURL, err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("GET %s: http status %s", rawURL, resp.Status())
	}
	return resp.Body(), nil
}

// sleep 等待指定时长，上下文取消时提前返回取消错误。
func sleep(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}
