package collector

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gocolly/colly/v2"
)

const (
	DefaultFetchTimeout = 10 * time.Second
	DefaultUserAgent    = "HeadlineHubBot/1.0"
)

// PageFetcher 抽象页面下载，返回 2xx 响应体；失败时返回 *TransportError
type PageFetcher interface {
	FetchPage(ctx context.Context, src Source) ([]byte, error)
}

// CollyFetcher 每次抓取新建一个 colly collector，同步执行
type CollyFetcher struct {
	Timeout   time.Duration
	UserAgent string
}

func NewCollyFetcher(timeout time.Duration, userAgent string) *CollyFetcher {
	if timeout <= 0 {
		timeout = DefaultFetchTimeout
	}
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	return &CollyFetcher{Timeout: timeout, UserAgent: userAgent}
}

func (f *CollyFetcher) FetchPage(ctx context.Context, src Source) ([]byte, error) {
	c := colly.NewCollector(
		colly.UserAgent(f.UserAgent),
		colly.StdlibContext(ctx),
		// 状态码由下面统一判定，colly 默认会把 203 及以上都当成错误
		colly.ParseHTTPErrorResponse(),
	)
	c.SetRequestTimeout(f.Timeout)

	var (
		body   []byte
		status int
	)
	c.OnResponse(func(r *colly.Response) {
		status = r.StatusCode
		body = r.Body
	})
	c.OnError(func(r *colly.Response, _ error) {
		if r != nil {
			status = r.StatusCode
		}
	})

	if err := c.Visit(src.URL); err != nil {
		return nil, &TransportError{Source: src.Name, URL: src.URL, StatusCode: status, Err: err}
	}
	if status < 200 || status >= 300 {
		return nil, &TransportError{
			Source:     src.Name,
			URL:        src.URL,
			StatusCode: status,
			Err:        fmt.Errorf("unexpected status: %s", http.StatusText(status)),
		}
	}
	// 空响应体不算失败，按空文档处理
	return body, nil
}
