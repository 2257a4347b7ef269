package collector

import (
	"bytes"
	"context"
	"fmt"

	"github.com/LJTian/HeadlineHub/internal/logger"
	"github.com/PuerkitoBio/goquery"
)

// SourceResult 单个站点的抽取结果：成功时 Err 为 nil，失败时 Headlines 为空
type SourceResult struct {
	Source    string
	Headlines []Headline
	Err       error
}

// Result 一次抽取的全部结果：成功站点的标题 + 失败站点列表
type Result struct {
	Headlines ResultTable `json:"headlines"`
	Failures  []Failure   `json:"failures"`
}

// Failed 返回指定站点是否失败
func (r Result) Failed(source string) bool {
	for _, f := range r.Failures {
		if f.Source == source {
			return true
		}
	}
	return false
}

// Count 返回指定站点贡献的标题数
func (r Result) Count(source string) int {
	n := 0
	for _, h := range r.Headlines {
		if h.Source == source {
			n++
		}
	}
	return n
}

// Engine 按顺序抓取站点并执行规则
type Engine struct {
	fetcher PageFetcher
	log     logger.Interface
}

func NewEngine(fetcher PageFetcher, log logger.Interface) *Engine {
	if log == nil {
		log = logger.NewNop()
	}
	return &Engine{fetcher: fetcher, log: log.With("component", "collector")}
}

// Extract 依次处理每个站点，单个站点失败只记录，不影响其它站点，也不向调用方返回错误
func (e *Engine) Extract(ctx context.Context, sources []Source) Result {
	res := Result{
		Headlines: make(ResultTable, 0),
		Failures:  make([]Failure, 0),
	}
	for _, src := range sources {
		sr := e.ExtractSource(ctx, src)
		if sr.Err != nil {
			f := NewFailure(src.Name, sr.Err)
			e.log.Warn("source failed", "source", src.Name, "kind", string(f.Kind), "error", sr.Err)
			res.Failures = append(res.Failures, f)
			continue
		}
		if len(sr.Headlines) == 0 {
			e.log.Info("source returned no headlines", "source", src.Name)
		}
		res.Headlines = append(res.Headlines, sr.Headlines...)
	}
	e.log.Info("extract done", "sources", len(sources), "headlines", len(res.Headlines), "failures", len(res.Failures))
	return res
}

// ExtractSource 抓取并解析一个站点，按规则顺序拼接结果
func (e *Engine) ExtractSource(ctx context.Context, src Source) (sr SourceResult) {
	// 抓取器或解析过程中的 panic 只影响当前站点
	defer func() {
		if r := recover(); r != nil {
			sr = SourceResult{Source: src.Name, Err: &UnexpectedError{Source: src.Name, Err: fmt.Errorf("panic: %v", r)}}
		}
	}()

	if err := ctx.Err(); err != nil {
		return SourceResult{Source: src.Name, Err: &TransportError{Source: src.Name, URL: src.URL, Err: err}}
	}
	if len(src.Rules) == 0 {
		return SourceResult{Source: src.Name, Err: &UnexpectedError{Source: src.Name, Err: ErrNoRules}}
	}

	e.log.Debug("fetch source", "source", src.Name, "url", src.URL)
	body, err := e.fetcher.FetchPage(ctx, src)
	if err != nil {
		return SourceResult{Source: src.Name, Err: err}
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return SourceResult{Source: src.Name, Err: &UnexpectedError{Source: src.Name, Err: fmt.Errorf("parse html: %w", err)}}
	}

	headlines := make([]Headline, 0, len(src.Rules)*DefaultLimit)
	for i, rule := range src.Rules {
		texts, err := ApplyRule(doc, rule)
		if err != nil {
			return SourceResult{Source: src.Name, Err: &UnexpectedError{Source: src.Name, Err: fmt.Errorf("rule %d: %w", i, err)}}
		}
		for _, t := range texts {
			headlines = append(headlines, Headline{Source: src.Name, Text: t})
		}
	}
	return SourceResult{Source: src.Name, Headlines: headlines}
}
