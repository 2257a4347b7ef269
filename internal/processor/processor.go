package processor

import (
	"strings"

	"github.com/LJTian/HeadlineHub/internal/collector"
)

// Options 控制清洗策略
type Options struct {
	// Dedupe 为 true 时，同一站点内重复的标题只保留第一次出现
	Dedupe bool
}

// SimpleProcessor 做抽取后的基础清洗：UTF-8 规范化、折叠空白，可选去重
type SimpleProcessor struct {
	opts Options
}

func NewSimpleProcessor(opts Options) *SimpleProcessor {
	return &SimpleProcessor{opts: opts}
}

// Process 返回新的 Result，不修改入参；失败列表原样保留
func (p *SimpleProcessor) Process(res collector.Result) collector.Result {
	out := collector.Result{
		Headlines: make(collector.ResultTable, 0, len(res.Headlines)),
		Failures:  append(make([]collector.Failure, 0, len(res.Failures)), res.Failures...),
	}
	seen := make(map[string]struct{})

	for _, h := range res.Headlines {
		text := normalize(h.Text)
		if text == "" {
			continue
		}
		if p.opts.Dedupe {
			key := h.Source + "\x00" + text
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
		}
		out.Headlines = append(out.Headlines, collector.Headline{Source: h.Source, Text: text})
	}

	return out
}

// normalize 规范为合法 UTF-8 并把连续空白折叠为一个空格
func normalize(s string) string {
	s = strings.ToValidUTF8(s, "\uFFFD")
	return strings.Join(strings.Fields(s), " ")
}
