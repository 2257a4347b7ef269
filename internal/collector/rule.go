package collector

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
)

// ApplyRule 在已解析的文档上执行一条规则，返回保留的标题（文档顺序）。
// 先按 [StartIndex, StartIndex+CountToScan) 截取匹配元素，再过滤空值与排除词，最后按 Limit 截断。
func ApplyRule(doc *goquery.Document, rule Rule) (out []string, err error) {
	rule = rule.withDefaults()

	sel, err := cascadia.Compile(rule.Selector)
	if err != nil {
		return nil, fmt.Errorf("compile selector %q: %w", rule.Selector, err)
	}

	// goquery/cascadia 在异常文档上可能 panic，这里统一转成错误
	defer func() {
		if r := recover(); r != nil {
			out = nil
			err = fmt.Errorf("apply rule %q: panic: %v", rule.Selector, r)
		}
	}()

	matches := window(doc.FindMatcher(sel), rule.StartIndex, rule.CountToScan)

	terms := lowerTerms(rule.ExclusionTerms)
	out = make([]string, 0, min(rule.Limit, matches.Length()))
	matches.EachWithBreak(func(_ int, s *goquery.Selection) bool {
		var text string
		if rule.Kind == KindImageAlt {
			text, _ = s.Attr("alt")
		} else {
			text = readValue(s, rule.Attribute)
			if strings.TrimSpace(text) == "" {
				text = readValue(s, rule.FallbackAttribute)
			}
		}
		text = strings.TrimSpace(text)
		if text == "" || excluded(text, terms) {
			return true
		}
		out = append(out, text)
		return len(out) < rule.Limit
	})
	return out, nil
}

func window(s *goquery.Selection, start, count int) *goquery.Selection {
	n := s.Length()
	if start >= n {
		return s.Slice(0, 0)
	}
	end := n
	if count > 0 && start+count < n {
		end = start + count
	}
	return s.Slice(start, end)
}

func readValue(s *goquery.Selection, attr string) string {
	if attr == "" || attr == TextContent {
		return s.Text()
	}
	v, _ := s.Attr(attr)
	return v
}

func lowerTerms(terms []string) []string {
	out := make([]string, 0, len(terms))
	for _, t := range terms {
		if t = strings.ToLower(strings.TrimSpace(t)); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func excluded(text string, lowered []string) bool {
	if len(lowered) == 0 {
		return false
	}
	lt := strings.ToLower(text)
	for _, t := range lowered {
		if strings.Contains(lt, t) {
			return true
		}
	}
	return false
}
