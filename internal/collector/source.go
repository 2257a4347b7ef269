package collector

import (
	"errors"
	"fmt"
	"strings"

	"github.com/andybalholm/cascadia"
)

const (
	// TextContent 表示读取元素的文本内容而不是属性
	TextContent = "#text"

	DefaultLimit = 15

	imageAltSelector = "img[alt]"
)

// RuleKind 区分普通选择器规则与图片 alt 排除规则
type RuleKind int

const (
	KindSelector RuleKind = iota
	// KindImageAlt 用于标题以 <img alt> 形式出现的站点，忽略 Attribute/FallbackAttribute
	KindImageAlt
)

func (k RuleKind) String() string {
	switch k {
	case KindSelector:
		return "selector"
	case KindImageAlt:
		return "image_alt"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

var (
	ErrNoRules         = errors.New("source has no rules")
	ErrEmptySelector   = errors.New("rule selector is empty")
	ErrNegativeLimit   = errors.New("rule limit must be non-negative")
	ErrNegativeIndex   = errors.New("rule start index must be non-negative")
	ErrNegativeScan    = errors.New("rule count to scan must be non-negative")
	ErrMismatchedLists = errors.New("rule list longer than selectors")
	ErrEmptySourceName = errors.New("source name is empty")
	ErrEmptySourceURL  = errors.New("source url is empty")
	ErrDuplicateSource = errors.New("duplicate source name")
	ErrUnknownSource   = errors.New("unknown source")
)

// Rule 描述对一个选择器的一次抽取
type Rule struct {
	Kind              RuleKind
	Selector          string
	Attribute         string
	FallbackAttribute string
	Limit             int
	StartIndex        int
	ExclusionTerms    []string
	CountToScan       int // 0 表示扫描全部匹配元素
}

// Source 一个新闻站点及其规则
type Source struct {
	Name  string
	URL   string
	Rules []Rule
}

// Headline 一条抽取结果
type Headline struct {
	Source string `json:"source"`
	Text   string `json:"text"`
}

// ResultTable 按 来源顺序 → 规则顺序 → 文档顺序 排列
type ResultTable []Headline

// TextRule 读取文本内容的普通规则
func TextRule(selector string) Rule {
	return Rule{Kind: KindSelector, Selector: selector}.withDefaults()
}

// AttrRule 优先读取 attr，为空时回退到文本内容
func AttrRule(selector, attr string) Rule {
	return Rule{Kind: KindSelector, Selector: selector, Attribute: attr}.withDefaults()
}

// ImageAltRule 读取 <img alt>，跳过包含任一排除词的候选
func ImageAltRule(start, countToScan int, exclusions ...string) Rule {
	return Rule{
		Kind:           KindImageAlt,
		Selector:       imageAltSelector,
		StartIndex:     start,
		CountToScan:    countToScan,
		ExclusionTerms: exclusions,
	}.withDefaults()
}

// RuleSet 把 "单个或列表" 形式的参数统一展开为等长的规则列表。
// limits/starts 为空时使用 base 的值；比选择器短时末尾元素向后沿用，比选择器长则报错。
func RuleSet(base Rule, selectors []string, limits, starts []int) ([]Rule, error) {
	if len(selectors) == 0 {
		return nil, ErrNoRules
	}
	pick := func(list []int, i, def int) (int, error) {
		switch {
		case len(list) == 0:
			return def, nil
		case len(list) > len(selectors):
			return 0, ErrMismatchedLists
		case i < len(list):
			return list[i], nil
		default:
			return list[len(list)-1], nil
		}
	}

	rules := make([]Rule, 0, len(selectors))
	for i, sel := range selectors {
		r := base
		r.Selector = sel
		r.ExclusionTerms = append([]string(nil), base.ExclusionTerms...)
		var err error
		if r.Limit, err = pick(limits, i, base.Limit); err != nil {
			return nil, err
		}
		if r.StartIndex, err = pick(starts, i, base.StartIndex); err != nil {
			return nil, err
		}
		r = r.withDefaults()
		if err := r.Validate(); err != nil {
			return nil, fmt.Errorf("rule %d (%s): %w", i, sel, err)
		}
		rules = append(rules, r)
	}
	return rules, nil
}

func (r Rule) withDefaults() Rule {
	if r.Kind == KindImageAlt {
		r.Selector = imageAltSelector
	}
	if r.Attribute == "" {
		r.Attribute = TextContent
	}
	if r.FallbackAttribute == "" {
		r.FallbackAttribute = TextContent
	}
	if r.Limit == 0 {
		r.Limit = DefaultLimit
	}
	return r
}

// Validate 检查规则，并确认选择器能被编译
func (r Rule) Validate() error {
	if strings.TrimSpace(r.Selector) == "" {
		return ErrEmptySelector
	}
	if r.Limit < 0 {
		return ErrNegativeLimit
	}
	if r.StartIndex < 0 {
		return ErrNegativeIndex
	}
	if r.CountToScan < 0 {
		return ErrNegativeScan
	}
	if _, err := cascadia.Compile(r.Selector); err != nil {
		return fmt.Errorf("compile selector %q: %w", r.Selector, err)
	}
	return nil
}

// Validate 检查站点配置，rules 不能为空
func (s Source) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return ErrEmptySourceName
	}
	if strings.TrimSpace(s.URL) == "" {
		return fmt.Errorf("%s: %w", s.Name, ErrEmptySourceURL)
	}
	if len(s.Rules) == 0 {
		return fmt.Errorf("%s: %w", s.Name, ErrNoRules)
	}
	for i, r := range s.Rules {
		if err := r.Validate(); err != nil {
			return fmt.Errorf("%s rule %d: %w", s.Name, i, err)
		}
	}
	return nil
}
