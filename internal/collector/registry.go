package collector

import (
	"fmt"
	"strings"
)

// Registry 有序的站点表，显式传入引擎，不使用全局变量
type Registry struct {
	sources []Source
	index   map[string]int
}

// NewRegistry 校验并保存站点，顺序即抽取顺序
func NewRegistry(sources ...Source) (*Registry, error) {
	r := &Registry{
		sources: make([]Source, 0, len(sources)),
		index:   make(map[string]int, len(sources)),
	}
	for _, s := range sources {
		if err := s.Validate(); err != nil {
			return nil, err
		}
		if _, dup := r.index[s.Name]; dup {
			return nil, fmt.Errorf("%s: %w", s.Name, ErrDuplicateSource)
		}
		r.index[s.Name] = len(r.sources)
		r.sources = append(r.sources, s)
	}
	return r, nil
}

// Names 按注册顺序返回站点名
func (r *Registry) Names() []string {
	names := make([]string, len(r.sources))
	for i, s := range r.sources {
		names[i] = s.Name
	}
	return names
}

// Sources 返回全部站点的副本
func (r *Registry) Sources() []Source {
	return append([]Source(nil), r.sources...)
}

// Lookup 按名称查找站点
func (r *Registry) Lookup(name string) (Source, bool) {
	i, ok := r.index[name]
	if !ok {
		return Source{}, false
	}
	return r.sources[i], true
}

// Select 把一组名称（集合语义）映射为按注册顺序排列的站点；为空时返回全部
func (r *Registry) Select(names []string) ([]Source, error) {
	if len(names) == 0 {
		return r.Sources(), nil
	}
	want := make(map[string]struct{}, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		if _, ok := r.index[n]; !ok {
			return nil, fmt.Errorf("%q: %w", n, ErrUnknownSource)
		}
		want[n] = struct{}{}
	}
	if len(want) == 0 {
		return r.Sources(), nil
	}
	out := make([]Source, 0, len(want))
	for _, s := range r.sources {
		if _, ok := want[s.Name]; ok {
			out = append(out, s)
		}
	}
	return out, nil
}

// DefaultSources 内置的新闻站点；页面结构可能调整，选择器按“尽力而为”维护
func DefaultSources() []Source {
	return []Source{
		{
			Name:  "Clarín",
			URL:   "https://www.clarin.com/",
			Rules: []Rule{TextRule("h2.title")},
		},
		{
			Name:  "La Nación",
			URL:   "https://www.lanacion.com.ar/",
			Rules: []Rule{TextRule("h2.com-title a")},
		},
		{
			Name:  "Infobae",
			URL:   "https://www.infobae.com/",
			Rules: []Rule{TextRule("h2.story-card-hl")},
		},
		// 部分卡片只在 aria-label 中保留完整标题
		{
			Name:  "Página 12",
			URL:   "https://www.pagina12.com.ar/",
			Rules: []Rule{AttrRule("h2.title a", "aria-label")},
		},
		{
			Name: "Ámbito",
			URL:  "https://www.ambito.com/",
			Rules: mustRuleSet(
				Rule{Kind: KindSelector},
				[]string{"h1.news-article__title", "h2.news-article__title"},
				[]int{5, 15},
				nil,
			),
		},
		{
			Name: "TyC Sports",
			URL:  "https://www.tycsports.com/",
			Rules: mustRuleSet(
				Rule{Kind: KindSelector},
				[]string{"h1", "h2", "h3"},
				[]int{3, 10, 10},
				nil,
			),
		},
		// 标题以图片 alt 给出；导航栏里的俱乐部队徽也是带 alt 的图片
		{
			Name:  "Olé",
			URL:   "https://www.ole.com.ar/",
			Rules: []Rule{ImageAltRule(0, 60, "escudo", "logo", "Boca Juniors", "River Plate")},
		},
	}
}

// DefaultRegistry 由 DefaultSources 构成的注册表
func DefaultRegistry() *Registry {
	r, err := NewRegistry(DefaultSources()...)
	if err != nil {
		panic(fmt.Sprintf("collector: invalid built-in sources: %v", err))
	}
	return r
}

func mustRuleSet(base Rule, selectors []string, limits, starts []int) []Rule {
	rules, err := RuleSet(base, selectors, limits, starts)
	if err != nil {
		panic(fmt.Sprintf("collector: invalid built-in rule set: %v", err))
	}
	return rules
}
