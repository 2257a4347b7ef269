package collector

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRuleDefaults(t *testing.T) {
	r := TextRule("h2")
	assert.Equal(t, KindSelector, r.Kind)
	assert.Equal(t, TextContent, r.Attribute)
	assert.Equal(t, TextContent, r.FallbackAttribute)
	assert.Equal(t, DefaultLimit, r.Limit)
	assert.Zero(t, r.StartIndex)

	img := ImageAltRule(1, 5, "escudo")
	assert.Equal(t, KindImageAlt, img.Kind)
	assert.Equal(t, "img[alt]", img.Selector)
	assert.Equal(t, "image_alt", img.Kind.String())
}

func TestRuleSetExpandsScalarsAndLists(t *testing.T) {
	rules, err := RuleSet(Rule{}, []string{"h1", "h2"}, []int{7}, nil)
	require.NoError(t, err)
	require.Len(t, rules, 2)
	assert.Equal(t, "h1", rules[0].Selector)
	assert.Equal(t, 7, rules[0].Limit)
	assert.Equal(t, 7, rules[1].Limit)

	rules, err = RuleSet(Rule{}, []string{"h1", "h2"}, []int{1, 2}, []int{0, 3})
	require.NoError(t, err)
	assert.Equal(t, 1, rules[0].Limit)
	assert.Equal(t, 2, rules[1].Limit)
	assert.Equal(t, 3, rules[1].StartIndex)

	rules, err = RuleSet(Rule{}, []string{"h1"}, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultLimit, rules[0].Limit)
}

func TestRuleSetShortListRepeatsLast(t *testing.T) {
	rules, err := RuleSet(Rule{}, []string{"h1", "h2", "h3"}, []int{3, 10}, []int{2})
	require.NoError(t, err)
	require.Len(t, rules, 3)

	limits := []int{rules[0].Limit, rules[1].Limit, rules[2].Limit}
	assert.Equal(t, []int{3, 10, 10}, limits)
	for _, r := range rules {
		assert.Equal(t, 2, r.StartIndex)
	}
}

func TestRuleSetErrors(t *testing.T) {
	_, err := RuleSet(Rule{}, nil, nil, nil)
	require.ErrorIs(t, err, ErrNoRules)

	_, err = RuleSet(Rule{}, []string{"h1", "h2"}, []int{1, 2, 3}, nil)
	require.ErrorIs(t, err, ErrMismatchedLists)

	_, err = RuleSet(Rule{}, []string{"h1"}, nil, []int{0, 1})
	require.ErrorIs(t, err, ErrMismatchedLists)

	_, err = RuleSet(Rule{}, []string{"h1", "h2[["}, nil, nil)
	require.Error(t, err)
}

func TestRuleSetCopiesExclusionTerms(t *testing.T) {
	base := Rule{ExclusionTerms: []string{"logo"}}
	rules, err := RuleSet(base, []string{"a", "b"}, nil, nil)
	require.NoError(t, err)
	rules[0].ExclusionTerms[0] = "changed"
	assert.Equal(t, "logo", rules[1].ExclusionTerms[0])
	assert.Equal(t, "logo", base.ExclusionTerms[0])
}

func TestSourceValidate(t *testing.T) {
	cases := []struct {
		name string
		src  Source
		want error
	}{
		{"no name", Source{URL: "http://x", Rules: []Rule{TextRule("h2")}}, ErrEmptySourceName},
		{"no url", Source{Name: "x", Rules: []Rule{TextRule("h2")}}, ErrEmptySourceURL},
		{"no rules", Source{Name: "x", URL: "http://x"}, ErrNoRules},
		{"negative limit", Source{Name: "x", URL: "http://x", Rules: []Rule{{Selector: "h2", Limit: -1}}}, ErrNegativeLimit},
		{"negative start", Source{Name: "x", URL: "http://x", Rules: []Rule{{Selector: "h2", StartIndex: -1}}}, ErrNegativeIndex},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			require.ErrorIs(t, c.src.Validate(), c.want)
		})
	}

	ok := Source{Name: "x", URL: "http://x", Rules: []Rule{TextRule("h2")}}
	require.NoError(t, ok.Validate())
}

func TestRegistrySelectUsesRegistryOrderAndSetSemantics(t *testing.T) {
	reg, err := NewRegistry(
		Source{Name: "a", URL: "http://a", Rules: []Rule{TextRule("h1")}},
		Source{Name: "b", URL: "http://b", Rules: []Rule{TextRule("h1")}},
		Source{Name: "c", URL: "http://c", Rules: []Rule{TextRule("h1")}},
	)
	require.NoError(t, err)

	got, err := reg.Select([]string{"c", "a", "c"})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].Name)
	assert.Equal(t, "c", got[1].Name)

	all, err := reg.Select(nil)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	_, err = reg.Select([]string{"zzz"})
	require.ErrorIs(t, err, ErrUnknownSource)
}

func TestNewRegistryRejectsDuplicates(t *testing.T) {
	s := Source{Name: "a", URL: "http://a", Rules: []Rule{TextRule("h1")}}
	_, err := NewRegistry(s, s)
	require.ErrorIs(t, err, ErrDuplicateSource)
}

func TestDefaultRegistryIsValid(t *testing.T) {
	reg := DefaultRegistry()
	names := reg.Names()
	require.NotEmpty(t, names)
	for _, n := range names {
		src, ok := reg.Lookup(n)
		require.True(t, ok)
		require.NoError(t, src.Validate())
	}
	ole, ok := reg.Lookup("Olé")
	require.True(t, ok)
	assert.Equal(t, KindImageAlt, ole.Rules[0].Kind)
}
