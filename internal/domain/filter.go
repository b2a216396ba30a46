package domain

import (
	"strconv"
	"strings"
)

// FilterConfig is the declarative filter applied before partitioning tokens
// into columns. The zero value matches every token.
type FilterConfig struct {
	// Keywords is a comma-separated list of include keywords. A token
	// matches when its name or symbol contains at least one of them,
	// case-insensitively. Empty means no keyword restriction.
	Keywords string `json:"keywords"`

	// ExcludeKeywords is a comma-separated list; a token is dropped when
	// its name or symbol contains any of them.
	ExcludeKeywords string `json:"excludeKeywords"`

	// ExcludedProtocols and ExcludedQuoteTokens are deselection sets:
	// empty means show all.
	ExcludedProtocols   []string `json:"excludedProtocols"`
	ExcludedQuoteTokens []string `json:"excludedQuoteTokens"`

	// Optional bounds; nil means unbounded.
	MinLiquidity *float64 `json:"minLiquidity"`
	MaxLiquidity *float64 `json:"maxLiquidity"`
	MinVolume    *float64 `json:"minVolume"`
	MaxVolume    *float64 `json:"maxVolume"`
}

// Matches reports whether the token passes every filter clause.
func (f FilterConfig) Matches(t *Token) bool {
	include := SplitKeywords(f.Keywords)
	exclude := SplitKeywords(f.ExcludeKeywords)

	if len(include) > 0 && !containsAny(t, include) {
		return false
	}
	if len(exclude) > 0 && containsAny(t, exclude) {
		return false
	}
	for _, p := range f.ExcludedProtocols {
		if t.Protocol == p {
			return false
		}
	}
	for _, q := range f.ExcludedQuoteTokens {
		if t.QuoteToken == q {
			return false
		}
	}
	if f.MinLiquidity != nil && t.Liquidity < *f.MinLiquidity {
		return false
	}
	if f.MaxLiquidity != nil && t.Liquidity > *f.MaxLiquidity {
		return false
	}
	if f.MinVolume != nil && t.Volume24h < *f.MinVolume {
		return false
	}
	if f.MaxVolume != nil && t.Volume24h > *f.MaxVolume {
		return false
	}
	return true
}

// Key returns a deterministic representation of the config, used as a
// memoization key by the view engine.
func (f FilterConfig) Key() string {
	var b strings.Builder
	b.WriteString(strings.ToLower(f.Keywords))
	b.WriteByte('|')
	b.WriteString(strings.ToLower(f.ExcludeKeywords))
	b.WriteByte('|')
	b.WriteString(strings.Join(f.ExcludedProtocols, ","))
	b.WriteByte('|')
	b.WriteString(strings.Join(f.ExcludedQuoteTokens, ","))
	for _, v := range []*float64{f.MinLiquidity, f.MaxLiquidity, f.MinVolume, f.MaxVolume} {
		b.WriteByte('|')
		if v != nil {
			b.WriteString(strconv.FormatFloat(*v, 'g', -1, 64))
		}
	}
	return b.String()
}

// SplitKeywords normalizes a comma-separated keyword string into lowercased,
// trimmed, non-empty terms.
func SplitKeywords(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(strings.ToLower(s), ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func containsAny(t *Token, terms []string) bool {
	name := strings.ToLower(t.Name)
	symbol := strings.ToLower(t.Symbol)
	for _, term := range terms {
		if strings.Contains(name, term) || strings.Contains(symbol, term) {
			return true
		}
	}
	return false
}
