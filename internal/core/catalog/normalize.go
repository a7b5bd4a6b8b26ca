package catalog

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// NormalizeName 正規化食材名稱：NFKC、去除首尾空白、轉小寫、合併連續空白
func NormalizeName(name string) string {
	name = norm.NFKC.String(name)
	return strings.Join(strings.Fields(strings.ToLower(name)), " ")
}

// NormalizeSet 正規化並去重，忽略空字串
func NormalizeSet(names []string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		if n = NormalizeName(n); n != "" {
			set[n] = struct{}{}
		}
	}
	return set
}
