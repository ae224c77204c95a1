package estoque

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fold normaliza texto para busca: minúsculas, sem acentos ("Ração" -> "racao").
// O transformer é criado por chamada porque transform.Chain não é seguro para
// uso concorrente.
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(out)
}

// MatchesFold indica se query ocorre em s ignorando caixa e acentuação.
// Query vazia casa com qualquer texto.
func MatchesFold(s, query string) bool {
	if query == "" {
		return true
	}
	return strings.Contains(Fold(s), Fold(query))
}
