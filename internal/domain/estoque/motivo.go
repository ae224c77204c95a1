package estoque

import "strings"

// Motivos de SAIDA. Conjunto fechado com OUTRO explícito para que agregações
// de relatório não quebrem com texto livre.
const (
	MotivoVenda   = "VENDA"
	MotivoPerda   = "PERDA"
	MotivoConsumo = "CONSUMO"
	MotivoOutro   = "OUTRO"
)

// NormalizeMotivo mapeia o texto vindo da UI para o enum; desconhecido vira OUTRO.
func NormalizeMotivo(s string) string {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case MotivoVenda:
		return MotivoVenda
	case MotivoPerda:
		return MotivoPerda
	case MotivoConsumo:
		return MotivoConsumo
	default:
		return MotivoOutro
	}
}
