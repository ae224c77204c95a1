package dto

// PageRequest paginação para listagens.
type PageRequest struct {
	Limit  int `query:"limit"`
	Offset int `query:"offset"`
}

// DefaultPage aplica valores padrão quando Limit/Offset não vieram.
func (p *PageRequest) DefaultPage() {
	if p.Limit <= 0 {
		p.Limit = 50
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}

// ErrorResponse corpo de erro HTTP: código legível por máquina + mensagem.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
