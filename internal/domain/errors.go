package domain

import "errors"

// Erros de domínio (sem dependências externas).
var (
	ErrNotFound            = errors.New("produto não encontrado")
	ErrInvalidInput        = errors.New("entrada inválida")
	ErrInvalidQuantity     = errors.New("quantidade inválida")
	ErrNoOperation         = errors.New("nenhuma operação selecionada")
	ErrDuplicate           = errors.New("recurso duplicado")
	ErrEstoqueInsuficiente = errors.New("estoque insuficiente")
	ErrConflito            = errors.New("conflito de escrita concorrente")
	ErrIntegridade         = errors.New("saldo em desacordo com o livro de movimentações")
)
