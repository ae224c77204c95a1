package estoque_test

// Fakes em memória que emulam o comportamento transacional do Postgres usado
// pelo livro: bloqueio de linha por produto (SELECT FOR UPDATE), escrita
// staged que só aparece no commit e rollback que descarta tudo. Isso permite
// exercitar escritas concorrentes de verdade nos testes, sem banco.

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/aupet/petshop-api/internal/domain"
	"github.com/aupet/petshop-api/internal/domain/entity"
	domainestoque "github.com/aupet/petshop-api/internal/domain/estoque"
	"github.com/aupet/petshop-api/internal/domain/repository"
)

// memStore estado compartilhado (commitado) entre transações.
type memStore struct {
	mu        sync.Mutex
	products  map[string]*entity.Produto
	movements []*entity.MovimentoEstoque
	seq       int64
	rowLocks  map[string]*sync.Mutex
}

func newMemStore() *memStore {
	return &memStore{
		products: make(map[string]*entity.Produto),
		rowLocks: make(map[string]*sync.Mutex),
	}
}

func cloneProduto(p *entity.Produto) *entity.Produto {
	c := *p
	if p.MinStock != nil {
		v := *p.MinStock
		c.MinStock = &v
	}
	if p.ExpiryDate != nil {
		v := *p.ExpiryDate
		c.ExpiryDate = &v
	}
	return &c
}

// addProduct insere direto no estado commitado (setup de teste).
func (s *memStore) addProduct(p *entity.Produto) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products[p.ID] = cloneProduto(p)
}

// setBalance corrompe o saldo materializado por fora do livro (setup dos
// testes de auditoria).
func (s *memStore) setBalance(productID string, balance decimal.Decimal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products[productID].CurrentStock = balance
}

func (s *memStore) product(id string) *entity.Produto {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[id]
	if !ok {
		return nil
	}
	return cloneProduto(p)
}

func (s *memStore) movementCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.movements)
}

func (s *memStore) rowLock(id string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.rowLocks[id]
	if !ok {
		l = &sync.Mutex{}
		s.rowLocks[id] = l
	}
	return l
}

// ─────────────────────────────────────────────────────────────────────────────
// Transação
// ─────────────────────────────────────────────────────────────────────────────

// memTxn transação em andamento: clones staged + bloqueios de linha adquiridos.
type memTxn struct {
	store  *memStore
	staged map[string]*entity.Produto
	movs   []*entity.MovimentoEstoque
	locks  []*sync.Mutex
}

func (tx *memTxn) commit() {
	tx.store.mu.Lock()
	for id, p := range tx.staged {
		tx.store.products[id] = p
	}
	for _, m := range tx.movs {
		tx.store.seq++
		m.Seq = tx.store.seq
		tx.store.movements = append(tx.store.movements, m)
	}
	tx.store.mu.Unlock()
	tx.release()
}

func (tx *memTxn) rollback() {
	tx.release()
}

func (tx *memTxn) release() {
	for i := len(tx.locks) - 1; i >= 0; i-- {
		tx.locks[i].Unlock()
	}
	tx.locks = nil
}

// memTxRunner implementa estoque.TxRunner sobre o memStore.
type memTxRunner struct {
	store *memStore
}

func newMemTxRunner(store *memStore) *memTxRunner {
	return &memTxRunner{store: store}
}

func (r *memTxRunner) Run(_ context.Context, fn func(
	productRepo repository.ProductRepository,
	movementRepo repository.StockMovementRepository,
) error) error {
	tx := &memTxn{store: r.store, staged: make(map[string]*entity.Produto)}
	err := fn(&txProductRepo{tx: tx}, &txMovementRepo{tx: tx})
	if err != nil {
		tx.rollback()
		return err
	}
	tx.commit()
	return nil
}

// txProductRepo repositório de produtos atado à transação.
type txProductRepo struct {
	tx *memTxn
}

func (r *txProductRepo) Create(p *entity.Produto) error {
	r.tx.staged[p.ID] = cloneProduto(p)
	return nil
}

func (r *txProductRepo) GetByID(id string) (*entity.Produto, error) {
	if p, ok := r.tx.staged[id]; ok {
		return cloneProduto(p), nil
	}
	return r.tx.store.product(id), nil
}

// GetForUpdate adquire o bloqueio da linha (esperando quem o detém commitar) e
// só então lê o estado commitado, como o FOR UPDATE de verdade.
func (r *txProductRepo) GetForUpdate(id string) (*entity.Produto, error) {
	if p, ok := r.tx.staged[id]; ok {
		return p, nil
	}
	l := r.tx.store.rowLock(id)
	l.Lock()
	r.tx.locks = append(r.tx.locks, l)

	p := r.tx.store.product(id)
	if p == nil {
		return nil, nil
	}
	r.tx.staged[id] = p
	return p, nil
}

func (r *txProductRepo) ListActive(companyID string) ([]*entity.Produto, error) {
	return listActive(r.tx.store, companyID), nil
}

func (r *txProductRepo) ApplyStock(id string, balance decimal.Decimal, newMin *decimal.Decimal, clearIntegrityLock bool) error {
	p, ok := r.tx.staged[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.CurrentStock = balance
	if newMin != nil {
		v := *newMin
		p.MinStock = &v
	}
	if clearIntegrityLock {
		p.IntegrityLocked = false
	}
	p.UpdatedAt = time.Now()
	return nil
}

func (r *txProductRepo) SetIntegrityLock(id string, locked bool) error {
	p, ok := r.tx.staged[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.IntegrityLocked = locked
	return nil
}

// txMovementRepo repositório do livro atado à transação.
type txMovementRepo struct {
	tx *memTxn
}

func (r *txMovementRepo) Create(m *entity.MovimentoEstoque) error {
	r.tx.movs = append(r.tx.movs, m)
	return nil
}

func (r *txMovementRepo) List(f repository.MovementFilter) ([]*entity.MovimentoComProduto, error) {
	return listMovements(r.tx.store, f), nil
}

// SumDeltas soma os deltas commitados; a linha do produto está bloqueada, então
// nenhum lançamento novo entra enquanto a soma roda.
func (r *txMovementRepo) SumDeltas(productID string) (decimal.Decimal, error) {
	r.tx.store.mu.Lock()
	defer r.tx.store.mu.Unlock()
	sum := decimal.Zero
	for _, m := range r.tx.store.movements {
		if m.ProductID == productID {
			sum = sum.Add(m.Quantity)
		}
	}
	return sum, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Repositórios fora de transação (lado de leitura)
// ─────────────────────────────────────────────────────────────────────────────

type memProductRepo struct {
	store *memStore
}

func (r *memProductRepo) Create(p *entity.Produto) error {
	r.store.addProduct(p)
	return nil
}

func (r *memProductRepo) GetByID(id string) (*entity.Produto, error) {
	return r.store.product(id), nil
}

func (r *memProductRepo) GetForUpdate(id string) (*entity.Produto, error) {
	return r.store.product(id), nil
}

func (r *memProductRepo) ListActive(companyID string) ([]*entity.Produto, error) {
	return listActive(r.store, companyID), nil
}

func (r *memProductRepo) ApplyStock(id string, balance decimal.Decimal, newMin *decimal.Decimal, clearIntegrityLock bool) error {
	return domain.ErrInvalidInput // escrita de saldo só dentro de transação
}

func (r *memProductRepo) SetIntegrityLock(id string, locked bool) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	p, ok := r.store.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.IntegrityLocked = locked
	return nil
}

type memMovementRepo struct {
	store *memStore
}

func (r *memMovementRepo) Create(m *entity.MovimentoEstoque) error {
	return domain.ErrInvalidInput // lançamento só dentro de transação
}

func (r *memMovementRepo) List(f repository.MovementFilter) ([]*entity.MovimentoComProduto, error) {
	return listMovements(r.store, f), nil
}

func (r *memMovementRepo) SumDeltas(productID string) (decimal.Decimal, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	sum := decimal.Zero
	for _, m := range r.store.movements {
		if m.ProductID == productID {
			sum = sum.Add(m.Quantity)
		}
	}
	return sum, nil
}

type memPrefsRepo struct {
	mu    sync.Mutex
	prefs map[string]*entity.PreferenciasEstoque
}

func newMemPrefsRepo() *memPrefsRepo {
	return &memPrefsRepo{prefs: make(map[string]*entity.PreferenciasEstoque)}
}

func (r *memPrefsRepo) Get(companyID string) (*entity.PreferenciasEstoque, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.prefs[companyID]
	if !ok {
		return nil, nil
	}
	c := *p
	return &c, nil
}

func (r *memPrefsRepo) Upsert(p *entity.PreferenciasEstoque) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := *p
	r.prefs[p.CompanyID] = &c
	return nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Consultas compartilhadas
// ─────────────────────────────────────────────────────────────────────────────

func listActive(s *memStore, companyID string) []*entity.Produto {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*entity.Produto
	for _, p := range s.products {
		if p.CompanyID == companyID && p.Active {
			out = append(out, cloneProduto(p))
		}
	}
	return out
}

func listMovements(s *memStore, f repository.MovementFilter) []*entity.MovimentoComProduto {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*entity.MovimentoComProduto
	for _, m := range s.movements {
		if m.CompanyID != f.CompanyID {
			continue
		}
		if f.ProductID != "" && m.ProductID != f.ProductID {
			continue
		}
		if f.Tipo != "" && m.Tipo != f.Tipo {
			continue
		}
		if f.From != nil && m.CreatedAt.Before(*f.From) {
			continue
		}
		if f.To != nil && m.CreatedAt.After(*f.To) {
			continue
		}
		p := s.products[m.ProductID]
		// busca sem caixa nem acento, como o unaccent + ILIKE do Postgres
		if f.Text != "" &&
			!domainestoque.MatchesFold(p.Name, f.Text) &&
			!domainestoque.MatchesFold(p.SKU, f.Text) &&
			!domainestoque.MatchesFold(m.Documento, f.Text) {
			continue
		}
		out = append(out, &entity.MovimentoComProduto{
			MovimentoEstoque: *m,
			ProductName:      p.Name,
			ProductSKU:       p.SKU,
		})
	}
	// já em ordem de seq (append no commit)
	start := f.Offset
	if start > len(out) {
		start = len(out)
	}
	end := len(out)
	if f.Limit > 0 && start+f.Limit < end {
		end = start + f.Limit
	}
	return out[start:end]
}
