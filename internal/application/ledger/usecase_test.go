package ledger_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HARD953/supply-chain/internal/application/ledger"
	"github.com/HARD953/supply-chain/internal/domain"
	"github.com/HARD953/supply-chain/internal/domain/entity"
	"github.com/HARD953/supply-chain/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes: un almacén en memoria con semántica transaccional equivalente a la de
// PostgreSQL para lo que el motor necesita: bloqueo por producto (análogo a
// SELECT FOR UPDATE) y commit todo-o-nada del staging.
// ──────────────────────────────────────────────────────────────────────────────

type fakeStore struct {
	mu        sync.Mutex
	products  map[string]*entity.Product
	movements map[string]*entity.StockMovement
	locks     map[string]*sync.Mutex

	// inyección de fallo entre el update del producto y el append del ledger
	failLedgerAppend bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		products:  make(map[string]*entity.Product),
		movements: make(map[string]*entity.StockMovement),
		locks:     make(map[string]*sync.Mutex),
	}
}

func (s *fakeStore) addProduct(id string, qty int64, status string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products[id] = &entity.Product{
		ID:            id,
		Name:          "producto " + id,
		Price:         decimal.NewFromInt(100),
		StockQuantity: qty,
		SupplierID:    "supplier-1",
		Status:        status,
	}
}

func (s *fakeStore) productCopy(id string) *entity.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[id]
	if !ok {
		return nil
	}
	cp := *p
	return &cp
}

func (s *fakeStore) movementCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.movements)
}

func (s *fakeStore) lockFor(productID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.locks[productID]
	if !ok {
		m = &sync.Mutex{}
		s.locks[productID] = m
	}
	return m
}

// fakeTx acumula escrituras en staging; commit las aplica de una sola vez.
type fakeTx struct {
	store          *fakeStore
	stagedProducts map[string]*entity.Product
	stagedMovs     []*entity.StockMovement
	held           []*sync.Mutex
}

func (tx *fakeTx) commit() {
	tx.store.mu.Lock()
	defer tx.store.mu.Unlock()
	for id, p := range tx.stagedProducts {
		tx.store.products[id] = p
	}
	for _, m := range tx.stagedMovs {
		tx.store.movements[m.ID] = m
	}
}

func (tx *fakeTx) release() {
	for _, m := range tx.held {
		m.Unlock()
	}
}

type fakeTxRunner struct{ store *fakeStore }

func (r *fakeTxRunner) Run(_ context.Context, fn func(repository.StockMovementRepository, repository.ProductRepository) error) error {
	tx := &fakeTx{store: r.store, stagedProducts: make(map[string]*entity.Product)}
	defer tx.release()
	if err := fn(&fakeMovementRepo{store: r.store, tx: tx}, &fakeProductRepo{store: r.store, tx: tx}); err != nil {
		return err // staging descartado: rollback
	}
	tx.commit()
	return nil
}

type fakeMovementRepo struct {
	store *fakeStore
	tx    *fakeTx
}

func (r *fakeMovementRepo) Create(_ context.Context, movement *entity.StockMovement) error {
	if r.store.failLedgerAppend {
		return fmt.Errorf("%w: append ledger simulado", domain.ErrStorage)
	}
	cp := *movement
	r.tx.stagedMovs = append(r.tx.stagedMovs, &cp)
	return nil
}

func (r *fakeMovementRepo) GetByID(_ context.Context, id string) (*entity.StockMovement, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	m, ok := r.store.movements[id]
	if !ok {
		return nil, nil
	}
	cp := *m
	return &cp, nil
}

func (r *fakeMovementRepo) ListByProduct(_ context.Context, productID string, limit, offset int) ([]*entity.StockMovement, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []*entity.StockMovement
	for _, m := range r.store.movements {
		if m.ProductID == productID {
			cp := *m
			out = append(out, &cp)
		}
	}
	return out, nil
}

type fakeProductRepo struct {
	store *fakeStore
	tx    *fakeTx // nil fuera de transacción
}

func (r *fakeProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	return r.store.productCopy(id), nil
}

func (r *fakeProductRepo) GetForUpdate(_ context.Context, id string) (*entity.Product, error) {
	// análogo a FOR UPDATE: el lock del producto se mantiene hasta el fin de la tx
	m := r.store.lockFor(id)
	m.Lock()
	r.tx.held = append(r.tx.held, m)
	return r.store.productCopy(id), nil
}

func (r *fakeProductRepo) UpdateStock(_ context.Context, id string, quantity int64, status string) error {
	p := r.store.productCopy(id)
	if p == nil {
		return domain.ErrNotFound
	}
	p.StockQuantity = quantity
	p.Status = status
	r.tx.stagedProducts[id] = p
	return nil
}

func (r *fakeProductRepo) Create(context.Context, *entity.Product) error { return nil }
func (r *fakeProductRepo) Update(context.Context, *entity.Product) error { return nil }
func (r *fakeProductRepo) List(context.Context, repository.ProductFilter, int, int) ([]*entity.Product, error) {
	return nil, nil
}
func (r *fakeProductRepo) ListLowStock(context.Context, int64, int, int) ([]*entity.Product, error) {
	return nil, nil
}
func (r *fakeProductRepo) CountBySupplier(context.Context, string) (int64, error) { return 0, nil }
func (r *fakeProductRepo) Delete(context.Context, string) error                   { return nil }

func newUseCase(store *fakeStore) *ledger.RecordMovementUseCase {
	return ledger.NewRecordMovementUseCase(
		&fakeTxRunner{store: store},
		&fakeProductRepo{store: store},
		2*time.Second,
	)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

// La secuencia de referencia: 0 --in 10--> 10 active --out 15--> 0 out_of_stock
// (clamp, no negativo) --in 5--> 5 active.
func TestRecordMovement_SecuenciaClampada(t *testing.T) {
	store := newFakeStore()
	store.addProduct("p1", 0, entity.StatusOutOfStock)
	uc := newUseCase(store)
	ctx := context.Background()

	_, err := uc.RecordMovement(ctx, ledger.MovementInput{ProductID: "p1", Quantity: 10, Type: entity.MovementTypeIn, Reason: "compra inicial"})
	require.NoError(t, err)
	p := store.productCopy("p1")
	assert.Equal(t, int64(10), p.StockQuantity)
	assert.Equal(t, entity.StatusActive, p.Status)

	mov, err := uc.RecordMovement(ctx, ledger.MovementInput{ProductID: "p1", Quantity: 15, Type: entity.MovementTypeOut, Reason: "venta grande"})
	require.NoError(t, err)
	// el ledger guarda la magnitud positiva; la dirección la da el tipo
	assert.Equal(t, int64(15), mov.Quantity)
	assert.Equal(t, entity.MovementTypeOut, mov.Type)
	p = store.productCopy("p1")
	assert.Equal(t, int64(0), p.StockQuantity, "una salida mayor al stock hace clamp a cero")
	assert.Equal(t, entity.StatusOutOfStock, p.Status)

	_, err = uc.RecordMovement(ctx, ledger.MovementInput{ProductID: "p1", Quantity: 5, Type: entity.MovementTypeIn, Reason: "reposición"})
	require.NoError(t, err)
	p = store.productCopy("p1")
	assert.Equal(t, int64(5), p.StockQuantity)
	assert.Equal(t, entity.StatusActive, p.Status)

	assert.Equal(t, 3, store.movementCount())
}

func TestRecordMovement_Validaciones(t *testing.T) {
	cases := []struct {
		name  string
		input ledger.MovementInput
	}{
		{"cantidad cero", ledger.MovementInput{ProductID: "p1", Quantity: 0, Type: entity.MovementTypeIn, Reason: "x"}},
		{"cantidad negativa", ledger.MovementInput{ProductID: "p1", Quantity: -3, Type: entity.MovementTypeOut, Reason: "x"}},
		{"razón vacía", ledger.MovementInput{ProductID: "p1", Quantity: 5, Type: entity.MovementTypeIn, Reason: "   "}},
		{"tipo desconocido", ledger.MovementInput{ProductID: "p1", Quantity: 5, Type: "transfer", Reason: "x"}},
		{"producto inexistente", ledger.MovementInput{ProductID: "no-existe", Quantity: 5, Type: entity.MovementTypeIn, Reason: "x"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := newFakeStore()
			store.addProduct("p1", 7, entity.StatusActive)
			uc := newUseCase(store)

			mov, err := uc.RecordMovement(context.Background(), tc.input)
			require.ErrorIs(t, err, domain.ErrInvalidInput)
			assert.Nil(t, mov)
			// cero cambios de estado
			assert.Equal(t, int64(7), store.productCopy("p1").StockQuantity)
			assert.Equal(t, 0, store.movementCount())
		})
	}
}

// Si el append al ledger falla después de calcular el nuevo stock, no debe
// quedar ni el movimiento ni el cambio de cantidad (I2: todo o nada).
func TestRecordMovement_AtomicidadFalloLedger(t *testing.T) {
	store := newFakeStore()
	store.addProduct("p1", 20, entity.StatusActive)
	store.failLedgerAppend = true
	uc := newUseCase(store)

	mov, err := uc.RecordMovement(context.Background(), ledger.MovementInput{
		ProductID: "p1", Quantity: 5, Type: entity.MovementTypeOut, Reason: "venta",
	})
	require.ErrorIs(t, err, domain.ErrStorage)
	assert.Nil(t, mov)
	assert.Equal(t, int64(20), store.productCopy("p1").StockQuantity, "el estado previo queda intacto")
	assert.Equal(t, 0, store.movementCount(), "sin movimiento huérfano")
}

// N movimientos concurrentes sobre el mismo producto: el resultado final es la
// suma exacta, sin updates perdidos. Los deltas se eligen para que ningún
// orden intermedio dispare el clamp.
func TestRecordMovement_ConcurrenciaMismoProducto(t *testing.T) {
	store := newFakeStore()
	store.addProduct("p1", 100, entity.StatusActive)
	uc := newUseCase(store)

	var wg sync.WaitGroup
	for i := 0; i < 30; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.RecordMovement(context.Background(), ledger.MovementInput{
				ProductID: "p1", Quantity: 2, Type: entity.MovementTypeOut, Reason: "venta concurrente",
			})
			assert.NoError(t, err)
		}()
	}
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.RecordMovement(context.Background(), ledger.MovementInput{
				ProductID: "p1", Quantity: 3, Type: entity.MovementTypeIn, Reason: "reposición concurrente",
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	// 100 - 30*2 + 20*3 = 100
	assert.Equal(t, int64(100), store.productCopy("p1").StockQuantity)
	assert.Equal(t, 50, store.movementCount())
}

// Movimientos sobre productos distintos no comparten punto de serialización:
// ambos terminan con su suma exacta.
func TestRecordMovement_ProductosDistintosIndependientes(t *testing.T) {
	store := newFakeStore()
	store.addProduct("p1", 50, entity.StatusActive)
	store.addProduct("p2", 50, entity.StatusActive)
	uc := newUseCase(store)

	var wg sync.WaitGroup
	for _, productID := range []string{"p1", "p2"} {
		for i := 0; i < 25; i++ {
			wg.Add(1)
			go func(id string) {
				defer wg.Done()
				_, err := uc.RecordMovement(context.Background(), ledger.MovementInput{
					ProductID: id, Quantity: 1, Type: entity.MovementTypeIn, Reason: "entrada",
				})
				assert.NoError(t, err)
			}(productID)
		}
	}
	wg.Wait()

	assert.Equal(t, int64(75), store.productCopy("p1").StockQuantity)
	assert.Equal(t, int64(75), store.productCopy("p2").StockQuantity)
}

// Un inactive puesto a mano sobrevive a las entradas: el motor nunca pisa el
// override administrativo salvo por la regla de cantidad cero.
func TestRecordMovement_InactivePreservado(t *testing.T) {
	store := newFakeStore()
	store.addProduct("p1", 4, entity.StatusInactive)
	uc := newUseCase(store)

	_, err := uc.RecordMovement(context.Background(), ledger.MovementInput{
		ProductID: "p1", Quantity: 6, Type: entity.MovementTypeIn, Reason: "reposición",
	})
	require.NoError(t, err)
	p := store.productCopy("p1")
	assert.Equal(t, int64(10), p.StockQuantity)
	assert.Equal(t, entity.StatusInactive, p.Status, "el override administrativo se conserva")
}

// Reintento con el mismo movement_id del cliente: el ledger queda con una
// sola entrada y el delta se aplica una sola vez.
func TestRecordMovement_ReintentoIdempotente(t *testing.T) {
	store := newFakeStore()
	store.addProduct("p1", 10, entity.StatusActive)
	uc := newUseCase(store)
	ctx := context.Background()

	input := ledger.MovementInput{
		MovementID: "cliente-mov-1",
		ProductID:  "p1", Quantity: 5, Type: entity.MovementTypeIn, Reason: "compra",
	}
	first, err := uc.RecordMovement(ctx, input)
	require.NoError(t, err)

	second, err := uc.RecordMovement(ctx, input)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, int64(15), store.productCopy("p1").StockQuantity, "el delta se aplica una sola vez")
	assert.Equal(t, 1, store.movementCount())
}
