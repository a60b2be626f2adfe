package repository

import (
	"context"
	"sync"
	"time"

	"github.com/SinghAdii/Ekta-Janch-kendra-sub001/models"
)

// MemoryStore shared lock and simulated latency for every in-memory repository
// built on it. One write lock per store keeps MemoryTx atomic across repositories.
type MemoryStore struct {
	mu      sync.RWMutex
	latency time.Duration
}

// NewMemoryStore latency is applied before every call and honours ctx cancellation
func NewMemoryStore(latency time.Duration) *MemoryStore {
	return &MemoryStore{latency: latency}
}

type txKey struct{}

// memoryTx undo journal of the running transaction, replayed in reverse on failure
type memoryTx struct {
	store *MemoryStore
	undo  []func()
}

func (m *MemoryStore) tx(ctx context.Context) *memoryTx {
	t, _ := ctx.Value(txKey{}).(*memoryTx)
	if t == nil || t.store != m {
		return nil
	}
	return t
}

func (m *MemoryStore) inTx(ctx context.Context) bool {
	return m.tx(ctx) != nil
}

// onRollback registers an undo step when ctx belongs to a transaction
func (m *MemoryStore) onRollback(ctx context.Context, fn func()) {
	if t := m.tx(ctx); t != nil {
		t.undo = append(t.undo, fn)
	}
}

func (m *MemoryStore) rlock(ctx context.Context) {
	if !m.inTx(ctx) {
		m.mu.RLock()
	}
}

func (m *MemoryStore) runlock(ctx context.Context) {
	if !m.inTx(ctx) {
		m.mu.RUnlock()
	}
}

func (m *MemoryStore) wlock(ctx context.Context) {
	if !m.inTx(ctx) {
		m.mu.Lock()
	}
}

func (m *MemoryStore) wunlock(ctx context.Context) {
	if !m.inTx(ctx) {
		m.mu.Unlock()
	}
}

// wait simulates backend latency. A cancelled ctx aborts the call before it touches state.
func (m *MemoryStore) wait(ctx context.Context) error {
	if m.latency <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(m.latency)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// MemoryRepository map-backed Repository keeping insertion order
type MemoryRepository[T Entity] struct {
	store *MemoryStore
	items map[string]T
	order []string
}

// NewMemoryRepository creates an empty repository on the store
func NewMemoryRepository[T Entity](store *MemoryStore) *MemoryRepository[T] {
	return &MemoryRepository[T]{
		store: store,
		items: make(map[string]T),
	}
}

func (r *MemoryRepository[T]) List(ctx context.Context) ([]T, error) {
	if err := r.store.wait(ctx); err != nil {
		return nil, err
	}
	r.store.rlock(ctx)
	defer r.store.runlock(ctx)

	out := make([]T, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.items[id])
	}
	return out, nil
}

func (r *MemoryRepository[T]) Get(ctx context.Context, id string) (*T, error) {
	if err := r.store.wait(ctx); err != nil {
		return nil, err
	}
	r.store.rlock(ctx)
	defer r.store.runlock(ctx)

	item, ok := r.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := item
	return &cp, nil
}

func (r *MemoryRepository[T]) Create(ctx context.Context, entity T) error {
	if err := r.store.wait(ctx); err != nil {
		return err
	}
	r.store.wlock(ctx)
	defer r.store.wunlock(ctx)

	id := entity.GetID()
	if _, exists := r.items[id]; exists {
		return ErrDuplicateID
	}
	r.items[id] = entity
	r.order = append(r.order, id)
	r.store.onRollback(ctx, func() { r.remove(id) })
	return nil
}

func (r *MemoryRepository[T]) Update(ctx context.Context, entity T) error {
	if err := r.store.wait(ctx); err != nil {
		return err
	}
	r.store.wlock(ctx)
	defer r.store.wunlock(ctx)

	id := entity.GetID()
	prev, ok := r.items[id]
	if !ok {
		return ErrNotFound
	}
	r.items[id] = entity
	r.store.onRollback(ctx, func() { r.items[id] = prev })
	return nil
}

func (r *MemoryRepository[T]) Delete(ctx context.Context, id string) error {
	if err := r.store.wait(ctx); err != nil {
		return err
	}
	r.store.wlock(ctx)
	defer r.store.wunlock(ctx)

	prev, ok := r.items[id]
	if !ok {
		return ErrNotFound
	}
	pos := r.remove(id)
	r.store.onRollback(ctx, func() {
		r.items[id] = prev
		r.order = append(r.order[:pos], append([]string{id}, r.order[pos:]...)...)
	})
	return nil
}

// remove drops id and returns its former position in the order
func (r *MemoryRepository[T]) remove(id string) int {
	delete(r.items, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			return i
		}
	}
	return len(r.order)
}

func (r *MemoryRepository[T]) Count(ctx context.Context) (int64, error) {
	if err := r.store.wait(ctx); err != nil {
		return 0, err
	}
	r.store.rlock(ctx)
	defer r.store.runlock(ctx)
	return int64(len(r.items)), nil
}

// MemoryTransactionLog slice-backed ledger
type MemoryTransactionLog struct {
	store *MemoryStore
	rows  []models.StockTransaction
}

func NewMemoryTransactionLog(store *MemoryStore) *MemoryTransactionLog {
	return &MemoryTransactionLog{store: store}
}

func (l *MemoryTransactionLog) Append(ctx context.Context, tx models.StockTransaction) error {
	if err := l.store.wait(ctx); err != nil {
		return err
	}
	l.store.wlock(ctx)
	defer l.store.wunlock(ctx)

	for _, row := range l.rows {
		if row.ID == tx.ID {
			return ErrDuplicateID
		}
	}
	l.rows = append(l.rows, tx)
	l.store.onRollback(ctx, func() { l.rows = l.rows[:len(l.rows)-1] })
	return nil
}

func (l *MemoryTransactionLog) List(ctx context.Context, itemID string) ([]models.StockTransaction, error) {
	if err := l.store.wait(ctx); err != nil {
		return nil, err
	}
	l.store.rlock(ctx)
	defer l.store.runlock(ctx)

	out := make([]models.StockTransaction, 0)
	for _, row := range l.rows {
		if itemID == "" || row.ItemID == itemID {
			out = append(out, row)
		}
	}
	return out, nil
}

// MemoryTx holds the store's write lock for the whole unit and undoes its
// writes when fn fails
type MemoryTx struct{ store *MemoryStore }

func NewMemoryTx(store *MemoryStore) *MemoryTx { return &MemoryTx{store: store} }

func (tx *MemoryTx) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if tx.store.inTx(ctx) {
		return fn(ctx)
	}
	tx.store.mu.Lock()
	defer tx.store.mu.Unlock()

	state := &memoryTx{store: tx.store}
	if err := fn(context.WithValue(ctx, txKey{}, state)); err != nil {
		for i := len(state.undo) - 1; i >= 0; i-- {
			state.undo[i]()
		}
		return err
	}
	return nil
}

// MemoryCooldownStore process-local CooldownStore
type MemoryCooldownStore struct {
	mu        sync.Mutex
	deadlines map[string]time.Time
	now       func() time.Time
}

func NewMemoryCooldownStore() *MemoryCooldownStore {
	return &MemoryCooldownStore{deadlines: make(map[string]time.Time), now: time.Now}
}

func (s *MemoryCooldownStore) Start(_ context.Context, key string, d time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deadlines[key] = s.now().Add(d)
	return nil
}

func (s *MemoryCooldownStore) Remaining(_ context.Context, key string) (time.Duration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	deadline, ok := s.deadlines[key]
	if !ok {
		return 0, nil
	}
	left := deadline.Sub(s.now())
	if left <= 0 {
		delete(s.deadlines, key)
		return 0, nil
	}
	return left, nil
}

// MemorySessionStore process-local SessionStore with lazy expiry
type MemorySessionStore struct {
	mu       sync.Mutex
	sessions map[string]models.BookingSession
	now      func() time.Time
}

func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{sessions: make(map[string]models.BookingSession), now: time.Now}
}

func (s *MemorySessionStore) Load(_ context.Context, id string) (*models.BookingSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	if !session.ExpiresAt.IsZero() && s.now().After(session.ExpiresAt) {
		delete(s.sessions, id)
		return nil, ErrNotFound
	}
	cp := session.Clone()
	return &cp, nil
}

func (s *MemorySessionStore) Save(_ context.Context, session *models.BookingSession, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := session.Clone()
	if ttl > 0 {
		cp.ExpiresAt = s.now().Add(ttl)
		session.ExpiresAt = cp.ExpiresAt
	}
	s.sessions[session.ID] = cp
	return nil
}

func (s *MemorySessionStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[id]; !ok {
		return ErrNotFound
	}
	delete(s.sessions, id)
	return nil
}
