package storage

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"gitlab.com/sprinkles/storefront/internal/db"
	"gitlab.com/sprinkles/storefront/internal/repository"
)

var errMemUnsupported = errors.New("memstore: raw queries are not supported")

type memTx struct{}

func (memTx) Commit(context.Context) error   { return nil }
func (memTx) Rollback(context.Context) error { return nil }
func (memTx) Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error) {
	return nil, errMemUnsupported
}
func (memTx) Get(context.Context, interface{}, string, ...interface{}) error {
	return errMemUnsupported
}
func (memTx) Select(context.Context, interface{}, string, ...interface{}) error {
	return errMemUnsupported
}

type memDB struct{ memTx }

func (memDB) ExecQueryRow(context.Context, string, ...interface{}) pgx.Row { return nil }
func (memDB) BeginTx(context.Context) (db.Tx, error)                       { return memTx{}, nil }

// memStore backs every repository with maps guarded by one mutex. ClaimTx
// and MarkDeliveredTx apply their conditions under that mutex, mirroring the
// conditional UPDATE statements.
type memStore struct {
	mu       sync.Mutex
	nextID   int64
	accounts map[int64]*repository.Account
	products map[int64]*repository.Product
	orders   map[int64]*repository.Order
	history  []*repository.HistoryEntry
	outbox   []*repository.OutboxTask
}

func newMemStore() *memStore {
	return &memStore{
		accounts: make(map[int64]*repository.Account),
		products: make(map[int64]*repository.Product),
		orders:   make(map[int64]*repository.Order),
	}
}

func (m *memStore) id() int64 {
	m.nextID++
	return m.nextID
}

func (m *memStore) storage() *Storage {
	return NewStorage(memDB{},
		&memAccountRepo{m}, &memProductRepo{m}, &memOrderRepo{m}, &memHistoryRepo{m}, &memOutboxRepo{m},
		WithLogger(zap.NewNop()),
	)
}

func (m *memStore) orderCopy(id int64) repository.Order {
	m.mu.Lock()
	defer m.mu.Unlock()
	return *m.orders[id]
}

type memAccountRepo struct{ m *memStore }

func (r *memAccountRepo) Create(_ context.Context, account *repository.Account, password string) (int64, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		return 0, err
	}
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, a := range r.m.accounts {
		if a.Email == account.Email {
			return 0, &pgconn.PgError{Code: "23505"}
		}
	}
	account.ID = r.m.id()
	account.Password = string(hash)
	stored := *account
	r.m.accounts[account.ID] = &stored
	return account.ID, nil
}

func (r *memAccountRepo) GetByID(_ context.Context, id int64) (*repository.Account, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	a, ok := r.m.accounts[id]
	if !ok {
		return nil, repository.ErrObjectNotFound
	}
	c := *a
	return &c, nil
}

func (r *memAccountRepo) GetByEmail(_ context.Context, email string) (*repository.Account, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, a := range r.m.accounts {
		if a.Email == email {
			c := *a
			return &c, nil
		}
	}
	return nil, repository.ErrObjectNotFound
}

func (r *memAccountRepo) Authenticate(ctx context.Context, email, password string) (*repository.Account, error) {
	a, err := r.GetByEmail(ctx, email)
	if err != nil {
		return nil, repository.ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(a.Password), []byte(password)) != nil {
		return nil, repository.ErrInvalidCredentials
	}
	return a, nil
}

func (r *memAccountRepo) GetAll(context.Context) ([]*repository.Account, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var all []*repository.Account
	for _, a := range r.m.accounts {
		c := *a
		all = append(all, &c)
	}
	return all, nil
}

func (r *memAccountRepo) UpdateRole(_ context.Context, id int64, role int16) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	a, ok := r.m.accounts[id]
	if !ok {
		return repository.ErrObjectNotFound
	}
	a.Role = role
	return nil
}

type memProductRepo struct{ m *memStore }

func (r *memProductRepo) Create(_ context.Context, product *repository.Product) (int64, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	product.ID = r.m.id()
	stored := *product
	r.m.products[product.ID] = &stored
	return product.ID, nil
}

func (r *memProductRepo) GetByID(_ context.Context, id int64) (*repository.Product, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	p, ok := r.m.products[id]
	if !ok {
		return nil, repository.ErrObjectNotFound
	}
	c := *p
	return &c, nil
}

func (r *memProductRepo) GetByName(_ context.Context, name string) (*repository.Product, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, p := range r.m.products {
		if p.Name == name {
			c := *p
			return &c, nil
		}
	}
	return nil, repository.ErrObjectNotFound
}

func (r *memProductRepo) GetAll(context.Context) ([]*repository.Product, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var all []*repository.Product
	for _, p := range r.m.products {
		c := *p
		all = append(all, &c)
	}
	return all, nil
}

func (r *memProductRepo) Delete(_ context.Context, id int64) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.products[id]; !ok {
		return repository.ErrObjectNotFound
	}
	delete(r.m.products, id)
	return nil
}

type memOrderRepo struct{ m *memStore }

func (r *memOrderRepo) CreateTx(_ context.Context, _ db.Tx, order *repository.Order) (int64, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	order.ID = r.m.id()
	stored := *order
	r.m.orders[order.ID] = &stored
	return order.ID, nil
}

func (r *memOrderRepo) GetByID(_ context.Context, id int64) (*repository.Order, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	o, ok := r.m.orders[id]
	if !ok {
		return nil, repository.ErrObjectNotFound
	}
	c := *o
	return &c, nil
}

func (r *memOrderRepo) GetByIDTx(ctx context.Context, _ db.Tx, id int64) (*repository.Order, error) {
	return r.GetByID(ctx, id)
}

func (r *memOrderRepo) filter(keep func(*repository.Order) bool) []*repository.Order {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var result []*repository.Order
	for id := int64(1); id <= r.m.nextID; id++ {
		if o, ok := r.m.orders[id]; ok && keep(o) {
			c := *o
			result = append(result, &c)
		}
	}
	return result
}

func (r *memOrderRepo) GetByAddress(_ context.Context, address string) ([]*repository.Order, error) {
	return r.filter(func(o *repository.Order) bool { return o.Address == address }), nil
}

func (r *memOrderRepo) GetByCustomerID(_ context.Context, customerID int64) ([]*repository.Order, error) {
	return r.filter(func(o *repository.Order) bool { return o.CustomerID == customerID }), nil
}

func (r *memOrderRepo) GetAll(context.Context) ([]*repository.Order, error) {
	return r.filter(func(*repository.Order) bool { return true }), nil
}

func (r *memOrderRepo) ClaimTx(_ context.Context, _ db.Tx, id, deliveryID int64, deliveryName, eta string) (bool, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	o, ok := r.m.orders[id]
	if !ok || o.DispatchStatus != string(StatusPlaced) || o.DeliveryID != nil {
		return false, nil
	}
	o.DispatchStatus = string(StatusDispatched)
	o.DeliveryID = &deliveryID
	o.DeliveryName = &deliveryName
	o.ETA = eta
	return true, nil
}

func (r *memOrderRepo) MarkDeliveredTx(_ context.Context, _ db.Tx, id, deliveryID int64) (bool, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	o, ok := r.m.orders[id]
	if !ok || o.DispatchStatus != string(StatusDispatched) || o.DeliveryID == nil || *o.DeliveryID != deliveryID {
		return false, nil
	}
	o.DispatchStatus = string(StatusDelivered)
	o.Delivered = true
	return true, nil
}

type memHistoryRepo struct{ m *memStore }

func (r *memHistoryRepo) CreateTx(_ context.Context, _ db.Tx, entry *repository.HistoryEntry) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	c := *entry
	r.m.history = append(r.m.history, &c)
	return nil
}

func (r *memHistoryRepo) GetByOrderID(_ context.Context, orderID int64) ([]*repository.HistoryEntry, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var result []*repository.HistoryEntry
	for _, e := range r.m.history {
		if e.OrderID == orderID {
			c := *e
			result = append(result, &c)
		}
	}
	return result, nil
}

type memOutboxRepo struct{ m *memStore }

func (r *memOutboxRepo) CreateTx(_ context.Context, _ db.Tx, task *repository.OutboxTask) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	task.ID = uuid.New()
	task.Status = repository.TaskStatusCreated
	c := *task
	r.m.outbox = append(r.m.outbox, &c)
	return nil
}

func (r *memOutboxRepo) GetProcessableTasksTx(context.Context, db.Tx, int, int) ([]*repository.OutboxTask, error) {
	return nil, errMemUnsupported
}

func (r *memOutboxRepo) UpdateTaskStatusTx(context.Context, db.Tx, uuid.UUID, repository.TaskStatus, int, *string, *time.Time) error {
	return errMemUnsupported
}

func (r *memOutboxRepo) UpdateTaskStatus(context.Context, db.DB, uuid.UUID, repository.TaskStatus, int, *string, *time.Time) error {
	return errMemUnsupported
}
