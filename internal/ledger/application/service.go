package application

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/commercebot/shopkeeper/internal/ledger/domain"
)

const defaultOrderListLimit = 10

// Ledger is the in-memory authoritative store of products and orders. A
// single mutex serializes every mutation together with the snapshot write
// that follows it, so no persisted snapshot ever reflects a partial
// mutation. Reads take the same lock shared.
type Ledger struct {
	log      *slog.Logger
	store    SnapshotStore
	notifier Notifier // may be nil

	mu          sync.RWMutex
	products    map[string]domain.Product
	productIDs  []string // insertion order
	orders      map[string]domain.Order
	orderIDs    []string // insertion order
	suppliers   map[string]json.RawMessage
	settings    domain.Settings
	nextProduct int
	nextOrder   int
}

// Open loads the persisted snapshot through store and returns a ready
// ledger. An unreadable snapshot is fatal to initialization.
func Open(ctx context.Context, log *slog.Logger, store SnapshotStore, notifier Notifier) (*Ledger, error) {
	snap, err := store.Load(ctx)
	if err != nil {
		return nil, &domain.PersistenceError{Op: "load", Err: err}
	}

	l := &Ledger{
		log:         log,
		store:       store,
		notifier:    notifier,
		products:    map[string]domain.Product{},
		orders:      map[string]domain.Order{},
		suppliers:   snap.Suppliers,
		settings:    snap.Settings,
		nextProduct: 1,
		nextOrder:   1,
	}
	if l.suppliers == nil {
		l.suppliers = map[string]json.RawMessage{}
	}
	if l.settings.Currency == "" {
		l.settings.Currency = domain.DefaultCurrency
	}

	for id, p := range snap.Products {
		p.ID = id
		l.products[id] = p
		l.productIDs = append(l.productIDs, id)
		if n, err := strconv.Atoi(id); err == nil && n >= l.nextProduct {
			l.nextProduct = n + 1
		}
	}
	for id, o := range snap.Orders {
		o.ID = id
		l.orders[id] = o
		l.orderIDs = append(l.orderIDs, id)
		if n, ok := orderSeq(id); ok && n >= l.nextOrder {
			l.nextOrder = n + 1
		}
	}

	// JSON objects carry no order, so display order is rebuilt from
	// creation time with the id as tie-breaker.
	sort.Slice(l.productIDs, func(i, j int) bool {
		a, b := l.products[l.productIDs[i]], l.products[l.productIDs[j]]
		if a.CreatedAt.Equal(b.CreatedAt) {
			return numericLess(a.ID, b.ID)
		}
		return a.CreatedAt.Before(b.CreatedAt)
	})
	sort.Slice(l.orderIDs, func(i, j int) bool {
		a, b := l.orders[l.orderIDs[i]], l.orders[l.orderIDs[j]]
		if a.CreatedAt.Equal(b.CreatedAt) {
			return a.ID < b.ID
		}
		return a.CreatedAt.Before(b.CreatedAt)
	})

	log.Info("ledger loaded",
		"products", len(l.products),
		"orders", len(l.orders),
		"next_product_id", l.nextProduct,
		"next_order_id", l.nextOrder)
	return l, nil
}

// AddProductInput carries the raw form values for a new product. Numeric
// fields arrive as strings and are parsed by the ledger.
type AddProductInput struct {
	Name         string
	Description  string
	Price        string
	SupplierCost string
	Stock        string
}

// AddProduct validates in, assigns the next sequential product id and
// persists. Ids are strictly monotonic: deleting a product never frees its
// id for reuse.
func (l *Ledger) AddProduct(ctx context.Context, in AddProductInput) (domain.Product, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return domain.Product{}, &domain.ValidationError{Field: "name", Value: in.Name, Reason: "required"}
	}
	desc := strings.TrimSpace(in.Description)
	if desc == "" {
		return domain.Product{}, &domain.ValidationError{Field: "description", Value: in.Description, Reason: "required"}
	}
	if len(desc) > domain.MaxDescriptionLength {
		return domain.Product{}, &domain.ValidationError{
			Field: "description", Value: desc[:32] + "...",
			Reason: fmt.Sprintf("longer than %d characters", domain.MaxDescriptionLength),
		}
	}
	price, err := domain.ParseMoney("price", in.Price)
	if err != nil {
		return domain.Product{}, err
	}
	cost, err := domain.ParseMoney("supplier_cost", in.SupplierCost)
	if err != nil {
		return domain.Product{}, err
	}
	stock, err := domain.ParseCount("stock", in.Stock)
	if err != nil {
		return domain.Product{}, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	id := strconv.Itoa(l.nextProduct)
	p := domain.NewProduct(id, name, desc, price, cost, stock)
	l.products[id] = p
	l.productIDs = append(l.productIDs, id)
	l.nextProduct++

	l.log.Info("product added", "product_id", id, "name", name, "stock", stock)
	return p, l.persistLocked(ctx)
}

// ListProducts returns every product in insertion order. An empty catalog
// yields an empty slice, not an error.
func (l *Ledger) ListProducts() []domain.Product {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]domain.Product, 0, len(l.productIDs))
	for _, id := range l.productIDs {
		out = append(out, l.products[id])
	}
	return out
}

func (l *Ledger) GetProduct(id string) (domain.Product, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	p, ok := l.products[id]
	if !ok {
		return domain.Product{}, &domain.NotFoundError{Kind: "product", ID: id}
	}
	return p, nil
}

// UpdateStock replaces a product's stock level unconditionally and returns
// the old and new values.
func (l *Ledger) UpdateStock(ctx context.Context, id string, quantity int) (oldStock, newStock int, err error) {
	if quantity < 0 {
		return 0, 0, &domain.ValidationError{
			Field: "quantity", Value: strconv.Itoa(quantity), Reason: "must not be negative",
		}
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	p, ok := l.products[id]
	if !ok {
		return 0, 0, &domain.NotFoundError{Kind: "product", ID: id}
	}
	oldStock = p.Stock
	p.Stock = quantity
	l.products[id] = p

	l.log.Info("stock updated", "product_id", id, "old", oldStock, "new", quantity)
	return oldStock, quantity, l.persistLocked(ctx)
}

// DeleteProduct hard-removes a product and returns its name. Orders that
// reference the product keep their snapshot fields and a dangling id.
func (l *Ledger) DeleteProduct(ctx context.Context, id string) (string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	p, ok := l.products[id]
	if !ok {
		return "", &domain.NotFoundError{Kind: "product", ID: id}
	}
	delete(l.products, id)
	for i, pid := range l.productIDs {
		if pid == id {
			l.productIDs = append(l.productIDs[:i], l.productIDs[i+1:]...)
			break
		}
	}

	l.log.Info("product deleted", "product_id", id, "name", p.Name)
	return p.Name, l.persistLocked(ctx)
}

// CreateOrderInput carries the raw form values for a new order plus the id
// of the user placing it.
type CreateOrderInput struct {
	ProductID       string
	Quantity        string
	CustomerName    string
	CustomerEmail   string
	ShippingAddress string
	ActorID         string
}

// CreateOrder reserves stock and records the order atomically: the stock
// decrement and the order insertion happen under one critical section, so
// concurrent orders can never oversell a product.
func (l *Ledger) CreateOrder(ctx context.Context, in CreateOrderInput) (domain.Order, error) {
	l.mu.Lock()

	p, ok := l.products[in.ProductID]
	if !ok {
		l.mu.Unlock()
		return domain.Order{}, &domain.NotFoundError{Kind: "product", ID: in.ProductID}
	}
	qty, err := domain.ParseQuantity(in.Quantity)
	if err != nil {
		l.mu.Unlock()
		return domain.Order{}, err
	}
	if qty > p.Stock {
		l.mu.Unlock()
		return domain.Order{}, &domain.InsufficientStockError{
			ProductID: p.ID, Requested: qty, Available: p.Stock,
		}
	}

	id := fmt.Sprintf("ORD-%04d", l.nextOrder)
	o := domain.NewOrder(id, p, qty, domain.Customer{
		Name:            in.CustomerName,
		Email:           in.CustomerEmail,
		ShippingAddress: in.ShippingAddress,
	}, in.ActorID)

	l.orders[id] = o
	l.orderIDs = append(l.orderIDs, id)
	l.nextOrder++
	p.Stock -= qty
	l.products[p.ID] = p

	l.log.Info("order created",
		"order_id", id, "product_id", p.ID, "quantity", qty,
		"total", o.Total, "created_by", in.ActorID)
	persistErr := l.persistLocked(ctx)
	l.mu.Unlock()

	if l.notifier != nil {
		if err := l.notifier.OrderCreated(ctx, o); err != nil {
			l.log.Warn("order notification failed", "order_id", id, "err", err)
		}
	}
	return o, persistErr
}

// ListOrders returns the last limit orders, most recent first. A limit of
// zero or less uses the default of 10.
func (l *Ledger) ListOrders(limit int) []domain.Order {
	if limit <= 0 {
		limit = defaultOrderListLimit
	}

	l.mu.RLock()
	defer l.mu.RUnlock()

	n := len(l.orderIDs)
	if limit > n {
		limit = n
	}
	out := make([]domain.Order, 0, limit)
	for i := n - 1; i >= n-limit; i-- {
		out = append(out, l.orders[l.orderIDs[i]])
	}
	return out
}

func (l *Ledger) GetOrder(id string) (domain.Order, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	o, ok := l.orders[id]
	if !ok {
		return domain.Order{}, &domain.NotFoundError{Kind: "order", ID: id}
	}
	return o, nil
}

// UpdateOrderStatus moves an order to any of the five statuses; there is no
// transition graph. It returns the old and new status.
func (l *Ledger) UpdateOrderStatus(ctx context.Context, id, rawStatus string) (oldStatus, newStatus domain.OrderStatus, err error) {
	status, err := domain.ParseOrderStatus(rawStatus)
	if err != nil {
		return "", "", err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	o, ok := l.orders[id]
	if !ok {
		return "", "", &domain.NotFoundError{Kind: "order", ID: id}
	}
	oldStatus = o.Status
	o.Status = status
	l.orders[id] = o

	l.log.Info("order status updated", "order_id", id, "old", oldStatus, "new", status)
	return oldStatus, status, l.persistLocked(ctx)
}

// ComputeStatistics aggregates business figures over all orders. Pure read.
func (l *Ledger) ComputeStatistics() domain.StatsSnapshot {
	l.mu.RLock()
	defer l.mu.RUnlock()

	products := make([]domain.Product, 0, len(l.productIDs))
	for _, id := range l.productIDs {
		products = append(products, l.products[id])
	}
	orders := make([]domain.Order, 0, len(l.orderIDs))
	for _, id := range l.orderIDs {
		orders = append(orders, l.orders[id])
	}
	return domain.ComputeStats(products, orders)
}

// Settings returns the current front-end configuration.
func (l *Ledger) Settings() domain.Settings {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.settings
}

// UpdateSettings replaces the front-end configuration and persists.
func (l *Ledger) UpdateSettings(ctx context.Context, s domain.Settings) error {
	if s.Currency == "" {
		s.Currency = domain.DefaultCurrency
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.settings = s
	return l.persistLocked(ctx)
}

// persistLocked writes the full snapshot through the store. Callers hold
// the write lock. On failure the in-memory mutation is kept and the wrapped
// error is returned (succeeded-but-unpersisted); the next successful save
// rewrites the whole state anyway.
func (l *Ledger) persistLocked(ctx context.Context) error {
	snap := domain.Snapshot{
		Products:  make(map[string]domain.Product, len(l.products)),
		Orders:    make(map[string]domain.Order, len(l.orders)),
		Suppliers: l.suppliers,
		Settings:  l.settings,
	}
	for id, p := range l.products {
		snap.Products[id] = p
	}
	for id, o := range l.orders {
		snap.Orders[id] = o
	}

	if err := l.store.Save(ctx, snap); err != nil {
		l.log.Error("snapshot save failed", "err", err)
		return &domain.PersistenceError{Op: "save", Err: err}
	}
	return nil
}

func orderSeq(id string) (int, bool) {
	rest, ok := strings.CutPrefix(id, "ORD-")
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(rest)
	if err != nil {
		return 0, false
	}
	return n, true
}

func numericLess(a, b string) bool {
	na, errA := strconv.Atoi(a)
	nb, errB := strconv.Atoi(b)
	if errA == nil && errB == nil {
		return na < nb
	}
	return a < b
}
