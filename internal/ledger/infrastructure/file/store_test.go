package file

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/commercebot/shopkeeper/internal/ledger/domain"
)

func newTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bot_data.json")
	return NewStore(slog.New(slog.DiscardHandler), path), path
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	store, _ := newTestStore(t)

	snap, err := store.Load(context.Background())
	require.NoError(t, err)

	assert.Empty(t, snap.Products)
	assert.Empty(t, snap.Orders)
	assert.Empty(t, snap.Suppliers)
	assert.Equal(t, "USD", snap.Settings.Currency)
	assert.Empty(t, snap.Settings.OrderChannel)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	store, _ := newTestStore(t)

	p := domain.NewProduct("1", "Widget", "A widget", dec("19.99"), dec("9.99"), 97)
	o := domain.NewOrder("ORD-0001", p, 3, domain.Customer{
		Name:            "John Doe",
		Email:           "john@example.com",
		ShippingAddress: "123 Main St, City, State, ZIP",
	}, "user-42")

	in := domain.Snapshot{
		Products:  map[string]domain.Product{"1": p},
		Orders:    map[string]domain.Order{"ORD-0001": o},
		Suppliers: map[string]json.RawMessage{"acme": json.RawMessage(`{"name":"Acme Co"}`)},
		Settings:  domain.Settings{OrderChannel: "42", Currency: "USD"},
	}
	require.NoError(t, store.Save(context.Background(), in))

	out, err := store.Load(context.Background())
	require.NoError(t, err)

	require.Contains(t, out.Products, "1")
	gotP := out.Products["1"]
	assert.Equal(t, p.Name, gotP.Name)
	assert.Equal(t, p.Description, gotP.Description)
	assert.True(t, gotP.Price.Equal(p.Price))
	assert.True(t, gotP.SupplierCost.Equal(p.SupplierCost))
	assert.True(t, gotP.ProfitMargin.Equal(p.ProfitMargin))
	assert.Equal(t, p.Stock, gotP.Stock)
	assert.True(t, gotP.CreatedAt.Equal(p.CreatedAt))
	assert.Equal(t, p.Active, gotP.Active)

	require.Contains(t, out.Orders, "ORD-0001")
	gotO := out.Orders["ORD-0001"]
	assert.Equal(t, o.ProductID, gotO.ProductID)
	assert.Equal(t, o.ProductName, gotO.ProductName)
	assert.Equal(t, o.Quantity, gotO.Quantity)
	assert.True(t, gotO.Total.Equal(o.Total))
	assert.True(t, gotO.Profit.Equal(o.Profit))
	assert.Equal(t, o.CustomerName, gotO.CustomerName)
	assert.Equal(t, o.CustomerEmail, gotO.CustomerEmail)
	assert.Equal(t, o.ShippingAddress, gotO.ShippingAddress)
	assert.Equal(t, o.Status, gotO.Status)
	assert.True(t, gotO.CreatedAt.Equal(o.CreatedAt))
	assert.Equal(t, o.CreatedBy, gotO.CreatedBy)

	assert.JSONEq(t, `{"name":"Acme Co"}`, string(out.Suppliers["acme"]), "reserved mapping survives")
	assert.Equal(t, "42", out.Settings.OrderChannel)
}

func TestSaveDocumentShape(t *testing.T) {
	store, path := newTestStore(t)
	require.NoError(t, store.Save(context.Background(), domain.DefaultSnapshot()))

	b, err := os.ReadFile(path)
	require.NoError(t, err)

	var doc map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(b, &doc))
	for _, key := range []string{"products", "orders", "suppliers", "settings"} {
		assert.Contains(t, doc, key)
	}

	var settings map[string]any
	require.NoError(t, json.Unmarshal(doc["settings"], &settings))
	assert.Equal(t, "USD", settings["currency"])

	// No temp file left behind.
	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestLoadCorruptFile(t *testing.T) {
	store, path := newTestStore(t)
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := store.Load(context.Background())
	require.Error(t, err)
}

func TestSaveOverwritesPreviousSnapshot(t *testing.T) {
	store, _ := newTestStore(t)

	p := domain.NewProduct("1", "Widget", "A widget", dec("5"), dec("1"), 10)
	snap := domain.DefaultSnapshot()
	snap.Products["1"] = p
	require.NoError(t, store.Save(context.Background(), snap))

	delete(snap.Products, "1")
	require.NoError(t, store.Save(context.Background(), snap))

	out, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, out.Products)
}
