package domain

import "encoding/json"

// DefaultCurrency is used when no snapshot exists yet.
const DefaultCurrency = "USD"

// Settings is front-end configuration carried inside the snapshot. Channel
// ids are Discord snowflakes; empty means unset.
type Settings struct {
	OrderChannel        string `json:"order_channel"`
	NotificationChannel string `json:"notification_channel"`
	Currency            string `json:"currency"`
}

// Snapshot is the full serialized ledger state. Suppliers is a reserved
// mapping preserved verbatim across save/load cycles.
type Snapshot struct {
	Products  map[string]Product         `json:"products"`
	Orders    map[string]Order           `json:"orders"`
	Suppliers map[string]json.RawMessage `json:"suppliers"`
	Settings  Settings                   `json:"settings"`
}

// DefaultSnapshot is the state loaded when no snapshot file exists.
func DefaultSnapshot() Snapshot {
	return Snapshot{
		Products:  map[string]Product{},
		Orders:    map[string]Order{},
		Suppliers: map[string]json.RawMessage{},
		Settings:  Settings{Currency: DefaultCurrency},
	}
}
