package ble

import (
	"context"

	"github.com/Krajiyah/ble-hrcp/pkg/models"
)

// Backend exposes the local BLE radios
type Backend interface {
	Adapters() ([]Adapter, error)
}

// Adapter is one local BLE radio acting as central
type Adapter interface {
	ID() string
	// StartScan begins collecting advertisements; onFound, if non-nil, is called for each new address.
	StartScan(ctx context.Context, onFound func(models.Peripheral)) error
	StopScan() error
	// Peripherals returns the discovery snapshot accumulated since StartScan
	Peripherals() []models.Peripheral
	Connect(ctx context.Context, addr string) (Connection, error)
}

// Connection is an established link to one peripheral
type Connection interface {
	Peripheral() models.Peripheral
	DiscoverCharacteristics() ([]models.CharacteristicDescriptor, error)
	Write(c models.CharacteristicDescriptor, data []byte, mode models.AckMode) error
	Disconnect() error
}
