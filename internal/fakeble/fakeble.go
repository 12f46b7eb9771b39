// Package fakeble is an in-memory ble.Backend for exercising sessions without a radio.
package fakeble

import (
	"context"
	"sync"
	"time"

	"github.com/Krajiyah/ble-hrcp/pkg/ble"
	"github.com/Krajiyah/ble-hrcp/pkg/models"
)

// Backend hands out its adapter unless AdaptersErr is set or Adapter is nil
type Backend struct {
	AdaptersErr error
	Adapter     *Adapter
}

// NewBackend returns a backend with one adapter that "hears" the given peripherals
func NewBackend(peripherals ...models.Peripheral) *Backend {
	return &Backend{Adapter: NewAdapter(peripherals...)}
}

func (b *Backend) Adapters() ([]ble.Adapter, error) {
	if b.AdaptersErr != nil {
		return nil, b.AdaptersErr
	}
	if b.Adapter == nil {
		return []ble.Adapter{}, nil
	}
	return []ble.Adapter{b.Adapter}, nil
}

// Adapter replays Discoverable on StartScan and returns Conn from Connect.
// ConnectDelay stalls Connect without watching ctx, like a stack that finishes
// a link it already started.
type Adapter struct {
	Discoverable []models.Peripheral
	ScanErr      error
	StopScanErr  error
	ConnectErr   error
	ConnectDelay time.Duration
	Conn         *Connection

	mutex      sync.Mutex
	set        *models.DiscoverySet
	scanning   bool
	ScanStarts int
	ScanStops  int
	Dialed     []string
}

// NewAdapter returns an adapter with an empty, healthy connection template
func NewAdapter(peripherals ...models.Peripheral) *Adapter {
	return &Adapter{Discoverable: peripherals, Conn: &Connection{}, set: models.NewDiscoverySet()}
}

func (a *Adapter) ID() string { return "fake0" }

func (a *Adapter) StartScan(ctx context.Context, onFound func(models.Peripheral)) error {
	a.mutex.Lock()
	defer a.mutex.Unlock()
	a.ScanStarts++
	if a.ScanErr != nil {
		return a.ScanErr
	}
	a.scanning = true
	a.set.Reset()
	for _, p := range a.Discoverable {
		if a.set.Set(p) && onFound != nil {
			onFound(p)
		}
	}
	return nil
}

func (a *Adapter) StopScan() error {
	a.mutex.Lock()
	defer a.mutex.Unlock()
	a.ScanStops++
	a.scanning = false
	return a.StopScanErr
}

// Scanning reports whether StartScan succeeded without a matching StopScan
func (a *Adapter) Scanning() bool {
	a.mutex.Lock()
	defer a.mutex.Unlock()
	return a.scanning
}

func (a *Adapter) Peripherals() []models.Peripheral {
	a.mutex.Lock()
	defer a.mutex.Unlock()
	return a.set.Snapshot()
}

func (a *Adapter) Connect(ctx context.Context, addr string) (ble.Connection, error) {
	if a.ConnectDelay > 0 {
		time.Sleep(a.ConnectDelay)
	}
	a.mutex.Lock()
	defer a.mutex.Unlock()
	a.Dialed = append(a.Dialed, addr)
	if a.ConnectErr != nil {
		return nil, a.ConnectErr
	}
	p, ok := a.set.Get(addr)
	if !ok {
		p = models.NewPeripheral(addr, "", 0, true)
	}
	a.Conn.peripheral = p
	return a.Conn, nil
}

// Write is one recorded Connection.Write call
type Write struct {
	Char models.CharacteristicDescriptor
	Data []byte
	Mode models.AckMode
}

// Connection records writes and disconnects; Delay stalls every call
type Connection struct {
	Chars         []models.CharacteristicDescriptor
	DiscoverErr   error
	WriteErr      error
	DisconnectErr error
	Delay         time.Duration

	mutex       sync.Mutex
	peripheral  models.Peripheral
	Writes      []Write
	Disconnects int
}

func (c *Connection) stall() {
	if c.Delay > 0 {
		time.Sleep(c.Delay)
	}
}

func (c *Connection) Peripheral() models.Peripheral { return c.peripheral }

func (c *Connection) DiscoverCharacteristics() ([]models.CharacteristicDescriptor, error) {
	c.stall()
	if c.DiscoverErr != nil {
		return nil, c.DiscoverErr
	}
	return c.Chars, nil
}

func (c *Connection) Write(char models.CharacteristicDescriptor, data []byte, mode models.AckMode) error {
	c.stall()
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.Writes = append(c.Writes, Write{char, append([]byte{}, data...), mode})
	return c.WriteErr
}

func (c *Connection) Disconnect() error {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.Disconnects++
	return c.DisconnectErr
}

// DisconnectCount returns the number of Disconnect calls seen so far
func (c *Connection) DisconnectCount() int {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return c.Disconnects
}

// WriteCount returns the number of Write calls seen so far
func (c *Connection) WriteCount() int {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return len(c.Writes)
}
