package ble

import (
	"context"
	"sync"
	"time"

	"github.com/Krajiyah/ble-hrcp/pkg/models"
	"github.com/Krajiyah/ble-hrcp/pkg/util"
	"github.com/currantlabs/ble"
	log "github.com/mgutz/logxi/v1"
	"github.com/pkg/errors"
)

const (
	defaultAdapterID = "default"
	// scanStartGrace is how long StartScan waits for the stack to reject a scan
	scanStartGrace = 100 * time.Millisecond
)

var logger = log.New("ble")

// RealBackend is the Backend backed by the host's bluetooth stack
type RealBackend struct {
	methods  coreMethods
	mutex    sync.Mutex
	adapters []Adapter
}

// NewRealBackend returns a backend using the platform default HCI device
func NewRealBackend() *RealBackend {
	return newRealBackend(&realCoreMethods{newDevice: util.NewDevice})
}

func newRealBackend(methods coreMethods) *RealBackend {
	return &RealBackend{methods: methods}
}

// Adapters opens the default device on first use; the stack exposes at most one
func (b *RealBackend) Adapters() ([]Adapter, error) {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	if b.adapters != nil {
		return b.adapters, nil
	}
	if err := b.methods.SetDefaultDevice(); err != nil {
		return nil, errors.Wrap(err, "SetDefaultDevice issue")
	}
	b.adapters = []Adapter{newRealAdapter(defaultAdapterID, b.methods)}
	return b.adapters, nil
}

// RealAdapter scans and dials through the default device
type RealAdapter struct {
	id         string
	methods    coreMethods
	discovered *models.DiscoverySet
	mutex      sync.Mutex
	cancel     context.CancelFunc
	done       chan struct{}
	scanErr    error
}

func newRealAdapter(id string, methods coreMethods) *RealAdapter {
	return &RealAdapter{id: id, methods: methods, discovered: models.NewDiscoverySet()}
}

func (a *RealAdapter) ID() string { return a.id }

func peripheralFromAdv(adv ble.Advertisement) models.Peripheral {
	return models.NewPeripheral(adv.Address().String(), adv.LocalName(), adv.RSSI(), adv.Connectable())
}

func (a *RealAdapter) StartScan(ctx context.Context, onFound func(models.Peripheral)) error {
	a.mutex.Lock()
	defer a.mutex.Unlock()
	if a.cancel != nil {
		return errors.New("scan already running")
	}
	set := a.discovered
	set.Reset()
	scanCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	a.cancel, a.done, a.scanErr = cancel, done, nil
	go func() {
		defer close(done)
		a.scanErr = a.methods.Scan(scanCtx, func(adv ble.Advertisement) {
			p := peripheralFromAdv(adv)
			if set.Set(p) {
				logger.Debug("discovered", "addr", p.Addr, "name", p.Name, "rssi", p.RSSI, "returning", set.Returning(p.Addr))
				if onFound != nil {
					onFound(p)
				}
			}
		}, nil)
	}()
	timer := time.NewTimer(scanStartGrace)
	defer timer.Stop()
	select {
	case <-done:
		if err := scanResult(a.scanErr); err != nil {
			cancel()
			a.cancel, a.done = nil, nil
			return errors.Wrap(err, "Scan issue")
		}
	case <-timer.C:
	}
	logger.Debug("scan started", "adapter", a.id)
	return nil
}

func scanResult(err error) error {
	switch errors.Cause(err) {
	case nil, context.Canceled, context.DeadlineExceeded:
		return nil
	}
	return err
}

func (a *RealAdapter) StopScan() error {
	a.mutex.Lock()
	defer a.mutex.Unlock()
	if a.cancel == nil {
		return nil
	}
	a.cancel()
	<-a.done
	err := scanResult(a.scanErr)
	a.cancel, a.done = nil, nil
	logger.Debug("scan stopped", "adapter", a.id, "seen", a.discovered.Len())
	if err != nil {
		return errors.Wrap(err, "Scan issue")
	}
	return nil
}

func (a *RealAdapter) Peripherals() []models.Peripheral {
	a.mutex.Lock()
	set := a.discovered
	a.mutex.Unlock()
	return set.Snapshot()
}

func (a *RealAdapter) Connect(ctx context.Context, addr string) (Connection, error) {
	cln, err := a.methods.Dial(ctx, ble.NewAddr(addr))
	if err != nil {
		return nil, errors.Wrap(err, "Dial issue")
	}
	a.mutex.Lock()
	p, ok := a.discovered.Get(addr)
	a.mutex.Unlock()
	if !ok {
		p = models.NewPeripheral(addr, "", 0, true)
	}
	if name := cln.Name(); name != "" {
		p.Name = name
	}
	logger.Debug("connected", "addr", p.Addr, "name", p.Name)
	return newRealConnection(p, cln), nil
}
