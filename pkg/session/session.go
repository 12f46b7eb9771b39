package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Krajiyah/ble-hrcp/pkg/ble"
	"github.com/Krajiyah/ble-hrcp/pkg/models"
	"github.com/Krajiyah/ble-hrcp/pkg/util"
	log "github.com/mgutz/logxi/v1"
	"github.com/pkg/errors"
)

var logger = log.New("session")

// Workflow runs single-shot sessions against the first adapter of a backend
type Workflow struct {
	backend  ble.Backend
	listener models.SessionListener
	config   Config
	status   models.SessionStatus
	mutex    sync.Mutex
}

// Session owns a connected peripheral between ConnectAndPrepare and Teardown
type Session struct {
	conn            ble.Connection
	peripheral      models.Peripheral
	characteristics []models.CharacteristicDescriptor
	closed          bool
	mutex           sync.Mutex
}

// NewWorkflow validates config; a nil listener discards events
func NewWorkflow(backend ble.Backend, listener models.SessionListener, config Config) (*Workflow, error) {
	if backend == nil {
		return nil, errors.New("nil backend")
	}
	cfg, err := config.Validate()
	if err != nil {
		return nil, err
	}
	if listener == nil {
		listener = models.NopListener{}
	}
	return &Workflow{backend: backend, listener: listener, config: cfg, status: models.Idle}, nil
}

// Config returns the validated configuration
func (w *Workflow) Config() Config { return w.config }

func (w *Workflow) Status() models.SessionStatus {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	return w.status
}

func (w *Workflow) setStatus(s models.SessionStatus) {
	w.mutex.Lock()
	w.status = s
	w.mutex.Unlock()
	logger.Debug("status", "status", s)
}

func (w *Workflow) firstAdapter() (ble.Adapter, error) {
	adapters, err := w.backend.Adapters()
	if err != nil {
		return nil, models.NewSessionError(models.NoAdapter, err)
	}
	if len(adapters) == 0 {
		return nil, models.NewSessionError(models.NoAdapter, errors.New("No Bluetooth adapter found"))
	}
	return adapters[0], nil
}

func (w *Workflow) bounded(fn func() error) error {
	return util.Timeout(fn, w.config.OperationTimeout)
}

// Discover scans for exactly window and returns what the adapter accumulated
func (w *Workflow) Discover(ctx context.Context, window time.Duration) ([]models.Peripheral, error) {
	return w.discover(ctx, window, nil)
}

func (w *Workflow) discover(ctx context.Context, window time.Duration, stopOn func(models.Peripheral) bool) ([]models.Peripheral, error) {
	adapter, err := w.firstAdapter()
	if err != nil {
		return nil, err
	}
	found := make(chan struct{})
	once := sync.Once{}
	onFound := func(p models.Peripheral) {
		if stopOn != nil && stopOn(p) {
			once.Do(func() { close(found) })
		}
	}
	w.setStatus(models.Scanning)
	w.listener.OnScanStarted(window)
	if err := adapter.StartScan(ctx, onFound); err != nil {
		w.setStatus(models.Idle)
		return nil, models.NewSessionError(models.ScanFailed, err)
	}
	timer := time.NewTimer(window)
	select {
	case <-timer.C:
	case <-found:
		logger.Debug("target seen, ending scan early")
	case <-ctx.Done():
	}
	timer.Stop()
	if err := adapter.StopScan(); err != nil {
		logger.Warn("stop scan", "err", err)
		w.listener.OnInternalError(errors.Wrap(err, "StopScan issue"))
	}
	w.setStatus(models.Idle)
	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(err, "scan interrupted")
	}
	peripherals := adapter.Peripherals()
	logger.Debug("scan complete", "adapter", adapter.ID(), "count", len(peripherals))
	w.listener.OnDiscovered(peripherals)
	return peripherals, nil
}

type dialResult struct {
	conn ble.Connection
	err  error
}

// connect dials addr under OperationTimeout. A connection the adapter
// completes after the deadline is disconnected in the background.
func (w *Workflow) connect(ctx context.Context, adapter ble.Adapter, addr string) (ble.Connection, error) {
	timeout := w.config.OperationTimeout
	if timeout <= 0 {
		return adapter.Connect(ctx, addr)
	}
	dialCtx, cancel := context.WithTimeout(ctx, timeout)
	results := make(chan dialResult, 1)
	go func() {
		defer cancel()
		c, err := adapter.Connect(dialCtx, addr)
		results <- dialResult{c, err}
	}()
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case r := <-results:
		if r.err != nil && dialCtx.Err() == context.DeadlineExceeded && ctx.Err() == nil {
			return nil, util.ErrTimeout
		}
		return r.conn, r.err
	case <-timer.C:
		go w.dropLateConnection(results, addr)
		return nil, util.ErrTimeout
	}
}

func (w *Workflow) dropLateConnection(results <-chan dialResult, addr string) {
	r := <-results
	if r.conn == nil {
		return
	}
	logger.Warn("late connection after timeout", "addr", addr)
	if err := r.conn.Disconnect(); err != nil {
		w.listener.OnInternalError(models.NewSessionError(models.DisconnectFailed, err))
	}
}

// ConnectAndPrepare connects to p and discovers its characteristics.
// A connection whose discovery fails is torn down before returning.
func (w *Workflow) ConnectAndPrepare(ctx context.Context, p models.Peripheral) (*Session, error) {
	adapter, err := w.firstAdapter()
	if err != nil {
		return nil, err
	}
	conn, err := w.connect(ctx, adapter, p.Addr)
	if err != nil {
		return nil, models.NewSessionError(models.ConnectionFailed, err)
	}
	s := &Session{conn: conn, peripheral: conn.Peripheral()}
	w.setStatus(models.Connected)
	w.listener.OnConnected(s.peripheral)

	var chars []models.CharacteristicDescriptor
	err = w.bounded(func() error {
		c, e := conn.DiscoverCharacteristics()
		chars = c
		return e
	})
	if err != nil {
		return nil, w.abort(s, models.NewSessionError(models.DiscoveryFailed, err))
	}
	s.mutex.Lock()
	s.characteristics = chars
	s.mutex.Unlock()
	w.listener.OnProfileDiscovered(chars)
	return s, nil
}

// WriteCommand issues exactly one write; failures are reported, never retried
func (w *Workflow) WriteCommand(ctx context.Context, s *Session, char models.CharacteristicDescriptor, payload []byte, mode models.AckMode) error {
	if len(payload) == 0 {
		return models.NewSessionError(models.InvalidInput, errors.New("empty payload"))
	}
	if !mode.Valid() {
		return models.NewSessionError(models.InvalidInput, errors.Errorf("unknown ack mode %d", int(mode)))
	}
	if !s.Connected() {
		return models.NewSessionError(models.WriteFailed, errors.New("session is closed"))
	}
	if err := ctx.Err(); err != nil {
		return models.NewSessionError(models.WriteFailed, err)
	}
	err := w.bounded(func() error {
		return s.conn.Write(char, payload, mode)
	})
	if err != nil {
		return models.NewSessionError(models.WriteFailed, err)
	}
	logger.Debug("written", "char", char.UUID, "len", len(payload), "mode", mode)
	w.listener.OnWritten(char, payload)
	return nil
}

// Teardown disconnects once; later calls are no-ops
func (w *Workflow) Teardown(s *Session) error {
	s.mutex.Lock()
	if s.closed {
		s.mutex.Unlock()
		return nil
	}
	s.closed = true
	s.mutex.Unlock()
	err := w.bounded(s.conn.Disconnect)
	w.setStatus(models.Disconnected)
	if err != nil {
		return models.NewSessionError(models.DisconnectFailed, err)
	}
	w.listener.OnDisconnected()
	return nil
}

// abort tears s down and returns cause; a failed disconnect is reported but never masks cause
func (w *Workflow) abort(s *Session, cause error) error {
	if err := w.Teardown(s); err != nil {
		logger.Warn("teardown after failure", "cause", cause, "err", err)
		w.listener.OnInternalError(err)
	}
	return cause
}

// Run performs one full session, letting source choose the target after discovery
func (w *Workflow) Run(ctx context.Context, source CriterionSource) error {
	return w.run(ctx, source, nil)
}

// RunFor performs one full session against a criterion known up front.
// With StopOnMatch an address criterion ends the scan as soon as the address is seen.
func (w *Workflow) RunFor(ctx context.Context, criterion models.Criterion) error {
	var stopOn func(models.Peripheral) bool
	if w.config.StopOnMatch && criterion.Kind == models.ByAddress {
		stopOn = func(p models.Peripheral) bool { return util.AddrEqualAddr(p.Addr, criterion.Addr) }
	}
	return w.run(ctx, FixedCriterion(criterion), stopOn)
}

func (w *Workflow) run(ctx context.Context, source CriterionSource, stopOn func(models.Peripheral) bool) error {
	peripherals, err := w.discover(ctx, w.config.ScanWindow, stopOn)
	if err != nil {
		return err
	}
	if len(peripherals) == 0 {
		return models.NewSessionError(models.EmptyDiscoverySet, nil)
	}
	criterion, err := source(peripherals)
	if err != nil {
		return err
	}
	target, err := Select(peripherals, criterion)
	if err != nil {
		return err
	}
	logger.Debug("selected", "criterion", criterion, "addr", target.Addr)
	s, err := w.ConnectAndPrepare(ctx, target)
	if err != nil {
		return err
	}
	char, err := s.LocateCharacteristic(w.config.ServiceUUID, w.config.CharacteristicUUID)
	if err != nil {
		return w.abort(s, err)
	}
	if err := w.WriteCommand(ctx, s, char, w.config.Payload, w.config.AckMode); err != nil {
		return w.abort(s, err)
	}
	return w.Teardown(s)
}

func (s *Session) Peripheral() models.Peripheral { return s.peripheral }

// Characteristics returns what discovery reported, in discovery order
func (s *Session) Characteristics() []models.CharacteristicDescriptor {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return append([]models.CharacteristicDescriptor{}, s.characteristics...)
}

// Connected reports whether Teardown has not run yet
func (s *Session) Connected() bool {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return !s.closed
}

// LocateCharacteristic returns the first discovered characteristic matching the pair
func (s *Session) LocateCharacteristic(serviceUUID, charUUID string) (models.CharacteristicDescriptor, error) {
	svc, err := util.NormalizeUUID(serviceUUID)
	if err != nil {
		return models.CharacteristicDescriptor{}, models.NewSessionError(models.InvalidInput, err)
	}
	char, err := util.NormalizeUUID(charUUID)
	if err != nil {
		return models.CharacteristicDescriptor{}, models.NewSessionError(models.InvalidInput, err)
	}
	for _, c := range s.Characteristics() {
		if c.Matches(svc, char) {
			return c, nil
		}
	}
	return models.CharacteristicDescriptor{}, models.NewSessionError(models.CharacteristicNotFound,
		fmt.Errorf("Characteristic %s not found in service %s", char, svc))
}
