package session

import (
	"fmt"
	"time"

	"github.com/Krajiyah/ble-hrcp/pkg/models"
	"github.com/Krajiyah/ble-hrcp/pkg/util"
)

// Config holds the fixed parameters of a session
type Config struct {
	// ScanWindow is the fixed time spent collecting advertisements
	ScanWindow time.Duration
	// ServiceUUID and CharacteristicUUID name the write target
	ServiceUUID        string
	CharacteristicUUID string
	Payload            []byte
	AckMode            models.AckMode
	// OperationTimeout bounds connect, discovery, write and disconnect; zero waits forever
	OperationTimeout time.Duration
	// StopOnMatch ends the scan window early once an address target has been seen
	StopOnMatch bool
}

// DefaultConfig writes 0x01 to the Heart Rate Control Point after a 5s scan
func DefaultConfig() Config {
	return Config{
		ScanWindow:         util.ScanWindow,
		ServiceUUID:        util.HeartRateServiceUUID,
		CharacteristicUUID: util.HeartRateControlPointUUID,
		Payload:            util.CommandPayload(),
		AckMode:            models.WithoutResponse,
	}
}

// Validate returns a copy with canonical UUIDs, or an InvalidInput error
func (c Config) Validate() (Config, error) {
	invalid := func(format string, args ...interface{}) (Config, error) {
		return Config{}, models.NewSessionError(models.InvalidInput, fmt.Errorf(format, args...))
	}
	if c.ScanWindow < 0 {
		return invalid("negative scan window %s", c.ScanWindow)
	}
	if c.OperationTimeout < 0 {
		return invalid("negative operation timeout %s", c.OperationTimeout)
	}
	if len(c.Payload) == 0 {
		return invalid("empty payload")
	}
	if !c.AckMode.Valid() {
		return invalid("unknown ack mode %d", int(c.AckMode))
	}
	var err error
	if c.ServiceUUID, err = util.NormalizeUUID(c.ServiceUUID); err != nil {
		return invalid("service: %s", err)
	}
	if c.CharacteristicUUID, err = util.NormalizeUUID(c.CharacteristicUUID); err != nil {
		return invalid("characteristic: %s", err)
	}
	c.Payload = append([]byte{}, c.Payload...)
	return c, nil
}
