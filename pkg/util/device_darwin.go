package util

import (
	"github.com/currantlabs/ble"
	"github.com/currantlabs/ble/darwin"
)

// NewDevice will return ble.Device backed by CoreBluetooth
func NewDevice() (ble.Device, error) {
	return darwin.NewDevice()
}
