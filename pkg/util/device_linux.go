package util

import (
	"github.com/currantlabs/ble"
	"github.com/currantlabs/ble/linux"
)

// NewDevice will return ble.Device for the local HCI adapter
func NewDevice() (ble.Device, error) {
	return linux.NewDevice()
}
