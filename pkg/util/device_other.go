//go:build !linux && !darwin
// +build !linux,!darwin

package util

import (
	"runtime"

	"github.com/currantlabs/ble"
	"github.com/pkg/errors"
)

// NewDevice always fails on platforms without a supported ble stack
func NewDevice() (ble.Device, error) {
	return nil, errors.Errorf("no ble device implementation for %s", runtime.GOOS)
}
