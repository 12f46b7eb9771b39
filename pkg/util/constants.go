package util

import "time"

const (
	// ScanWindow is how long a session listens for advertisements before reading the discovery snapshot
	ScanWindow = 5 * time.Second
	// HeartRateServiceUUID represents UUID for the GATT Heart Rate service
	HeartRateServiceUUID = "0000180d-0000-1000-8000-00805f9b34fb"
	// HeartRateControlPointUUID represents UUID for the Heart Rate Control Point characteristic (write target)
	HeartRateControlPointUUID = "00002a39-0000-1000-8000-00805f9b34fb"
	// CommandByte is the single byte written to the control point
	CommandByte byte = 0x01

	baseUUIDPrefix = "0000"
	baseUUIDSuffix = "-0000-1000-8000-00805f9b34fb"
)

// CommandPayload returns a fresh copy of the payload written by a session
func CommandPayload() []byte {
	return []byte{CommandByte}
}
