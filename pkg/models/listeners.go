package models

import "time"

// SessionListener receives progress of a single session
type SessionListener interface {
	OnScanStarted(time.Duration)
	OnDiscovered([]Peripheral)
	OnConnected(Peripheral)
	OnProfileDiscovered([]CharacteristicDescriptor)
	OnWritten(CharacteristicDescriptor, []byte)
	OnDisconnected()
	OnInternalError(error)
}

// NopListener ignores every event
type NopListener struct{}

func (NopListener) OnScanStarted(time.Duration)                    {}
func (NopListener) OnDiscovered([]Peripheral)                      {}
func (NopListener) OnConnected(Peripheral)                         {}
func (NopListener) OnProfileDiscovered([]CharacteristicDescriptor) {}
func (NopListener) OnWritten(CharacteristicDescriptor, []byte)     {}
func (NopListener) OnDisconnected()                                {}
func (NopListener) OnInternalError(error)                          {}
