package internal

import (
	"github.com/currantlabs/ble"
)

// DummyAdv is a canned advertisement
type DummyAdv struct {
	Addr           string
	Name           string
	Rssi           int
	NotConnectable bool
}

func (a DummyAdv) LocalName() string              { return a.Name }
func (a DummyAdv) ManufacturerData() []byte       { return nil }
func (a DummyAdv) ServiceData() []ble.ServiceData { return nil }
func (a DummyAdv) Services() []ble.UUID           { return nil }
func (a DummyAdv) OverflowService() []ble.UUID    { return nil }
func (a DummyAdv) TxPowerLevel() int              { return 0 }
func (a DummyAdv) Connectable() bool              { return !a.NotConnectable }
func (a DummyAdv) SolicitedService() []ble.UUID   { return nil }
func (a DummyAdv) RSSI() int                      { return a.Rssi }
func (a DummyAdv) Address() ble.Addr              { return ble.NewAddr(a.Addr) }

// TestService lists characteristic UUIDs under one service UUID
type TestService struct {
	UUID  string
	Chars []string
}

// GetTestProfile builds a profile holding the given services in order
func GetTestProfile(services ...TestService) *ble.Profile {
	p := &ble.Profile{}
	for _, svc := range services {
		s := ble.NewService(ble.MustParse(svc.UUID))
		for _, u := range svc.Chars {
			c := ble.NewCharacteristic(ble.MustParse(u))
			c.Property = ble.CharWriteNR | ble.CharWrite
			s.Characteristics = append(s.Characteristics, c)
		}
		p.Services = append(p.Services, s)
	}
	return p
}
