package models

import (
	"fmt"
	"strings"
)

// Peripheral is a device seen during a scan window
type Peripheral struct {
	Addr        string
	Name        string
	RSSI        int
	Connectable bool
}

// NewPeripheral normalizes the address of a freshly scanned device
func NewPeripheral(addr string, name string, rssi int, connectable bool) Peripheral {
	return Peripheral{Addr: strings.ToUpper(addr), Name: name, RSSI: rssi, Connectable: connectable}
}

// DisplayName returns the advertised name or a placeholder when none was advertised
func (p Peripheral) DisplayName() string {
	if p.Name == "" {
		return "(unknown)"
	}
	return p.Name
}

func (p Peripheral) String() string {
	return fmt.Sprintf("%s %s rssi=%d", p.Addr, p.DisplayName(), p.RSSI)
}
