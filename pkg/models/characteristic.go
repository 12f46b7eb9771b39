package models

import (
	"fmt"
	"strings"
)

// Property is the GATT characteristic property bit field
type Property int

// Property bits as defined by Bluetooth Core Vol 3, Part G, 3.3.1.1
const (
	PropBroadcast   Property = 0x01
	PropRead        Property = 0x02
	PropWriteNR     Property = 0x04
	PropWrite       Property = 0x08
	PropNotify      Property = 0x10
	PropIndicate    Property = 0x20
	PropSignedWrite Property = 0x40
	PropExtended    Property = 0x80
)

var propertyFlags = []struct {
	p Property
	s string
}{
	{PropBroadcast, "B"},
	{PropRead, "R"},
	{PropWriteNR, "w"},
	{PropWrite, "W"},
	{PropNotify, "N"},
	{PropIndicate, "I"},
	{PropSignedWrite, "S"},
	{PropExtended, "E"},
}

// Has reports whether every bit of o is set
func (p Property) Has(o Property) bool { return p&o == o }

func (p Property) String() string {
	var b strings.Builder
	for _, f := range propertyFlags {
		if p.Has(f.p) {
			b.WriteString(f.s)
		}
	}
	return b.String()
}

// CharacteristicDescriptor names one discovered characteristic by (service UUID, characteristic UUID).
// UUIDs are kept in canonical lower-case 128-bit form.
type CharacteristicDescriptor struct {
	ServiceUUID string
	UUID        string
	Properties  Property
}

// Matches compares against canonical UUIDs
func (c CharacteristicDescriptor) Matches(serviceUUID, charUUID string) bool {
	return c.ServiceUUID == serviceUUID && c.UUID == charUUID
}

func (c CharacteristicDescriptor) String() string {
	return fmt.Sprintf("Service: %s, Characteristic: %s, Properties: %s", c.ServiceUUID, c.UUID, c.Properties)
}
