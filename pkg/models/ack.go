package models

import "fmt"

// AckMode selects between acknowledged and fire-and-forget writes
type AckMode int

const (
	// WithoutResponse issues a Write Command; the peripheral sends nothing back
	WithoutResponse AckMode = iota
	// WithResponse issues a Write Request and waits for the Write Response
	WithResponse
)

func (m AckMode) String() string {
	names := []string{"WithoutResponse", "WithResponse"}
	if m < 0 || int(m) >= len(names) {
		return fmt.Sprintf("AckMode(%d)", int(m))
	}
	return names[m]
}

// Valid reports whether m is one of the known modes
func (m AckMode) Valid() bool {
	return m == WithoutResponse || m == WithResponse
}

// NoResponse maps the mode to the stack's noRsp flag
func (m AckMode) NoResponse() bool { return m == WithoutResponse }
