package models

import "fmt"

// SessionStatus is an enum for the lifecycle of a session
type SessionStatus int

const (
	// Idle indicates nothing has happened yet
	Idle SessionStatus = iota
	// Scanning indicates the adapter is collecting advertisements
	Scanning
	// Connected indicates the peripheral link is up and owned by the session
	Connected
	// Disconnected indicates the link was torn down; the session cannot be reused
	Disconnected
)

func (s SessionStatus) String() string {
	names := []string{"Idle", "Scanning", "Connected", "Disconnected"}
	if s < 0 || int(s) >= len(names) {
		return fmt.Sprintf("SessionStatus(%d)", int(s))
	}
	return names[s]
}
