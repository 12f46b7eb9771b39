package models

import (
	"encoding/json"
	"strings"
	"sync"

	"github.com/bradfitz/slice"
	mapset "github.com/deckarep/golang-set"
)

// DiscoverySet accumulates advertisements received during one scan window.
// Addresses outlive Reset in known, so a later window can tell returning
// peripherals from ones heard for the first time.
type DiscoverySet struct {
	data     map[string]Peripheral
	known    mapset.Set
	previous mapset.Set
	mutex    sync.RWMutex
}

// NewDiscoverySet will return newly init struct
func NewDiscoverySet() *DiscoverySet {
	return &DiscoverySet{data: map[string]Peripheral{}, known: mapset.NewSet(), previous: mapset.NewSet()}
}

// NewDiscoverySetFromRaw will return a set holding the given peripherals
func NewDiscoverySetFromRaw(raw []Peripheral) *DiscoverySet {
	ds := NewDiscoverySet()
	for _, p := range raw {
		ds.Set(p)
	}
	return ds
}

// Set records an advertisement and reports whether its address is new to this window.
// A later advertisement refreshes RSSI; an empty name never overwrites a known one.
func (ds *DiscoverySet) Set(p Peripheral) bool {
	p.Addr = strings.ToUpper(p.Addr)
	ds.mutex.Lock()
	defer ds.mutex.Unlock()
	old, ok := ds.data[p.Addr]
	if ok && p.Name == "" {
		p.Name = old.Name
	}
	ds.data[p.Addr] = p
	ds.known.Add(p.Addr)
	return !ok
}

// Reset starts a new window: the current peripherals are dropped, their
// addresses are remembered
func (ds *DiscoverySet) Reset() {
	ds.mutex.Lock()
	defer ds.mutex.Unlock()
	ds.previous = ds.known.Clone()
	ds.data = map[string]Peripheral{}
}

// Returning reports whether addr was heard in a window before the last Reset
func (ds *DiscoverySet) Returning(addr string) bool {
	ds.mutex.RLock()
	defer ds.mutex.RUnlock()
	return ds.previous.Contains(strings.ToUpper(addr))
}

// Get will get a peripheral by address (any casing)
func (ds *DiscoverySet) Get(addr string) (Peripheral, bool) {
	ds.mutex.RLock()
	defer ds.mutex.RUnlock()
	p, ok := ds.data[strings.ToUpper(addr)]
	return p, ok
}

// Contains reports whether addr has been seen in the current window
func (ds *DiscoverySet) Contains(addr string) bool {
	_, ok := ds.Get(addr)
	return ok
}

// Len returns the number of distinct addresses in the current window
func (ds *DiscoverySet) Len() int {
	ds.mutex.RLock()
	defer ds.mutex.RUnlock()
	return len(ds.data)
}

// Snapshot returns the peripherals ordered strongest signal first, ties by address
func (ds *DiscoverySet) Snapshot() []Peripheral {
	ds.mutex.RLock()
	ret := make([]Peripheral, 0, len(ds.data))
	for _, p := range ds.data {
		ret = append(ret, p)
	}
	ds.mutex.RUnlock()
	slice.Sort(ret, func(i, j int) bool {
		if ret[i].RSSI != ret[j].RSSI {
			return ret[i].RSSI > ret[j].RSSI
		}
		return ret[i].Addr < ret[j].Addr
	})
	return ret
}

// String returns json string of data
func (ds *DiscoverySet) String() string {
	b, _ := json.Marshal(ds.Snapshot())
	return string(b)
}
