package models

import (
	"sync"
	"testing"

	"gotest.tools/assert"
)

func TestSetter(t *testing.T) {
	ds := NewDiscoverySet()
	assert.Assert(t, ds.Set(NewPeripheral("aa:bb:cc:dd:ee:ff", "HRM", -60, true)))
	assert.Assert(t, !ds.Set(NewPeripheral("AA:BB:CC:DD:EE:FF", "", -40, true)))
	p, ok := ds.Get("aa:bb:cc:dd:ee:ff")
	assert.Assert(t, ok)
	assert.Equal(t, p.Name, "HRM")
	assert.Equal(t, p.RSSI, -40)
	assert.Equal(t, ds.Len(), 1)
	assert.Assert(t, ds.Contains("Aa:Bb:Cc:Dd:Ee:Ff"))
}

func TestSnapshotOrder(t *testing.T) {
	ds := NewDiscoverySetFromRaw([]Peripheral{
		{Addr: "33:00:00:00:00:00", RSSI: -80},
		{Addr: "11:00:00:00:00:00", RSSI: -50},
		{Addr: "22:00:00:00:00:00", RSSI: -80},
	})
	var addrs []string
	for _, p := range ds.Snapshot() {
		addrs = append(addrs, p.Addr)
	}
	assert.DeepEqual(t, addrs, []string{"11:00:00:00:00:00", "22:00:00:00:00:00", "33:00:00:00:00:00"})
}

func TestConcurrentSet(t *testing.T) {
	ds := NewDiscoverySet()
	wg := sync.WaitGroup{}
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ds.Set(Peripheral{Addr: "aa", RSSI: -i})
		}(i)
	}
	wg.Wait()
	assert.Equal(t, ds.Len(), 1)
	assert.Equal(t, len(ds.Snapshot()), 1)
}

func TestResetKeepsHistory(t *testing.T) {
	ds := NewDiscoverySet()
	ds.Set(NewPeripheral("aa:00:00:00:00:01", "HRM", -60, true))
	assert.Assert(t, !ds.Returning("AA:00:00:00:00:01"))

	ds.Reset()
	assert.Equal(t, ds.Len(), 0)
	assert.Assert(t, !ds.Contains("AA:00:00:00:00:01"))
	assert.Assert(t, ds.Returning("aa:00:00:00:00:01"))

	assert.Assert(t, ds.Set(NewPeripheral("AA:00:00:00:00:01", "", -70, true)))
	assert.Assert(t, ds.Set(NewPeripheral("AA:00:00:00:00:02", "", -70, true)))
	assert.Assert(t, !ds.Returning("AA:00:00:00:00:02"))
	p, _ := ds.Get("AA:00:00:00:00:01")
	assert.Equal(t, p.Name, "")

	ds.Reset()
	assert.Assert(t, ds.Returning("AA:00:00:00:00:02"))
}

func TestEmptySnapshot(t *testing.T) {
	assert.Equal(t, len(NewDiscoverySet().Snapshot()), 0)
	assert.Equal(t, NewDiscoverySet().String(), "[]")
}
