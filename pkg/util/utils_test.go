package util

import (
	"testing"

	"github.com/currantlabs/ble"
	"gotest.tools/assert"
)

func TestAddrEqualAddr(t *testing.T) {
	assert.Assert(t, AddrEqualAddr("aa:bb:cc:dd:ee:ff", "AA:BB:CC:DD:EE:FF"))
	assert.Assert(t, !AddrEqualAddr("aa:bb:cc:dd:ee:ff", "AA:BB:CC:DD:EE:00"))
}

func TestNormalizeUUID(t *testing.T) {
	for _, in := range []string{
		"180d",
		"180D",
		"0000180d",
		"0000180D-0000-1000-8000-00805F9B34FB",
		"0000180d00001000800000805f9b34fb",
	} {
		out, err := NormalizeUUID(in)
		assert.NilError(t, err, in)
		assert.Equal(t, out, HeartRateServiceUUID, in)
	}
	_, err := NormalizeUUID("not-a-uuid")
	assert.ErrorContains(t, err, "invalid uuid")
}

func TestUuidEqualStr(t *testing.T) {
	short := ble.UUID16(0x2a39)
	assert.Assert(t, UuidEqualStr(short, HeartRateControlPointUUID))
	long := ble.MustParse(HeartRateServiceUUID)
	assert.Assert(t, UuidEqualStr(long, "180d"))
	assert.Assert(t, !UuidEqualStr(long, HeartRateControlPointUUID))
	assert.Equal(t, UuidToStr(short), HeartRateControlPointUUID)
}

func TestCommandPayloadIsCopy(t *testing.T) {
	p := CommandPayload()
	p[0] = 0xFF
	assert.DeepEqual(t, CommandPayload(), []byte{0x01})
}
