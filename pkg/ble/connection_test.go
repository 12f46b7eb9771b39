package ble

import (
	"errors"
	"testing"

	. "github.com/Krajiyah/ble-hrcp/internal"
	"github.com/Krajiyah/ble-hrcp/pkg/models"
	"github.com/Krajiyah/ble-hrcp/pkg/util"
	"github.com/currantlabs/ble"
	"gotest.tools/assert"
)

const (
	batteryServiceUUID = "0000180f-0000-1000-8000-00805f9b34fb"
	batteryLevelUUID   = "00002a19-0000-1000-8000-00805f9b34fb"
	hrMeasurementUUID  = "00002a37-0000-1000-8000-00805f9b34fb"
)

type dummyWrite struct {
	char  *ble.Characteristic
	value []byte
	noRsp bool
}

type dummyGattClient struct {
	name         string
	profile      *ble.Profile
	discoverErr  error
	writeErr     error
	cancelErr    error
	panicOnWrite bool
	writes       []dummyWrite
	cancelled    int
}

func newDummyGattClient(name string) *dummyGattClient {
	return &dummyGattClient{
		name: name,
		profile: GetTestProfile(
			TestService{UUID: batteryServiceUUID, Chars: []string{batteryLevelUUID}},
			TestService{UUID: "180d", Chars: []string{"2a37", "2a39"}},
		),
	}
}

func (c *dummyGattClient) Name() string { return c.name }

func (c *dummyGattClient) DiscoverProfile(force bool) (*ble.Profile, error) {
	if c.discoverErr != nil {
		return nil, c.discoverErr
	}
	return c.profile, nil
}

func (c *dummyGattClient) WriteCharacteristic(char *ble.Characteristic, value []byte, noRsp bool) error {
	if c.panicOnWrite {
		panic(errors.New("hci: connection handle gone"))
	}
	c.writes = append(c.writes, dummyWrite{char, value, noRsp})
	return c.writeErr
}

func (c *dummyGattClient) CancelConnection() error {
	c.cancelled++
	return c.cancelErr
}

func newTestConnection(cln *dummyGattClient) *RealConnection {
	return newRealConnection(models.NewPeripheral(testAddr, cln.name, -50, true), cln)
}

func controlPoint() models.CharacteristicDescriptor {
	return models.CharacteristicDescriptor{ServiceUUID: util.HeartRateServiceUUID, UUID: util.HeartRateControlPointUUID}
}

func TestDiscoverCharacteristics(t *testing.T) {
	c := newTestConnection(newDummyGattClient("HRM"))
	chars, err := c.DiscoverCharacteristics()
	assert.NilError(t, err)
	writable := models.PropWriteNR | models.PropWrite
	assert.DeepEqual(t, chars, []models.CharacteristicDescriptor{
		{ServiceUUID: batteryServiceUUID, UUID: batteryLevelUUID, Properties: writable},
		{ServiceUUID: util.HeartRateServiceUUID, UUID: hrMeasurementUUID, Properties: writable},
		{ServiceUUID: util.HeartRateServiceUUID, UUID: util.HeartRateControlPointUUID, Properties: writable},
	})
}

func TestDiscoverCharacteristicsFailed(t *testing.T) {
	cln := newDummyGattClient("HRM")
	cln.discoverErr = errors.New("att: request timeout")
	_, err := newTestConnection(cln).DiscoverCharacteristics()
	assert.ErrorContains(t, err, "DiscoverProfile issue")
	assert.ErrorContains(t, err, "att: request timeout")
}

func TestWrite(t *testing.T) {
	cln := newDummyGattClient("HRM")
	c := newTestConnection(cln)
	_, err := c.DiscoverCharacteristics()
	assert.NilError(t, err)
	err = c.Write(controlPoint(), util.CommandPayload(), models.WithoutResponse)
	assert.NilError(t, err)
	assert.Equal(t, len(cln.writes), 1)
	w := cln.writes[0]
	assert.Assert(t, w.noRsp)
	assert.DeepEqual(t, w.value, []byte{0x01})
	assert.Assert(t, util.UuidEqualStr(w.char.UUID, util.HeartRateControlPointUUID))

	assert.NilError(t, c.Write(controlPoint(), []byte{0x02}, models.WithResponse))
	assert.Assert(t, !cln.writes[1].noRsp)
}

func TestWriteUndiscovered(t *testing.T) {
	cln := newDummyGattClient("HRM")
	err := newTestConnection(cln).Write(controlPoint(), []byte{0x01}, models.WithoutResponse)
	assert.ErrorContains(t, err, "No such characteristic")
	assert.Equal(t, len(cln.writes), 0)
}

func TestWriteFailed(t *testing.T) {
	cln := newDummyGattClient("HRM")
	cln.writeErr = errors.New("insufficient authentication")
	c := newTestConnection(cln)
	_, err := c.DiscoverCharacteristics()
	assert.NilError(t, err)
	err = c.Write(controlPoint(), []byte{0x01}, models.WithoutResponse)
	assert.ErrorContains(t, err, "WriteCharacteristic issue")
}

func TestWritePanicIsCaught(t *testing.T) {
	cln := newDummyGattClient("HRM")
	cln.panicOnWrite = true
	c := newTestConnection(cln)
	_, err := c.DiscoverCharacteristics()
	assert.NilError(t, err)
	err = c.Write(controlPoint(), []byte{0x01}, models.WithoutResponse)
	assert.ErrorContains(t, err, "connection handle gone")
}

func TestDisconnect(t *testing.T) {
	cln := newDummyGattClient("HRM")
	c := newTestConnection(cln)
	assert.NilError(t, c.Disconnect())
	assert.Equal(t, cln.cancelled, 1)

	cln.cancelErr = errors.New("already disconnected")
	assert.ErrorContains(t, c.Disconnect(), "CancelConnection issue")
}
