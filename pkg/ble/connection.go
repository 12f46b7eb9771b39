package ble

import (
	"fmt"
	"sync"

	"github.com/Krajiyah/ble-hrcp/pkg/models"
	"github.com/Krajiyah/ble-hrcp/pkg/util"
	"github.com/currantlabs/ble"
	"github.com/pkg/errors"
)

type discoveredChar struct {
	desc models.CharacteristicDescriptor
	char *ble.Characteristic
}

// RealConnection is a Connection over a currantlabs GATT client
type RealConnection struct {
	peripheral      models.Peripheral
	cln             gattClient
	characteristics []discoveredChar
	mutex           sync.Mutex
}

func newRealConnection(p models.Peripheral, cln gattClient) *RealConnection {
	return &RealConnection{peripheral: p, cln: cln}
}

func (c *RealConnection) Peripheral() models.Peripheral { return c.peripheral }

// DiscoverCharacteristics walks the full profile; order follows the stack's handle order
func (c *RealConnection) DiscoverCharacteristics() ([]models.CharacteristicDescriptor, error) {
	var p *ble.Profile
	err := util.CatchErrs(func() error {
		var e error
		p, e = c.cln.DiscoverProfile(true)
		return e
	})
	if err != nil {
		return nil, errors.Wrap(err, "DiscoverProfile issue")
	}
	if p == nil {
		return nil, errors.New("DiscoverProfile returned no profile")
	}
	found := []discoveredChar{}
	for _, s := range p.Services {
		svc := util.UuidToStr(s.UUID)
		for _, char := range s.Characteristics {
			found = append(found, discoveredChar{
				desc: models.CharacteristicDescriptor{
					ServiceUUID: svc,
					UUID:        util.UuidToStr(char.UUID),
					Properties:  models.Property(char.Property),
				},
				char: char,
			})
		}
	}
	c.mutex.Lock()
	c.characteristics = found
	c.mutex.Unlock()
	ret := make([]models.CharacteristicDescriptor, len(found))
	for i, f := range found {
		ret[i] = f.desc
	}
	return ret, nil
}

func (c *RealConnection) getCharacteristic(desc models.CharacteristicDescriptor) (*ble.Characteristic, error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	for _, f := range c.characteristics {
		if f.desc.Matches(desc.ServiceUUID, desc.UUID) {
			return f.char, nil
		}
	}
	return nil, fmt.Errorf("No such characteristic (%s) in service (%s) discovered on %s", desc.UUID, desc.ServiceUUID, c.peripheral.Addr)
}

func (c *RealConnection) Write(desc models.CharacteristicDescriptor, data []byte, mode models.AckMode) error {
	char, err := c.getCharacteristic(desc)
	if err != nil {
		return err
	}
	err = util.CatchErrs(func() error {
		return c.cln.WriteCharacteristic(char, data, mode.NoResponse())
	})
	return errors.Wrap(err, "WriteCharacteristic issue")
}

func (c *RealConnection) Disconnect() error {
	err := util.CatchErrs(c.cln.CancelConnection)
	return errors.Wrap(err, "CancelConnection issue")
}
