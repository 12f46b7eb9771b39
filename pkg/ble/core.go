package ble

import (
	"context"

	"github.com/Krajiyah/ble-hrcp/pkg/util"
	"github.com/currantlabs/ble"
	"github.com/pkg/errors"
)

type coreMethods interface {
	SetDefaultDevice() error
	Scan(context.Context, ble.AdvHandler, ble.AdvFilter) error
	Dial(context.Context, ble.Addr) (gattClient, error)
}

// gattClient is the part of ble.Client a session needs
type gattClient interface {
	Name() string
	DiscoverProfile(force bool) (*ble.Profile, error)
	WriteCharacteristic(c *ble.Characteristic, value []byte, noRsp bool) error
	CancelConnection() error
}

type realCoreMethods struct {
	newDevice func() (ble.Device, error)
	device    ble.Device
}

func (bc *realCoreMethods) SetDefaultDevice() error {
	return util.CatchErrs(func() error {
		device, err := bc.newDevice()
		if err != nil {
			return errors.Wrap(err, "newDevice issue")
		}
		ble.SetDefaultDevice(device)
		bc.device = device
		return nil
	})
}

func (bc *realCoreMethods) Scan(ctx context.Context, h ble.AdvHandler, f ble.AdvFilter) error {
	return util.CatchErrs(func() error {
		return ble.Scan(ctx, true, h, f)
	})
}

func (bc *realCoreMethods) Dial(ctx context.Context, addr ble.Addr) (gattClient, error) {
	if bc.device == nil {
		return nil, errors.New("no default device")
	}
	var client gattClient
	err := util.CatchErrs(func() error {
		c, e := bc.device.Dial(ctx, addr)
		if e != nil {
			return e
		}
		client = c
		return nil
	})
	return client, err
}
