package session

import (
	"fmt"

	"github.com/Krajiyah/ble-hrcp/pkg/models"
	"github.com/Krajiyah/ble-hrcp/pkg/util"
)

// CriterionSource decides the target once the discovery snapshot is known
type CriterionSource func([]models.Peripheral) (models.Criterion, error)

// FixedCriterion ignores the snapshot and always answers c
func FixedCriterion(c models.Criterion) CriterionSource {
	return func([]models.Peripheral) (models.Criterion, error) { return c, nil }
}

// Select picks one peripheral out of a discovery snapshot
func Select(peripherals []models.Peripheral, criterion models.Criterion) (models.Peripheral, error) {
	if len(peripherals) == 0 {
		return models.Peripheral{}, models.NewSessionError(models.EmptyDiscoverySet, nil)
	}
	switch criterion.Kind {
	case models.ByAddress:
		for _, p := range peripherals {
			if util.AddrEqualAddr(p.Addr, criterion.Addr) {
				return p, nil
			}
		}
		return models.Peripheral{}, models.NewSessionError(models.NoMatch,
			fmt.Errorf("no discovered device has address %s", criterion.Addr))
	case models.ByIndex:
		if criterion.Index < 0 || criterion.Index >= len(peripherals) {
			return models.Peripheral{}, models.NewSessionError(models.IndexOutOfRange,
				fmt.Errorf("index %d not in [0, %d)", criterion.Index, len(peripherals)))
		}
		return peripherals[criterion.Index], nil
	}
	return models.Peripheral{}, models.NewSessionError(models.InvalidInput,
		fmt.Errorf("unknown criterion kind %d", int(criterion.Kind)))
}
