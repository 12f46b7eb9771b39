package session

import (
	"strings"
	"testing"

	"github.com/Krajiyah/ble-hrcp/pkg/models"
	"gotest.tools/assert"
)

var threePeripherals = []models.Peripheral{
	models.NewPeripheral("11:11:11:11:11:11", "one", -40, true),
	models.NewPeripheral("22:22:22:22:22:22", "", -50, true),
	models.NewPeripheral("33:33:33:33:33:33", "three", -60, true),
}

func TestSelectByAddressAnyCasing(t *testing.T) {
	hrm := []models.Peripheral{models.NewPeripheral("AA:BB:CC:DD:EE:FF", "HRM", -50, true)}
	for _, addr := range []string{"aa:bb:cc:dd:ee:ff", "AA:BB:CC:DD:EE:FF", "aA:Bb:cC:Dd:eE:fF"} {
		p, err := Select(hrm, models.AddressCriterion(addr))
		assert.NilError(t, err, addr)
		assert.DeepEqual(t, p, hrm[0])
	}
}

func TestSelectByAddressNoMatch(t *testing.T) {
	_, err := Select(threePeripherals, models.AddressCriterion("44:44:44:44:44:44"))
	assert.Equal(t, models.KindOf(err), models.NoMatch)
	assert.ErrorContains(t, err, "44:44:44:44:44:44")
}

func TestSelectByIndex(t *testing.T) {
	for i := -2; i < 6; i++ {
		p, err := Select(threePeripherals, models.IndexCriterion(i))
		if i >= 0 && i < len(threePeripherals) {
			assert.NilError(t, err)
			assert.DeepEqual(t, p, threePeripherals[i])
		} else {
			assert.Equal(t, models.KindOf(err), models.IndexOutOfRange, i)
		}
	}
}

func TestSelectEmpty(t *testing.T) {
	for _, c := range []models.Criterion{
		models.AddressCriterion("AA:BB:CC:DD:EE:FF"),
		models.IndexCriterion(0),
		models.IndexCriterion(-1),
	} {
		_, err := Select(nil, c)
		assert.Equal(t, models.KindOf(err), models.EmptyDiscoverySet, c.String())
		_, err = Select([]models.Peripheral{}, c)
		assert.Equal(t, models.KindOf(err), models.EmptyDiscoverySet, c.String())
	}
}

func TestSelectUnknownKind(t *testing.T) {
	_, err := Select(threePeripherals, models.Criterion{Kind: models.CriterionKind(7)})
	assert.Equal(t, models.KindOf(err), models.InvalidInput)
}

func TestPromptIndex(t *testing.T) {
	out := &strings.Builder{}
	source := PromptIndex(strings.NewReader("1\nfoo\n"), out)

	c, err := source(threePeripherals)
	assert.NilError(t, err)
	assert.DeepEqual(t, c, models.IndexCriterion(1))
	assert.Assert(t, strings.Contains(out.String(), "[0-2]"))

	_, err = source(threePeripherals)
	assert.Equal(t, models.KindOf(err), models.InvalidInput)

	_, err = source(threePeripherals)
	assert.Equal(t, models.KindOf(err), models.InvalidInput)
}

func TestPromptIndexWithoutNewline(t *testing.T) {
	c, err := PromptIndex(strings.NewReader("2"), &strings.Builder{})(threePeripherals)
	assert.NilError(t, err)
	assert.DeepEqual(t, c, models.IndexCriterion(2))
}
