package session

import (
	"bufio"
	"fmt"
	"io"

	"github.com/Krajiyah/ble-hrcp/pkg/models"
	"github.com/pkg/errors"
)

// PromptIndex asks on w for a list index and reads one line from r
func PromptIndex(r io.Reader, w io.Writer) CriterionSource {
	reader := bufio.NewReader(r)
	return func(peripherals []models.Peripheral) (models.Criterion, error) {
		fmt.Fprintf(w, "Enter the index of the device to connect to [0-%d]: ", len(peripherals)-1)
		line, err := reader.ReadString('\n')
		if err != nil && (err != io.EOF || line == "") {
			return models.Criterion{}, models.NewSessionError(models.InvalidInput, errors.Wrap(err, "reading selection"))
		}
		return models.ParseIndexCriterion(line)
	}
}
