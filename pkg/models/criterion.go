package models

import (
	"fmt"
	"strconv"
	"strings"
)

// CriterionKind tells how a target is picked out of a discovery snapshot
type CriterionKind int

const (
	// ByAddress matches a hardware address, ignoring case
	ByAddress CriterionKind = iota
	// ByIndex picks a zero-based position in the displayed list
	ByIndex
)

func (k CriterionKind) String() string {
	names := []string{"ByAddress", "ByIndex"}
	if k < 0 || int(k) >= len(names) {
		return fmt.Sprintf("CriterionKind(%d)", int(k))
	}
	return names[k]
}

// Criterion is a one-shot target selection
type Criterion struct {
	Kind  CriterionKind
	Addr  string
	Index int
}

// AddressCriterion selects the peripheral whose address equals addr
func AddressCriterion(addr string) Criterion {
	return Criterion{Kind: ByAddress, Addr: strings.TrimSpace(addr)}
}

// IndexCriterion selects the i-th peripheral of the displayed list
func IndexCriterion(i int) Criterion {
	return Criterion{Kind: ByIndex, Index: i}
}

// ParseIndexCriterion parses a line typed by the user into an index criterion
func ParseIndexCriterion(line string) (Criterion, error) {
	s := strings.TrimSpace(line)
	i, err := strconv.Atoi(s)
	if err != nil {
		return Criterion{}, NewSessionError(InvalidInput, fmt.Errorf("%q is not a device index", s))
	}
	return IndexCriterion(i), nil
}

func (c Criterion) String() string {
	if c.Kind == ByIndex {
		return fmt.Sprintf("index %d", c.Index)
	}
	return fmt.Sprintf("address %s", strings.ToUpper(c.Addr))
}
