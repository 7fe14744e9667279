package holdersync

import (
	"fmt"
	"strconv"
)

func parseAmount(s string) (float64, error) {
	amount, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("bad balance %q: %w", s, err)
	}
	return amount, nil
}
