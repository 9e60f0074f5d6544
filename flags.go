package jetimage

import (
	"fmt"
	"strconv"
	"strings"
)

// FloatArrayFlags is a repeatable flag holding float values. Each
// occurrence may carry a comma-separated list. The first occurrence on the
// command line replaces the default Array.
type FloatArrayFlags struct {
	Array   []float64
	beenSet bool
}

func (f *FloatArrayFlags) Set(valueStr string) error {
	values, err := splitValues(valueStr, func(s string) (float64, error) {
		return strconv.ParseFloat(s, 64)
	})
	if err != nil {
		return err
	}

	if !f.beenSet {
		f.beenSet = true
		f.Array = nil
	}
	f.Array = append(f.Array, values...)
	return nil
}

func (f *FloatArrayFlags) String() string {
	return fmt.Sprint(f.Array)
}

// IntArrayFlags is the integer counterpart of FloatArrayFlags.
type IntArrayFlags struct {
	Array   []int
	beenSet bool
}

func (f *IntArrayFlags) Set(valueStr string) error {
	values, err := splitValues(valueStr, strconv.Atoi)
	if err != nil {
		return err
	}

	if !f.beenSet {
		f.beenSet = true
		f.Array = nil
	}
	f.Array = append(f.Array, values...)
	return nil
}

func (f *IntArrayFlags) String() string {
	return fmt.Sprint(f.Array)
}

func splitValues[T any](valueStr string, parse func(string) (T, error)) ([]T, error) {
	var values []T
	for _, field := range strings.Split(valueStr, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		v, err := parse(field)
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	if len(values) == 0 {
		return nil, fmt.Errorf("no value in %q", valueStr)
	}
	return values, nil
}
