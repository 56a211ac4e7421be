package meta

import "fmt"

// ConfigRangeError reports an enum or index that does not fit a table or
// settings dimension. It indicates a data or build problem and is fatal at
// startup.
type ConfigRangeError struct {
	Table string
	Index int
	Limit int
}

func (e *ConfigRangeError) Error() string {
	return fmt.Sprintf("%s: index %d out of range [0, %d)", e.Table, e.Index, e.Limit)
}

// CheckRange returns a ConfigRangeError when index is outside [0, limit).
func CheckRange(table string, index, limit int) error {
	if index < 0 || index >= limit {
		return &ConfigRangeError{Table: table, Index: index, Limit: limit}
	}
	return nil
}

// ValueRangeError reports a real-valued setting outside [Min, Max].
type ValueRangeError struct {
	Field string
	Value float64
	Min   float64
	Max   float64
}

func (e *ValueRangeError) Error() string {
	return fmt.Sprintf("%s: %g out of range [%g, %g]", e.Field, e.Value, e.Min, e.Max)
}

// CheckValue returns a ValueRangeError when value is NaN or outside [lo, hi].
func CheckValue(field string, value, lo, hi float64) error {
	if !(value >= lo && value <= hi) {
		return &ValueRangeError{Field: field, Value: value, Min: lo, Max: hi}
	}
	return nil
}
