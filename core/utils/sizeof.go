package utils

import (
	"fmt"
	"reflect"
)

// Per-container structural overheads used by EstimateSize. The numbers
// are deliberately coarse; cache accounting needs a stable, cheap
// estimate, not an exact heap profile.
const (
	sliceOverhead  = 24
	mapOverhead    = 48
	structOverhead = 16
	scalarSize     = 8
)

// EstimateSize returns an approximate in-memory byte size for val using
// explicit type switching for the common cases and reflection for
// composite values. Numbers count as 8 bytes, strings as 2 bytes per
// character, and slices, maps and structs as a structural overhead plus
// the recursive estimate of their elements.
func EstimateSize(val any) int {
	switch v := val.(type) {
	case nil:
		return 0
	case bool:
		return 1
	case int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return scalarSize
	case string:
		return 2 * len(v)
	case []byte:
		return sliceOverhead + len(v)
	}
	return estimateReflect(reflect.ValueOf(val))
}

func estimateReflect(v reflect.Value) int {
	switch v.Kind() {
	case reflect.Invalid:
		return 0
	case reflect.Bool:
		return 1
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		return scalarSize
	case reflect.String:
		return 2 * v.Len()
	case reflect.Slice, reflect.Array:
		size := sliceOverhead
		for i := 0; i < v.Len(); i++ {
			size += estimateReflect(v.Index(i))
		}
		return size
	case reflect.Map:
		size := mapOverhead
		iter := v.MapRange()
		for iter.Next() {
			size += estimateReflect(iter.Key())
			size += estimateReflect(iter.Value())
		}
		return size
	case reflect.Struct:
		size := structOverhead
		for i := 0; i < v.NumField(); i++ {
			size += estimateReflect(v.Field(i))
		}
		return size
	case reflect.Ptr, reflect.Interface:
		if v.IsNil() {
			return scalarSize
		}
		return scalarSize + estimateReflect(v.Elem())
	default:
		// Channels, funcs and the like carry no cacheable payload.
		return scalarSize
	}
}

// FormatBytes renders a byte count in the largest sensible unit.
func FormatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(n)/float64(div), "KMGTPE"[exp])
}
