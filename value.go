package tablespan

import (
	"database/sql/driver"
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

// plainValue unwraps driver.Valuer (sql.NullString and friends) to the
// value it stands for. Invalid nulls become nil.
func plainValue(v any) any {
	switch x := v.(type) {
	case time.Time, decimal.Decimal:
		return v
	case decimal.NullDecimal:
		if !x.Valid {
			return nil
		}
		return x.Decimal
	case driver.Valuer:
		plain, err := x.Value()
		if err != nil {
			return nil
		}
		return plain
	}
	return v
}

// formatValue renders v for the text based formats. Floats are printed
// with decimals digits, or as short as possible when decimals < 0.
func formatValue(v any, decimals int) string {
	switch v := plainValue(v).(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case int8:
		return strconv.FormatInt(int64(v), 10)
	case int16:
		return strconv.FormatInt(int64(v), 10)
	case int32:
		return strconv.FormatInt(int64(v), 10)
	case int64:
		return strconv.FormatInt(v, 10)
	case uint:
		return strconv.FormatUint(uint64(v), 10)
	case uint8:
		return strconv.FormatUint(uint64(v), 10)
	case uint16:
		return strconv.FormatUint(uint64(v), 10)
	case uint32:
		return strconv.FormatUint(uint64(v), 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', decimals, 32)
	case float64:
		return strconv.FormatFloat(v, 'f', decimals, 64)
	case decimal.Decimal:
		if decimals < 0 {
			return v.String()
		}
		return v.StringFixed(int32(decimals))
	case time.Time:
		return v.Format(dateLayout)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

func isNumeric(v any) bool {
	switch plainValue(v).(type) {
	case int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64, decimal.Decimal:
		return true
	}
	return false
}

func isFloat(v any) bool {
	switch plainValue(v).(type) {
	case float32, float64, decimal.Decimal:
		return true
	}
	return false
}

// numericColumn reports whether every non-nil value in col is a number and
// at least one value is present.
func numericColumn(col []any) bool {
	seen := false
	for _, v := range col {
		if plainValue(v) == nil {
			continue
		}
		if !isNumeric(v) {
			return false
		}
		seen = true
	}
	return seen
}
