package database

import (
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

// Row is one result row keyed by column name.
type Row map[string]any

// Result describes a write. InsertID is the first column of the first
// returned row, so it is only set for statements with RETURNING.
type Result struct {
	RowsAffected int64
	InsertID     int64
}

// ResultSet is a fully read statement result.
type ResultSet struct {
	Columns      []string
	Rows         []Row
	RowsAffected int64
}

func (rs *ResultSet) result() Result {
	res := Result{RowsAffected: rs.RowsAffected}
	if len(rs.Rows) > 0 && len(rs.Columns) > 0 {
		if id, ok := toInt64(rs.Rows[0][rs.Columns[0]]); ok {
			res.InsertID = id
		}
	}
	return res
}

func (r Row) Int64(col string) int64 {
	v, _ := toInt64(r[col])
	return v
}

// OptionalInt64 returns nil for NULL.
func (r Row) OptionalInt64(col string) *int64 {
	v, ok := toInt64(r[col])
	if !ok {
		return nil
	}
	return &v
}

func (r Row) String(col string) string {
	switch v := r[col].(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	default:
		return fmt.Sprint(v)
	}
}

func (r Row) Decimal(col string) decimal.Decimal {
	d, _ := r[col].(decimal.Decimal)
	return d
}

func (r Row) OptionalDecimal(col string) *decimal.Decimal {
	d, ok := r[col].(decimal.Decimal)
	if !ok {
		return nil
	}
	return &d
}

func (r Row) Bool(col string) bool {
	v, _ := r[col].(bool)
	return v
}

func (r Row) Time(col string) *time.Time {
	v, ok := r[col].(time.Time)
	if !ok {
		return nil
	}
	return &v
}

func toInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case int32:
		return int64(n), true
	case int16:
		return int64(n), true
	case int:
		return int64(n), true
	case decimal.Decimal:
		return n.IntPart(), true
	}
	return 0, false
}

// normalizeValue turns driver-specific values into types that encode cleanly
// to JSON: numerics become decimals, dates become YYYY-MM-DD and times HH:MM:SS.
func normalizeValue(oid uint32, v any) any {
	switch val := v.(type) {
	case pgtype.Numeric:
		if !val.Valid {
			return nil
		}
		raw, err := val.Value()
		if err != nil {
			return nil
		}
		s, _ := raw.(string)
		d, err := decimal.NewFromString(s)
		if err != nil {
			return s
		}
		return d
	case pgtype.Time:
		if !val.Valid {
			return nil
		}
		secs := val.Microseconds / 1_000_000
		return fmt.Sprintf("%02d:%02d:%02d", secs/3600, (secs%3600)/60, secs%60)
	case pgtype.Date:
		if !val.Valid || val.InfinityModifier != pgtype.Finite {
			return nil
		}
		return val.Time.Format("2006-01-02")
	case time.Time:
		if oid == pgtype.DateOID {
			return val.Format("2006-01-02")
		}
		return val
	}
	return v
}
