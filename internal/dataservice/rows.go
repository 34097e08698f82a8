package dataservice

import "time"

// Cell accessors tolerant of the numeric types different backends return
// (the memory store keeps what was inserted, Postgres may hand back int32
// or int64 for integer columns).

func (r Row) String(column string) string {
	s, _ := r[column].(string)
	return s
}

func (r Row) Float(column string) float64 {
	f, _ := toFloat(r[column])
	return f
}

func (r Row) Int(column string) int {
	f, _ := toFloat(r[column])
	return int(f)
}

func (r Row) Bool(column string) bool {
	b, _ := r[column].(bool)
	return b
}

func (r Row) Time(column string) time.Time {
	t, _ := r[column].(time.Time)
	return t
}
