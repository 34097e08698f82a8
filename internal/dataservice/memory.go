package dataservice

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryStore is a concurrency-safe in-memory implementation of Store.
// Tables are created lazily on first insert.
type MemoryStore struct {
	mu     sync.RWMutex
	tables map[string][]Row
}

// NewMemoryStore creates a new in-memory data service instance
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		tables: make(map[string][]Row),
	}
}

func (s *MemoryStore) Select(_ context.Context, table string, filter Filter, order *Order) ([]Row, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []Row
	for _, row := range s.tables[table] {
		if matches(row, filter) {
			result = append(result, copyRow(row))
		}
	}

	if order != nil {
		column, descending := order.Column, order.Descending
		sort.SliceStable(result, func(i, j int) bool {
			if descending {
				return lessValue(result[j][column], result[i][column])
			}
			return lessValue(result[i][column], result[j][column])
		})
	}

	return result, nil
}

func (s *MemoryStore) Insert(_ context.Context, table string, row Row) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tables[table] = append(s.tables[table], copyRow(row))
	return nil
}

func (s *MemoryStore) Update(_ context.Context, table string, filter Filter, patch Row) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var affected int64
	for _, row := range s.tables[table] {
		if matches(row, filter) {
			for column, value := range patch {
				row[column] = value
			}
			affected++
		}
	}
	return affected, nil
}

func (s *MemoryStore) Delete(_ context.Context, table string, filter Filter) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows := s.tables[table]
	kept := rows[:0]
	var affected int64
	for _, row := range rows {
		if matches(row, filter) {
			affected++
			continue
		}
		kept = append(kept, row)
	}
	s.tables[table] = kept
	return affected, nil
}

func matches(row Row, filter Filter) bool {
	for column, want := range filter {
		if !equalValue(row[column], want) {
			return false
		}
	}
	return true
}

func copyRow(row Row) Row {
	copied := make(Row, len(row))
	for column, value := range row {
		copied[column] = value
	}
	return copied
}

// equalValue compares two cell values, normalizing numeric types so that
// an int filter matches a float64 cell and vice versa
func equalValue(a, b any) bool {
	if af, aok := toFloat(a); aok {
		bf, bok := toFloat(b)
		return bok && af == bf
	}
	if at, aok := a.(time.Time); aok {
		bt, bok := b.(time.Time)
		return bok && at.Equal(bt)
	}
	return a == b
}

func lessValue(a, b any) bool {
	if af, aok := toFloat(a); aok {
		bf, bok := toFloat(b)
		return bok && af < bf
	}
	switch av := a.(type) {
	case string:
		bv, ok := b.(string)
		return ok && av < bv
	case time.Time:
		bv, ok := b.(time.Time)
		return ok && av.Before(bv)
	}
	return false
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}
