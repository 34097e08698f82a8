package dataservice

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore is a Store backed by a Postgres database through pgx.
// Table and column names are sanitized as identifiers; values travel as
// bind parameters.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresPool connects a pgx pool and verifies it with a ping
func NewPostgresPool(ctx context.Context, url string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to create pgx pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}
	return pool, nil
}

// NewPostgresStore creates a PostgresStore over an existing pool
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) Select(ctx context.Context, table string, filter Filter, order *Order) ([]Row, error) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "SELECT * FROM %s", pgx.Identifier{table}.Sanitize())

	where, args := buildWhere(filter, 1)
	sb.WriteString(where)

	if order != nil {
		direction := "ASC"
		if order.Descending {
			direction = "DESC"
		}
		fmt.Fprintf(&sb, " ORDER BY %s %s", pgx.Identifier{order.Column}.Sanitize(), direction)
	}

	rows, err := s.pool.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("select from %s: %w", table, err)
	}
	defer rows.Close()

	fields := rows.FieldDescriptions()
	var result []Row
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, fmt.Errorf("scan row from %s: %w", table, err)
		}
		row := make(Row, len(fields))
		for i, field := range fields {
			row[field.Name] = values[i]
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows from %s: %w", table, err)
	}

	return result, nil
}

func (s *PostgresStore) Insert(ctx context.Context, table string, row Row) error {
	columns := sortedColumns(row)

	placeholders := make([]string, 0, len(columns))
	quoted := make([]string, 0, len(columns))
	args := make([]any, 0, len(columns))
	for i, column := range columns {
		quoted = append(quoted, pgx.Identifier{column}.Sanitize())
		placeholders = append(placeholders, fmt.Sprintf("$%d", i+1))
		args = append(args, row[column])
	}

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		pgx.Identifier{table}.Sanitize(),
		strings.Join(quoted, ", "),
		strings.Join(placeholders, ", "))

	if _, err := s.pool.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("insert into %s: %w", table, err)
	}
	return nil
}

func (s *PostgresStore) Update(ctx context.Context, table string, filter Filter, patch Row) (int64, error) {
	columns := sortedColumns(patch)

	assignments := make([]string, 0, len(columns))
	args := make([]any, 0, len(columns)+len(filter))
	for i, column := range columns {
		assignments = append(assignments, fmt.Sprintf("%s = $%d", pgx.Identifier{column}.Sanitize(), i+1))
		args = append(args, patch[column])
	}

	where, whereArgs := buildWhere(filter, len(columns)+1)
	args = append(args, whereArgs...)

	query := fmt.Sprintf("UPDATE %s SET %s%s",
		pgx.Identifier{table}.Sanitize(), strings.Join(assignments, ", "), where)

	tag, err := s.pool.Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("update %s: %w", table, err)
	}
	return tag.RowsAffected(), nil
}

func (s *PostgresStore) Delete(ctx context.Context, table string, filter Filter) (int64, error) {
	where, args := buildWhere(filter, 1)
	query := fmt.Sprintf("DELETE FROM %s%s", pgx.Identifier{table}.Sanitize(), where)

	tag, err := s.pool.Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("delete from %s: %w", table, err)
	}
	return tag.RowsAffected(), nil
}

// buildWhere renders an equality WHERE clause with bind parameters
// starting at the given index. Columns are sorted for a stable query text.
func buildWhere(filter Filter, firstArg int) (string, []any) {
	if len(filter) == 0 {
		return "", nil
	}

	columns := make([]string, 0, len(filter))
	for column := range filter {
		columns = append(columns, column)
	}
	sort.Strings(columns)

	conditions := make([]string, 0, len(columns))
	args := make([]any, 0, len(columns))
	for i, column := range columns {
		conditions = append(conditions, fmt.Sprintf("%s = $%d", pgx.Identifier{column}.Sanitize(), firstArg+i))
		args = append(args, filter[column])
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}

func sortedColumns(row Row) []string {
	columns := make([]string, 0, len(row))
	for column := range row {
		columns = append(columns, column)
	}
	sort.Strings(columns)
	return columns
}
