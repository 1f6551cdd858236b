// Package pgstub provides scripted stand-ins for pgx transactions so
// repositories can be tested without a database.
package pgstub

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/iota-uz/officelife/pkg/constants"
)

type Exec struct {
	SQL  string
	Args []any
}

type Tx struct {
	QueryFunc    func(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRowFunc func(ctx context.Context, sql string, args ...any) pgx.Row
	ExecFunc     func(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)

	mu    sync.Mutex
	execs []Exec
}

// Bind stores s where composables.UseTx looks for the transaction.
func Bind(ctx context.Context, s *Tx) context.Context {
	return context.WithValue(ctx, constants.TxKey, s)
}

func (s *Tx) CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	return 0, errors.New("copy not implemented")
}

func (s *Tx) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults {
	var results pgx.BatchResults
	return results
}

func (s *Tx) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	s.mu.Lock()
	s.execs = append(s.execs, Exec{SQL: sql, Args: arguments})
	s.mu.Unlock()
	if s.ExecFunc == nil {
		return pgconn.NewCommandTag("UPDATE 1"), nil
	}
	return s.ExecFunc(ctx, sql, arguments...)
}

// Execs returns every Exec call in order.
func (s *Tx) Execs() []Exec {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Exec, len(s.execs))
	copy(out, s.execs)
	return out
}

func (s *Tx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	if s.QueryFunc == nil {
		return nil, errors.New("query not implemented")
	}
	return s.QueryFunc(ctx, sql, args...)
}

func (s *Tx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if s.QueryRowFunc == nil {
		return Row{ScanFunc: func(dest ...any) error { return errors.New("query row not implemented") }}
	}
	return s.QueryRowFunc(ctx, sql, args...)
}

type Rows struct {
	Data  [][]any
	idx   int
	Error error
}

func (r *Rows) Next() bool {
	if r.idx >= len(r.Data) {
		return false
	}
	r.idx++
	return true
}

func (r *Rows) Scan(dest ...any) error {
	if r.idx == 0 || r.idx > len(r.Data) {
		return errors.New("no current row to scan")
	}
	return Assign(r.Data[r.idx-1], dest...)
}

func (r *Rows) Values() ([]any, error) {
	if r.idx == 0 || r.idx > len(r.Data) {
		return nil, errors.New("no current row")
	}
	return r.Data[r.idx-1], nil
}

func (r *Rows) RawValues() [][]byte { return nil }
func (r *Rows) Err() error          { return r.Error }
func (r *Rows) Close()              {}
func (r *Rows) CommandTag() pgconn.CommandTag {
	return pgconn.CommandTag{}
}
func (r *Rows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *Rows) Conn() *pgx.Conn                              { return nil }

type Row struct {
	ScanFunc func(dest ...any) error
}

func (r Row) Scan(dest ...any) error {
	if r.ScanFunc == nil {
		return errors.New("scan not implemented")
	}
	return r.ScanFunc(dest...)
}

// ValuesRow scans values into the destinations.
func ValuesRow(values ...any) Row {
	return Row{ScanFunc: func(dest ...any) error { return Assign(values, dest...) }}
}

// ErrRow fails every scan with err.
func ErrRow(err error) Row {
	return Row{ScanFunc: func(...any) error { return err }}
}

// Assign copies row into dest the way pgx would for the types used here.
func Assign(row []any, dest ...any) error {
	if len(dest) != len(row) {
		return fmt.Errorf("destination length %d does not match row length %d", len(dest), len(row))
	}
	for i, target := range dest {
		switch v := target.(type) {
		case *uint:
			*v = row[i].(uint)
		case *uuid.UUID:
			*v = row[i].(uuid.UUID)
		case *string:
			*v = row[i].(string)
		case *time.Time:
			*v = row[i].(time.Time)
		case *json.RawMessage:
			switch val := row[i].(type) {
			case json.RawMessage:
				*v = val
			case []byte:
				*v = json.RawMessage(val)
			case string:
				*v = json.RawMessage(val)
			default:
				return fmt.Errorf("unsupported json source %T", row[i])
			}
		case *[]byte:
			switch val := row[i].(type) {
			case []byte:
				*v = val
			case json.RawMessage:
				*v = []byte(val)
			default:
				return fmt.Errorf("unsupported []byte source %T", row[i])
			}
		default:
			if err := assignReflect(target, row[i]); err != nil {
				return err
			}
		}
	}
	return nil
}

func assignReflect(target, value any) error {
	dv := reflect.ValueOf(target)
	if dv.Kind() != reflect.Pointer || dv.IsNil() {
		return fmt.Errorf("unsupported scan target %T", target)
	}
	dv = dv.Elem()
	if value == nil {
		dv.Set(reflect.Zero(dv.Type()))
		return nil
	}
	sv := reflect.ValueOf(value)
	switch {
	case sv.Type().AssignableTo(dv.Type()):
		dv.Set(sv)
	case dv.Kind() == reflect.Pointer && sv.Type().AssignableTo(dv.Type().Elem()):
		p := reflect.New(dv.Type().Elem())
		p.Elem().Set(sv)
		dv.Set(p)
	case sv.Type().ConvertibleTo(dv.Type()):
		dv.Set(sv.Convert(dv.Type()))
	default:
		return fmt.Errorf("cannot scan %T into %T", value, target)
	}
	return nil
}
