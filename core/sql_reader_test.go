package core

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"io"
	"reflect"
	"strings"
	"testing"
)

// stubDriver serves one fixed result set for any query.
type stubDriver struct{}

type stubConn struct{}

type stubRows struct {
	cols []string
	data [][]driver.Value
	pos  int
}

var lastStubQuery string

func (stubDriver) Open(string) (driver.Conn, error) { return stubConn{}, nil }

func (stubConn) Prepare(string) (driver.Stmt, error) { return nil, driver.ErrSkip }
func (stubConn) Close() error                        { return nil }
func (stubConn) Begin() (driver.Tx, error)           { return nil, driver.ErrSkip }

func (stubConn) QueryContext(ctx context.Context, query string, args []driver.NamedValue) (driver.Rows, error) {
	lastStubQuery = query
	return &stubRows{
		cols: []string{"Transportadora", "filial1/cubagem", "peso"},
		data: [][]driver.Value{
			{"Trans Sul", []byte("13000-Campinas/SP"), int64(12)},
			{"Alfa Log", nil, 2.5},
		},
	}, nil
}

func (r *stubRows) Columns() []string { return r.cols }
func (r *stubRows) Close() error      { return nil }

func (r *stubRows) Next(dest []driver.Value) error {
	if r.pos >= len(r.data) {
		return io.EOF
	}
	copy(dest, r.data[r.pos])
	r.pos++
	return nil
}

func init() {
	sql.Register("rotagen-stub", stubDriver{})
}

func TestSQLTableReader_Read(t *testing.T) {
	db, err := sql.Open("rotagen-stub", "")
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	tbl, err := NewSQLTableReader(db, "rotas").Read(context.Background())
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if !strings.Contains(lastStubQuery, "FROM rotas") {
		t.Errorf("query = %q", lastStubQuery)
	}
	if !reflect.DeepEqual(tbl.Header, []string{"transportadora", "filial1/cubagem", "peso"}) {
		t.Errorf("header = %q", tbl.Header)
	}
	want := [][]string{
		{"Trans Sul", "13000-Campinas/SP", "12"},
		{"Alfa Log", "", "2.5"},
	}
	if !reflect.DeepEqual(tbl.Rows, want) {
		t.Errorf("rows = %q, want %q", tbl.Rows, want)
	}
}
