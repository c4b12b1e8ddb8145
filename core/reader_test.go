package core

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/xuri/excelize/v2"
)

func TestXlsxTableReader_Read(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input.xlsx")
	f := excelize.NewFile()
	mustDo(t, f.SetSheetRow("Sheet1", "A1", &[]interface{}{" Transportadora ", "FILIAL1/CUBAGEM"}))
	mustDo(t, f.SetSheetRow("Sheet1", "A2", &[]interface{}{"Trans Sul", "13000-Campinas/SP"}))
	mustDo(t, f.SetSheetRow("Sheet1", "A3", &[]interface{}{"Alfa Log"}))
	mustDo(t, f.SaveAs(path))
	f.Close()

	tbl, err := NewXlsxTableReader(path, "").Read(context.Background())
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if !reflect.DeepEqual(tbl.Header, []string{"transportadora", "filial1/cubagem"}) {
		t.Errorf("header = %q", tbl.Header)
	}
	if tbl.RowCount() != 2 || tbl.Value(1, 0) != "Alfa Log" || tbl.Value(1, 1) != "" {
		t.Errorf("rows = %q", tbl.Rows)
	}

	if _, err := NewXlsxTableReader(path, "Missing").Read(context.Background()); err == nil {
		t.Error("reading a missing sheet should fail")
	}
}

func TestCsvTableReader_Read(t *testing.T) {
	tests := []struct {
		name     string
		content  []byte
		comma    string
		encoding string
		want     [][]string
	}{
		{
			name:    "utf-8 with bom",
			content: []byte("\xef\xbb\xbfTransportadora,CEP\nTrans Sul,13000-000\n"),
			comma:   ",",
			want:    [][]string{{"Trans Sul", "13000-000"}},
		},
		{
			name:     "latin1 semicolon",
			content:  []byte("Transportadora;Filial1/Cubagem\nJos\xe9 Log;70000-Bras\xedlia/DF\n"),
			comma:    ";",
			encoding: "iso-8859-1",
			want:     [][]string{{"José Log", "70000-Brasília/DF"}},
		},
		{
			name:     "windows-1252 ragged",
			content:  []byte("Transportadora;CEP\nA\x87\xfa;1;extra\n"),
			comma:    ";",
			encoding: "windows-1252",
			want:     [][]string{{"A‡ú", "1", "extra"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "input.csv")
			mustDo(t, os.WriteFile(path, tt.content, 0644))

			tbl, err := NewCsvTableReader(path, tt.comma, tt.encoding).Read(context.Background())
			if err != nil {
				t.Fatalf("Read: %v", err)
			}
			if tbl.Header[0] != "transportadora" {
				t.Errorf("header = %q", tbl.Header)
			}
			if !reflect.DeepEqual(tbl.Rows, tt.want) {
				t.Errorf("rows = %q, want %q", tbl.Rows, tt.want)
			}
		})
	}

	if _, err := NewCsvTableReader("x.csv", ",", "ebcdic").Read(context.Background()); err == nil {
		t.Error("unknown encoding should fail")
	}
}

func TestXlsTableReader_MissingFile(t *testing.T) {
	_, err := NewXlsTableReader(filepath.Join(t.TempDir(), "none.xls")).Read(context.Background())
	if err == nil {
		t.Error("expected an error for a missing file")
	}
}

type MockDynamoDBClient struct {
	ScanFunc func(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
}

func (m *MockDynamoDBClient) Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error) {
	return m.ScanFunc(ctx, params, optFns...)
}

func TestDynamoDBTableReader_Read(t *testing.T) {
	calls := 0
	client := &MockDynamoDBClient{
		ScanFunc: func(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error) {
			if *params.TableName != "rotas" {
				t.Errorf("TableName = %v, want rotas", *params.TableName)
			}
			calls++
			if params.ExclusiveStartKey == nil {
				return &dynamodb.ScanOutput{
					Items: []map[string]types.AttributeValue{{
						"transportadora":  &types.AttributeValueMemberS{Value: "Trans Sul"},
						"filial1/cubagem": &types.AttributeValueMemberS{Value: "13000-Campinas/SP"},
					}},
					LastEvaluatedKey: map[string]types.AttributeValue{
						"id": &types.AttributeValueMemberN{Value: "1"},
					},
				}, nil
			}
			return &dynamodb.ScanOutput{
				Items: []map[string]types.AttributeValue{{
					"transportadora": &types.AttributeValueMemberS{Value: "Alfa Log"},
					"id":             &types.AttributeValueMemberN{Value: "2"},
				}},
			}, nil
		},
	}

	reader := &DynamoDBTableReader{Client: client, TableName: "rotas"}
	tbl, err := reader.Read(context.Background())
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if calls != 2 {
		t.Errorf("Scan called %d times, want 2 pages", calls)
	}
	if !reflect.DeepEqual(tbl.Header, []string{"filial1/cubagem", "id", "transportadora"}) {
		t.Errorf("header = %q", tbl.Header)
	}
	want := [][]string{
		{"13000-Campinas/SP", "", "Trans Sul"},
		{"", "2", "Alfa Log"},
	}
	if !reflect.DeepEqual(tbl.Rows, want) {
		t.Errorf("rows = %q, want %q", tbl.Rows, want)
	}
}

func TestMemoryTableReader(t *testing.T) {
	tbl := NewTable([]string{"a"}, nil)
	got, err := (&MemoryTableReader{Table: tbl}).Read(context.Background())
	if err != nil || got != tbl {
		t.Errorf("Read = %v, %v", got, err)
	}
}

func TestStringify(t *testing.T) {
	tests := []struct {
		in   interface{}
		want string
	}{
		{nil, ""},
		{[]byte("abc"), "abc"},
		{"x", "x"},
		{int64(42), "42"},
		{2.5, "2.5"},
		{true, "true"},
	}
	for _, tt := range tests {
		if got := stringify(tt.in); got != tt.want {
			t.Errorf("stringify(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
