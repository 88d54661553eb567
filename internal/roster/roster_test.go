package roster

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/text/encoding/unicode"
)

const sampleRoster = `Full Name,Company email,Reports To Email,Job Title,Departments
Ada Park,ada@example.com,,CEO,Executive
"Lee, Bo",bo@example.com,ada@example.com,CFO,Finance
Cy Hart,cy@example.com,bo@example.com,Analyst,Finance
`

func TestParseKeepsHeaderOrderAndValues(t *testing.T) {
	table, err := Parse([]byte(sampleRoster), ReadOptions{Required: []string{"Company email"}})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	wantCols := []string{"Full Name", "Company email", "Reports To Email", "Job Title", "Departments"}
	if diff := cmp.Diff(wantCols, table.Columns); diff != "" {
		t.Fatalf("columns mismatch (-want +got):\n%s", diff)
	}
	if len(table.Records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(table.Records))
	}
	if got := table.Records[1].Value("Full Name"); got != "Lee, Bo" {
		t.Fatalf("quoted field = %q", got)
	}
	if len(table.Warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", table.Warnings)
	}
	if table.Encoding != EncodingUTF8 {
		t.Fatalf("encoding = %s", table.Encoding)
	}
}

func TestParseMissingRequiredHeader(t *testing.T) {
	_, err := Parse([]byte(sampleRoster), ReadOptions{Required: []string{"Company email", "Manager"}})
	if !errors.Is(err, ErrMissingHeader) {
		t.Fatalf("expected ErrMissingHeader, got %v", err)
	}
	var headerErr *HeaderError
	if !errors.As(err, &headerErr) || len(headerErr.Missing) != 1 || headerErr.Missing[0] != "Manager" {
		t.Fatalf("unexpected header error: %#v", err)
	}
}

func TestParseEmpty(t *testing.T) {
	if _, err := Parse(nil, ReadOptions{}); !errors.Is(err, ErrEmpty) {
		t.Fatalf("expected ErrEmpty, got %v", err)
	}
}

func TestParsePadsAndTruncatesRows(t *testing.T) {
	data := "a,b,c\n1,2\n1,2,3,4\n"
	table, err := Parse([]byte(data), ReadOptions{})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(table.Warnings) != 2 {
		t.Fatalf("expected 2 warnings, got %v", table.Warnings)
	}
	if table.Warnings[0].Row != 2 || table.Warnings[1].Row != 3 {
		t.Fatalf("unexpected warning rows: %v", table.Warnings)
	}
	if v, ok := table.Records[0].Get("c"); !ok || v != "" {
		t.Fatalf("padded value = %q, %v", v, ok)
	}
	if len(table.Records[1].Values) != 3 {
		t.Fatalf("truncated record has %d values", len(table.Records[1].Values))
	}
}

func TestParseDuplicateHeaderKeepsFirst(t *testing.T) {
	table, err := Parse([]byte("a,b,a\n1,2,3\n"), ReadOptions{})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if diff := cmp.Diff([]string{"a", "b"}, table.Columns); diff != "" {
		t.Fatalf("columns mismatch (-want +got):\n%s", diff)
	}
	if got := table.Records[0].Value("a"); got != "1" {
		t.Fatalf("a = %q, want 1", got)
	}
	if len(table.Warnings) != 1 {
		t.Fatalf("expected duplicate header warning, got %v", table.Warnings)
	}
}

func TestParseCustomDelimiter(t *testing.T) {
	table, err := Parse([]byte("name;mail\nAda;ada@example.com\n"), ReadOptions{Delimiter: ';'})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got := table.Records[0].Value("mail"); got != "ada@example.com" {
		t.Fatalf("mail = %q", got)
	}
}

func TestParseDecodesBOMs(t *testing.T) {
	withBOM := append([]byte{0xEF, 0xBB, 0xBF}, []byte(sampleRoster)...)
	table, err := Parse(withBOM, ReadOptions{Required: []string{"Full Name"}})
	if err != nil {
		t.Fatalf("utf-8 bom: %v", err)
	}
	if table.Encoding != EncodingUTF8BOM {
		t.Fatalf("encoding = %s", table.Encoding)
	}

	enc := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder()
	utf16Data, err := enc.Bytes([]byte(sampleRoster))
	if err != nil {
		t.Fatalf("encode utf-16: %v", err)
	}
	table, err = Parse(utf16Data, ReadOptions{Required: []string{"Full Name"}})
	if err != nil {
		t.Fatalf("utf-16: %v", err)
	}
	if table.Encoding != EncodingUTF16LE {
		t.Fatalf("encoding = %s", table.Encoding)
	}
	if got := table.Records[2].Value("Company email"); got != "cy@example.com" {
		t.Fatalf("utf-16 value = %q", got)
	}
}

func TestParseLatin1Fallback(t *testing.T) {
	data := []byte("name,mail\nJos\xe9,jose@example.com\n")
	table, err := Parse(data, ReadOptions{})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if table.Encoding != EncodingLatin1 {
		t.Fatalf("encoding = %s", table.Encoding)
	}
	if got := table.Records[0].Value("name"); got != "José" {
		t.Fatalf("name = %q", got)
	}
}

func TestWriteMissingColumnIsFatal(t *testing.T) {
	rec := NewRecord([]string{"a"}, []string{"1"})
	var buf bytes.Buffer
	err := Write(&buf, []string{"a", "b"}, []Record{rec}, ',')
	if !errors.Is(err, ErrMissingColumn) {
		t.Fatalf("expected ErrMissingColumn, got %v", err)
	}
	var colErr *MissingColumnError
	if !errors.As(err, &colErr) || colErr.Column != "b" || colErr.Row != 1 {
		t.Fatalf("unexpected error %#v", err)
	}
}

func TestParseRowsFollowSourceLines(t *testing.T) {
	data := "name,email\n\nAda,ada@example.com\n\"Bo\nLee\",bo@example.com\nCy,cy@example.com,extra\n"
	table, err := Parse([]byte(data), ReadOptions{})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	var rows []int
	for _, rec := range table.Records {
		rows = append(rows, rec.Row)
	}
	if diff := cmp.Diff([]int{3, 4, 6}, rows); diff != "" {
		t.Fatalf("record rows mismatch (-want +got):\n%s", diff)
	}
	if len(table.Warnings) != 1 || table.Warnings[0].Row != 6 {
		t.Fatalf("truncation warning should name line 6, got %v", table.Warnings)
	}
	if got := table.Records[1].Value("name"); got != "Bo\nLee" {
		t.Fatalf("multi-line name = %q", got)
	}
}

func TestWriteMissingColumnNamesSourceRow(t *testing.T) {
	table, err := Parse([]byte("a\n\n1\n"), ReadOptions{})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	err = Write(io.Discard, []string{"a", "b"}, table.Records, ',')
	var colErr *MissingColumnError
	if !errors.As(err, &colErr) || colErr.Row != 3 {
		t.Fatalf("expected the source line 3, got %#v", err)
	}
	if !strings.Contains(err.Error(), "record 3") {
		t.Fatalf("message should name the source line: %v", err)
	}
}

func TestWriteFileLeavesNothingOnFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	rec := NewRecord([]string{"a"}, []string{"1"})
	if err := WriteFile(path, []string{"b"}, []Record{rec}, ','); err == nil {
		t.Fatalf("expected error")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("expected no file after failed export, stat err = %v", err)
	}
}

func TestRoundTripPreservesValuesAndOrder(t *testing.T) {
	table, err := Parse([]byte(sampleRoster), ReadOptions{})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	path := filepath.Join(t.TempDir(), "nested", "export.csv")
	if err := WriteFile(path, table.Columns, table.Records, ','); err != nil {
		t.Fatalf("write: %v", err)
	}
	again, err := ReadFile(path, ReadOptions{})
	if err != nil {
		t.Fatalf("re-read: %v", err)
	}
	if diff := cmp.Diff(table.Columns, again.Columns); diff != "" {
		t.Fatalf("column order changed (-want +got):\n%s", diff)
	}
	if len(again.Records) != len(table.Records) {
		t.Fatalf("record count %d, want %d", len(again.Records), len(table.Records))
	}
	for i := range table.Records {
		if diff := cmp.Diff(table.Records[i].Values, again.Records[i].Values); diff != "" {
			t.Fatalf("record %d changed (-want +got):\n%s", i, diff)
		}
	}
}

func TestSortedColumns(t *testing.T) {
	recs := []Record{
		NewRecord([]string{"z", "a"}, []string{"1", "2"}),
		NewRecord([]string{"m"}, []string{"3"}),
	}
	got := SortedColumns(recs)
	if diff := cmp.Diff([]string{"a", "m", "z"}, got); diff != "" {
		t.Fatalf("sorted columns mismatch (-want +got):\n%s", diff)
	}
}

func TestWarningString(t *testing.T) {
	w := Warning{Row: 4, Message: "bad"}
	if !strings.HasPrefix(w.String(), "row 4:") {
		t.Fatalf("unexpected warning text %q", w.String())
	}
}
