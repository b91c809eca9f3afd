package enrich

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openaccounting/oadmin/internal/model"
)

func TestParseRows(t *testing.T) {
	text := "reference,key,value\r\n" +
		"ACME001,sector,Manufacturing\n" +
		"\n" +
		"   \n" +
		"BETA002,Gold\n" +
		"lonely\n" +
		"GAMMA003,note,\"Paid, late\"\n" +
		"DELTA004,address,1 Road,Town\n"

	rows := ParseRows(text)
	require.Len(t, rows, 4)
	assert.Equal(t, Row{Reference: "ACME001", Key: "sector", Value: "Manufacturing"}, rows[0])
	assert.Equal(t, Row{Reference: "BETA002", Key: DefaultKey, Value: "Gold"}, rows[1])
	assert.Equal(t, Row{Reference: "GAMMA003", Key: "note", Value: "Paid, late"}, rows[2])
	assert.Equal(t, Row{Reference: "DELTA004", Key: "address", Value: "1 Road,Town"}, rows[3])
}

func TestParseRowsHeaders(t *testing.T) {
	for _, header := range []string{"Reference,Value", "CustomerRef,value", "customer_reference,k,v"} {
		rows := ParseRows(header + "\nX1,y\n")
		require.Len(t, rows, 1, header)
		assert.Equal(t, "X1", rows[0].Reference)
	}
}

func TestParseRowsHeaderOnlyOnFirstLine(t *testing.T) {
	rows := ParseRows("\n  \nReference,Value\nACME001,Silver\nReference,Gold\ncustomerref,x,y\n")
	require.Len(t, rows, 3)
	assert.Equal(t, Row{Reference: "ACME001", Key: DefaultKey, Value: "Silver"}, rows[0])
	assert.Equal(t, Row{Reference: "Reference", Key: DefaultKey, Value: "Gold"}, rows[1])
	assert.Equal(t, Row{Reference: "customerref", Key: "x", Value: "y"}, rows[2])

	rows = ParseRows("ACME001,Silver\nreference,Gold\n")
	assert.Len(t, rows, 2, "a data first line leaves later lines alone")
}

func TestParseRowsNeverFails(t *testing.T) {
	assert.Empty(t, ParseRows(""))
	assert.Empty(t, ParseRows("single\n\n"))
	rows := ParseRows("\"broken,quote\nA,1\n")
	require.NotEmpty(t, rows)
	assert.Equal(t, "A", rows[len(rows)-1].Reference)
}

func TestIndex(t *testing.T) {
	idx := Index([]Row{
		{Reference: "A", Key: "sector", Value: "Retail"},
		{Reference: "A", Key: "sector", Value: "Wholesale"},
		{Reference: "A", Key: DefaultKey, Value: "Gold"},
		{Reference: "", Key: DefaultKey, Value: "ignored"},
		{Reference: "B", Key: DefaultKey, Value: "Silver"},
	})
	require.Len(t, idx, 2)
	assert.Equal(t, map[string]string{"sector": "Wholesale", DefaultKey: "Gold"}, idx["A"])
	assert.Equal(t, "Silver", idx["B"][DefaultKey])
}

func TestApply(t *testing.T) {
	companies := []model.Company{
		{ID: "1", Name: "Acme", Reference: "ACME001"},
		{ID: "2", Name: "Beta", Reference: "BETA002"},
		{ID: "3", Name: "Gamma", Reference: "GAMMA003"},
	}
	idx := Index(ParseRows("gamma003,tier,Gold\nACME001,Silver\nZED9,x\nYAK1,y\n"))

	matches, unmatched := Apply(companies, idx)
	require.Len(t, matches, 2)
	assert.Equal(t, "Acme", matches[0].Company.Name)
	assert.Equal(t, "Silver", matches[0].Values[DefaultKey])
	assert.Equal(t, "Gamma", matches[1].Company.Name)
	assert.Equal(t, "Gold", matches[1].Values["tier"])
	assert.Equal(t, []string{"YAK1", "ZED9"}, unmatched)
}

func TestScan_FindsCSVs(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "refs.csv"), []byte("data"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.txt"), []byte("data"), 0o644))

	files, err := Scan(dir)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "refs.csv", files[0].Name)
	assert.Equal(t, int64(4), files[0].Size)
}

func TestScan_IgnoresProcessedDir(t *testing.T) {
	dir := t.TempDir()
	processed := filepath.Join(dir, ProcessedDir)
	require.NoError(t, os.MkdirAll(processed, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "new.csv"), []byte("data"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(processed, "old.csv"), []byte("data"), 0o644))

	files, err := Scan(dir)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "new.csv", files[0].Name)
}

func TestScan_MissingDir(t *testing.T) {
	files, err := Scan(filepath.Join(t.TempDir(), "nope"))
	require.NoError(t, err)
	assert.Nil(t, files)
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "refs.csv")
	require.NoError(t, os.WriteFile(path, []byte("reference,value\nA1,Gold\nlonely\n\nB2\n"), 0o644))

	rows, skipped, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []Row{{Reference: "A1", Key: DefaultKey, Value: "Gold"}}, rows)
	assert.Equal(t, 2, skipped)

	_, _, err = ReadFile(filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)
}

func TestMarkProcessed(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "refs.csv"), []byte("data"), 0o644))

	require.NoError(t, MarkProcessed(dir, "refs.csv"))

	_, err := os.Stat(filepath.Join(dir, "refs.csv"))
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(dir, ProcessedDir, "refs.csv"))
	assert.NoError(t, err)
}

func TestMarkProcessed_Missing(t *testing.T) {
	err := MarkProcessed(t.TempDir(), "ghost.csv")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "moving ghost.csv")
}
