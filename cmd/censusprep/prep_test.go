package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/Veraticus/census-prep/internal/csvio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	censusCSV = `AGE,MARITAL_STATUS,EDUCATION,GENDER,EMPLOYMENT,INCOME,LOCATION,MIGRATION_PROB,BIRTH_PROB,MARRIAGE_PROB,DIVORCE_PROB
30-34,Married,University,F,Employed,35k-75k,CA,0.1,0.2,0.3,0.4
35-39,Married,University,F,Employed,35k-75k,CA,0.3,0.4,0.5,0.6
`
	customersCSV = `CUSTOMER_ID,EFFECTIVE_DATE,AGE_RANGE,MARITAL_STATUS,EDUCATION_LEVEL,EMPLOYMENT_STATUS,ANNUAL_INCOME,ADDRESS_HOME_STATE,GENDER
1,2020-01-01,30 to 40,Married,College,Selfemployed,50000,CA,F
2,2020-01-01,30 to 40,Married,College,Selfemployed,50000,Ontario,F
`
	eventsCSV = `CUSTOMER_ID,EVENT
1,moved
2,moved
1,moved again
`
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func execute(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	require.NoError(t, rootCmd.Execute(), out.String())
	return out.String()
}

func TestPrepAndRuns(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)

	census := writeFile(t, dir, "census.csv", censusCSV)
	customers := writeFile(t, dir, "customers.csv", customersCSV)
	events := writeFile(t, dir, "events.csv", eventsCSV)
	outDir := filepath.Join(dir, "prepared")
	db := filepath.Join(dir, "history.db")

	out := execute(t, "prep",
		"--census", census,
		"--customers", customers,
		"--output", "migration="+events,
		"--out-dir", outDir,
		"--census-out", filepath.Join(outDir, "census_grouped.csv"),
		"--database", db,
		"--save")
	assert.Contains(t, out, "Matched:           1 (50.0%)")
	assert.Contains(t, out, "Saved run")

	migration, err := csvio.ReadFile(filepath.Join(outDir, "migration.csv"))
	require.NoError(t, err)
	assert.Equal(t, []string{"EVENT", "MIGRATION_PROB", "BIRTH_PROB", "MARRIAGE_PROB", "DIVORCE_PROB"}, migration.Columns)
	require.Equal(t, 2, migration.Len(), "customer 2 has no census match")
	assert.Equal(t, "moved", migration.Rows[0][0])
	assert.Equal(t, "0.2", migration.Rows[0][1])
	assert.Equal(t, "0.5", migration.Rows[0][4])

	grouped, err := csvio.ReadFile(filepath.Join(outDir, "census_grouped.csv"))
	require.NoError(t, err)
	assert.Equal(t, 1, grouped.Len())

	out = execute(t, "runs", "list", "--database", db)
	assert.Contains(t, out, "50.0%")

	out = execute(t, "mappings")
	assert.Contains(t, out, "census_age:")
}
