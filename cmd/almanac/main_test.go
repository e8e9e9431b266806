package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "almanac", cmd.Use)

	for _, name := range []string{"julian", "civil", "convert", "deltat", "serve"} {
		t.Run(name, func(t *testing.T) {
			sub, _, err := cmd.Find([]string{name})
			require.NoError(t, err)
			assert.Equal(t, name, sub.Name())
		})
	}

	format := cmd.PersistentFlags().Lookup("format")
	require.NotNil(t, format)
	assert.Equal(t, "text", format.DefValue)
}

func TestJulianCommand(t *testing.T) {
	out, _, err := run(t, "julian", "--calendar", "gregorian", "1970", "1", "1")
	require.NoError(t, err)
	assert.Equal(t, "2440587.500000000 gregorian (MJD 40587.000000000) Thursday\n", out)

	out, _, err = run(t, "julian", "2000", "1", "1", "12", "0", "0")
	require.NoError(t, err)
	assert.Equal(t, "2451545.000000000 gregorian (MJD 51544.500000000) Saturday\n", out)

	out, _, err = run(t, "julian", "--calendar", "julian", "--", "-4712", "1", "1.5")
	require.NoError(t, err)
	assert.Equal(t, "0.000000000 julian (MJD -2400000.500000000) Monday\n", out)
}

func TestJulianCommand_InvalidDate(t *testing.T) {
	out, stderr, err := run(t, "--format", "json", "julian", "-c", "gregorian", "2023", "2", "30")
	require.NoError(t, err)
	assert.Contains(t, stderr, "date does not exist")

	var result julianResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.False(t, result.Valid)
	assert.Equal(t, 2460005.5, result.Julian)
}

func TestJulianCommand_Errors(t *testing.T) {
	_, _, err := run(t, "julian", "1970", "1")
	assert.Error(t, err)

	_, _, err = run(t, "julian", "1970", "January", "1")
	assert.Error(t, err)

	_, _, err = run(t, "julian", "--calendar", "hebrew", "1970", "1", "1")
	assert.Error(t, err)
}

func TestCivilCommand(t *testing.T) {
	out, _, err := run(t, "civil", "2451545")
	require.NoError(t, err)
	assert.Equal(t, "2000-01-01 12:00:00.000 gregorian Saturday\n", out)

	out, _, err = run(t, "civil", "2299159.5")
	require.NoError(t, err)
	assert.Equal(t, "1582-10-04 00:00:00.000 julian Thursday\n", out)

	out, _, err = run(t, "civil", "--calendar", "gregorian", "2299159.5")
	require.NoError(t, err)
	assert.Equal(t, "1582-10-14 00:00:00.000 gregorian Thursday\n", out)

	_, _, err = run(t, "civil", "Inf")
	assert.Error(t, err)
}

func TestConvertCommand(t *testing.T) {
	out, _, err := run(t, "--format", "json", "convert", "--from", "TT", "--to", "TAI", "2451545")
	require.NoError(t, err)

	var result convertResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, "TT", result.From)
	assert.Equal(t, "TAI", result.To)
	assert.InDelta(t, 2451545-32.184/86400, result.Result, 1e-9)

	_, stderr, err := run(t, "convert", "--from", "UTC", "--to", "TT", "2816787.5")
	require.NoError(t, err)
	assert.Contains(t, stderr, "delta t is extrapolated")

	_, _, err = run(t, "convert", "--to", "GPS", "2451545")
	assert.Error(t, err)
}

func TestDeltaTCommand(t *testing.T) {
	out, _, err := run(t, "deltat", "2000")
	require.NoError(t, err)
	assert.Equal(t, "63.860 s\n", out)

	out, _, err = run(t, "--format", "json", "deltat", "--month", "1", "2000")
	require.NoError(t, err)

	var result deltaTResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.InDelta(t, 63.8738, result.Seconds, 1e-3)
	assert.Equal(t, "[1986, 2005)", result.Regime)

	_, stderr, err := run(t, "deltat", "2100")
	require.NoError(t, err)
	assert.Contains(t, stderr, "delta t is extrapolated")

	_, _, err = run(t, "deltat", "--month", "13", "2000")
	assert.Error(t, err)
}

func TestDeltaTCommand_Table(t *testing.T) {
	out, _, err := run(t, "deltat", "--table")
	require.NoError(t, err)

	assert.Contains(t, out, "ΔT at start (s)")
	assert.Contains(t, out, "-Inf")
	assert.Contains(t, out, "+Inf")
	assert.Contains(t, out, "120.00")
}

func TestInvalidFormat(t *testing.T) {
	_, _, err := run(t, "--format", "yaml", "deltat", "2000")
	assert.Error(t, err)
}
