package chart

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
	"github.com/urfave/cli/v2"

	"xuanxin.dev/backend-next/internal/model/types"
)

func birth() types.BirthFragment {
	return types.BirthFragment{Year: 1990, Month: 5, Day: 15, Hour: 10, Gender: "male"}
}

func TestRunPrintsProfile(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, run(&buf, types.AnalyzeRequest{BirthFragment: birth()}, 2024))

	out := buf.Bytes()
	assert.Equal(t, "庚午 辛巳 庚辰 辛巳", gjson.GetBytes(out, "layout.label").String())
	assert.EqualValues(t, 2024, gjson.GetBytes(out, "targetYear").Int())
	assert.EqualValues(t, 35, gjson.GetBytes(out, "currentAge").Int())
}

func TestRunRejectsInvalidBirth(t *testing.T) {
	b := birth()
	b.Month = 2
	b.Day = 30

	err := run(&bytes.Buffer{}, types.AnalyzeRequest{BirthFragment: b}, 2024)
	var exit cli.ExitCoder
	require.ErrorAs(t, err, &exit)
	assert.Equal(t, 2, exit.ExitCode())
}

func TestCommandParsesFlags(t *testing.T) {
	var buf bytes.Buffer
	app := &cli.App{Writer: &buf, Commands: []*cli.Command{Command()}}

	err := app.Run([]string{"xuanxin", "chart",
		"--year", "1990", "--month", "5", "--day", "15", "--hour", "10",
		"--gender", "Male", "--target-year", "2024", "--current-age", "5"})
	require.NoError(t, err)

	out := buf.Bytes()
	assert.Equal(t, "male", gjson.GetBytes(out, "birth.gender").String())
	assert.EqualValues(t, 5, gjson.GetBytes(out, "currentAge").Int())
	assert.Equal(t, "null", gjson.GetBytes(out, "decades.current").Raw)
}
