package chart

import (
	"fmt"
	"io"
	"time"

	"github.com/goccy/go-json"
	"github.com/urfave/cli/v2"
	"gopkg.in/guregu/null.v3"

	corechart "xuanxin.dev/backend-next/internal/core/chart"
	"xuanxin.dev/backend-next/internal/model/types"
	"xuanxin.dev/backend-next/internal/util/rekuest"
)

func Command() *cli.Command {
	return &cli.Command{
		Name:  "chart",
		Usage: "compute and print the profile of a birth moment",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "year", Required: true},
			&cli.IntFlag{Name: "month", Required: true},
			&cli.IntFlag{Name: "day", Required: true},
			&cli.IntFlag{Name: "hour", Required: true, Usage: "hour of day, 0-23"},
			&cli.StringFlag{Name: "gender", Required: true, Usage: "male or female"},
			&cli.IntFlag{Name: "target-year", Usage: "year the annual window is built around, defaults to the current year"},
			&cli.IntFlag{Name: "current-age", Usage: "nominal age used to pick the current decade"},
		},
		Action: func(c *cli.Context) error {
			req := requestOf(c)
			return run(c.App.Writer, req, time.Now().Year())
		},
	}
}

func requestOf(c *cli.Context) types.AnalyzeRequest {
	return types.AnalyzeRequest{
		BirthFragment: types.BirthFragment{
			Year:   c.Int("year"),
			Month:  c.Int("month"),
			Day:    c.Int("day"),
			Hour:   c.Int("hour"),
			Gender: c.String("gender"),
		},
		TargetYear: null.NewInt(c.Int64("target-year"), c.IsSet("target-year")),
		CurrentAge: null.NewInt(c.Int64("current-age"), c.IsSet("current-age")),
	}
}

func run(w io.Writer, body types.AnalyzeRequest, currentYear int) error {
	if err := rekuest.Validate.Struct(body); err != nil {
		return cli.Exit(fmt.Sprintf("invalid birth: %s", err), 2)
	}
	req, err := body.ChartRequest(currentYear)
	if err != nil {
		return cli.Exit(fmt.Sprintf("invalid birth: %s", err), 2)
	}

	out, err := json.MarshalIndent(corechart.Analyze(req), "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}
