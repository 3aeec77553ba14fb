package cli

import (
	"context"
	"fmt"

	"github.com/spf13/pflag"
)

// periodFlag is the --period selector shared by grades and homework.
type periodFlag struct {
	index int
}

func (f *periodFlag) AddFlags(flagSet *pflag.FlagSet) {
	flagSet.IntVar(&f.index, "period", 0, "Period number from 'reschool periods' (default: current)")
}

// yearFlag is the --year selector shared by the school-year commands.
type yearFlag struct {
	id int64
}

func (f *yearFlag) AddFlags(flagSet *pflag.FlagSet) {
	flagSet.Int64Var(&f.id, "year", 0, "School year id (default: current)")
}

func (f *yearFlag) resolve(ctx context.Context, app *App) (int64, error) {
	return yearOrCurrent(ctx, app, f.id)
}

// outputFormat is a pflag.Value accepting table or csv.
type outputFormat string

const (
	formatTable outputFormat = "table"
	formatCSV   outputFormat = "csv"
)

var _ pflag.Value = (*outputFormat)(nil)

func (f *outputFormat) String() string { return string(*f) }
func (f *outputFormat) Type() string   { return "format" }

func (f *outputFormat) Set(s string) error {
	switch outputFormat(s) {
	case formatTable, formatCSV:
		*f = outputFormat(s)
		return nil
	}
	return fmt.Errorf("invalid format %q, want table or csv", s)
}
