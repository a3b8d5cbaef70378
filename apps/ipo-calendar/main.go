// Copyright 2023 Stock Parfait

// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at

//     http://www.apache.org/licenses/LICENSE-2.0

// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/stockparfait/errors"
	"github.com/stockparfait/ipocalendar/calendar"
	"github.com/stockparfait/ipocalendar/openbb"
	"github.com/stockparfait/ipocalendar/table"
	"github.com/stockparfait/logging"

	toml "github.com/pelletier/go-toml/v2"
)

type Flags struct {
	Config   string // default: ~/.ipocalendar/config.toml
	Limit    int    // max. number of rows per calendar
	LogLevel logging.Level
	CSV      bool // dump CSV format; default: text.
}

func parseFlags(args []string) (*Flags, error) {
	var flags Flags
	fs := flag.NewFlagSet("ipo-calendar", flag.ExitOnError)
	fs.StringVar(&flags.Config, "conf",
		filepath.Join(os.Getenv("HOME"), ".ipocalendar", "config.toml"),
		"path to the config file")
	fs.IntVar(&flags.Limit, "limit", 10, "max. number of IPOs per calendar")
	flags.LogLevel = logging.Info
	fs.Var(&flags.LogLevel, "log-level", "Log level: debug, info, warning, error")
	fs.BoolVar(&flags.CSV, "csv", false, "print tables in CSV format; default: text")

	err := fs.Parse(args)
	if err != nil {
		return nil, err
	}
	if flags.Limit <= 0 {
		return nil, errors.Reason("-limit [%d] must be positive", flags.Limit)
	}
	return &flags, err
}

// Config of the provider connection.
type Config struct {
	Key string `toml:"key"` // personal access token; empty = anonymous access
}

// parseConfig reads the config file when present. A missing file is not an
// error, since the provider accepts anonymous calendar queries.
func parseConfig(filePath string) (*Config, error) {
	var c Config
	f, err := os.Open(filePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &c, nil
		}
		return nil, errors.Annotate(err, "failed to open config file %s", filePath)
	}
	defer f.Close()

	d := toml.NewDecoder(f)
	if err := d.Decode(&c); err != nil {
		return nil, errors.Annotate(err, "failed to read config file %s", filePath)
	}
	return &c, nil
}

// printTable writes the banner-framed table followed by its summary line.
func printTable(w io.Writer, title string, tbl *table.Table, s calendar.Summary, asCSV bool) error {
	banner := strings.Repeat("=", 70)
	if _, err := fmt.Fprintf(w, "\n%s\n%s\n", banner, title); err != nil {
		return errors.Annotate(err, "failed to write banner")
	}
	params := table.Params{Index: true}
	if asCSV {
		if err := tbl.WriteCSV(w, params); err != nil {
			return errors.Annotate(err, "failed to print CSV")
		}
	} else {
		if err := tbl.WriteText(w, params); err != nil {
			return errors.Annotate(err, "failed to print text")
		}
	}
	if _, err := fmt.Fprintf(w, "%s\n%s\n", s, banner); err != nil {
		return errors.Annotate(err, "failed to write summary")
	}
	return nil
}

// printCalendars runs both calendar queries in sequence and prints each
// non-empty result. A provider failure in one query is reported and never
// stops the other.
func printCalendars(ctx context.Context, flags *Flags, w io.Writer) error {
	config, err := parseConfig(flags.Config)
	if err != nil {
		return errors.Annotate(err, "failed to parse config")
	}
	ctx = openbb.UseClient(ctx, config.Key)

	// Optional init hook; its failure must not affect the queries below.
	if err := openbb.LogSystemInfo(ctx); err != nil {
		logging.Debugf(ctx, "system info unavailable: %s", err.Error())
	}

	upcoming, err := calendar.Upcoming(ctx, flags.Limit)
	switch {
	case err != nil:
		logging.Errorf(ctx, "could not fetch upcoming IPO data: %s", err.Error())
	case len(upcoming) == 0:
		logging.Infof(ctx, "no upcoming IPOs found for the specified limit")
	default:
		if err := printTable(w, "Upcoming IPOs:", calendar.UpcomingTable(upcoming),
			calendar.UpcomingSummary(upcoming), flags.CSV); err != nil {
			return errors.Annotate(err, "failed to print upcoming IPOs")
		}
	}

	past, err := calendar.Past(ctx, flags.Limit)
	switch {
	case err != nil:
		logging.Errorf(ctx, "could not fetch past IPO data: %s", err.Error())
	case len(past) == 0:
		logging.Infof(ctx, "no recent past IPOs found for the specified limit")
	default:
		if err := printTable(w, "Recent Past IPOs:", calendar.PastTable(past),
			calendar.PastSummary(past), flags.CSV); err != nil {
			return errors.Annotate(err, "failed to print past IPOs")
		}
	}

	logging.Infof(ctx, "all done.")
	return nil
}

func main() {
	ctx := context.Background()
	flags, err := parseFlags(os.Args[1:])
	if err != nil {
		ctx = logging.Use(ctx, logging.DefaultGoLogger(logging.Info))
		logging.Errorf(ctx, "failed to parse flags: %s", err.Error())
		os.Exit(1)
	}
	ctx = logging.Use(ctx, logging.DefaultGoLogger(flags.LogLevel))

	if err := printCalendars(ctx, flags, os.Stdout); err != nil {
		logging.Errorf(ctx, err.Error())
		os.Exit(1)
	}
}
