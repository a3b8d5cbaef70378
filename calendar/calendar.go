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

// Package calendar implements the upcoming and historical IPO queries: each
// fetches a bounded number of rows from the provider, sorts them by date, and
// projects them into a fixed-column display table. The table projection is
// independent of the provider call, so it is unit-testable without network
// access.
package calendar

import (
	"context"
	"fmt"

	"github.com/stockparfait/errors"
	"github.com/stockparfait/ipocalendar/openbb"
	"github.com/stockparfait/ipocalendar/table"
	"github.com/stockparfait/iterator"
	"github.com/stockparfait/logging"
	"golang.org/x/exp/slices"
	"gonum.org/v1/gonum/stat"
)

// UpcomingHeader returns the display column labels of the upcoming IPO table.
func UpcomingHeader() []string {
	return []string{
		"Company Name",
		"Expected Date",
		"Shares Offered (M)",
		"Price Low ($)",
		"Price High ($)",
		"Exchange",
	}
}

// PastHeader returns the display column labels of the past IPO table.
func PastHeader() []string {
	return []string{
		"Company Name",
		"IPO Date",
		"IPO Price ($)",
		"Exchange",
	}
}

// UpcomingRow renders an upcoming IPO as a display table row.
type UpcomingRow openbb.UpcomingIPO

var _ table.Row = UpcomingRow{}

// CSV implements table.Row.
func (r UpcomingRow) CSV() []string {
	return []string{
		r.Name,
		r.ExpectedDate.String(),
		fmt.Sprintf("%.1f", r.SharesOffered),
		fmt.Sprintf("%.2f", r.PriceLow),
		fmt.Sprintf("%.2f", r.PriceHigh),
		r.Exchange,
	}
}

// PastRow renders a past IPO as a display table row.
type PastRow openbb.PastIPO

var _ table.Row = PastRow{}

// CSV implements table.Row.
func (r PastRow) CSV() []string {
	return []string{
		r.Name,
		r.Date.String(),
		fmt.Sprintf("%.2f", r.Price),
		r.Exchange,
	}
}

// Upcoming fetches up to limit upcoming IPOs from the provider and returns
// them sorted in ascending order by expected date. An empty result is not an
// error.
func Upcoming(ctx context.Context, limit int) ([]openbb.UpcomingIPO, error) {
	if limit <= 0 {
		return nil, errors.Reason("limit [%d] must be positive", limit)
	}
	logging.Infof(ctx, "fetching the next %d upcoming IPOs...", limit)
	it := openbb.NewCalendarQuery(openbb.StatusUpcoming).Limit(limit).Read(ctx)
	var rows []openbb.UpcomingIPO
	for {
		var r openbb.UpcomingIPO
		ok, err := it.Next(&r)
		if err != nil {
			return nil, errors.Annotate(err, "failed to read upcoming IPOs")
		}
		if !ok {
			break
		}
		rows = append(rows, r)
	}
	slices.SortStableFunc(rows, func(a, b openbb.UpcomingIPO) bool {
		return a.ExpectedDate.Before(b.ExpectedDate)
	})
	return rows, nil
}

// Past fetches up to limit completed IPOs from the provider and returns them
// sorted in descending order by IPO date, most recent first. An empty result
// is not an error.
func Past(ctx context.Context, limit int) ([]openbb.PastIPO, error) {
	if limit <= 0 {
		return nil, errors.Reason("limit [%d] must be positive", limit)
	}
	logging.Infof(ctx, "fetching the last %d recent past IPOs...", limit)
	it := openbb.NewCalendarQuery(openbb.StatusHistorical).Limit(limit).Read(ctx)
	var rows []openbb.PastIPO
	for {
		var r openbb.PastIPO
		ok, err := it.Next(&r)
		if err != nil {
			return nil, errors.Annotate(err, "failed to read past IPOs")
		}
		if !ok {
			break
		}
		rows = append(rows, r)
	}
	slices.SortStableFunc(rows, func(a, b openbb.PastIPO) bool {
		return a.Date.After(b.Date)
	})
	return rows, nil
}

// UpcomingTable projects upcoming IPOs into the six display columns, in order.
func UpcomingTable(ipos []openbb.UpcomingIPO) *table.Table {
	rows := iterator.Reduce[openbb.UpcomingIPO, []table.Row](
		iterator.FromSlice(ipos), []table.Row{},
		func(r openbb.UpcomingIPO, rows []table.Row) []table.Row {
			return append(rows, UpcomingRow(r))
		})
	tbl := table.NewTable(UpcomingHeader()...)
	tbl.AddRow(rows...)
	return tbl
}

// PastTable projects past IPOs into the four display columns, in order.
func PastTable(ipos []openbb.PastIPO) *table.Table {
	rows := iterator.Reduce[openbb.PastIPO, []table.Row](
		iterator.FromSlice(ipos), []table.Row{},
		func(r openbb.PastIPO, rows []table.Row) []table.Row {
			return append(rows, PastRow(r))
		})
	tbl := table.NewTable(PastHeader()...)
	tbl.AddRow(rows...)
	return tbl
}

// Summary holds price statistics of a single query result.
type Summary struct {
	Count  int
	Mean   float64 // mean IPO price; the range midpoint for upcoming IPOs
	StdDev float64 // sample standard deviation; 0 when Count < 2
}

// String renders the summary as a single status line.
func (s Summary) String() string {
	if s.Count == 0 {
		return "no IPOs"
	}
	str := fmt.Sprintf("%d IPOs, mean price $%.2f", s.Count, s.Mean)
	if s.Count > 1 {
		str += fmt.Sprintf(", stddev $%.2f", s.StdDev)
	}
	return str
}

func summarize(prices []float64) Summary {
	s := Summary{Count: len(prices)}
	if s.Count == 0 {
		return s
	}
	s.Mean = stat.Mean(prices, nil)
	if s.Count > 1 {
		s.StdDev = stat.StdDev(prices, nil)
	}
	return s
}

// UpcomingSummary computes price statistics over the midpoints of the expected
// price ranges.
func UpcomingSummary(ipos []openbb.UpcomingIPO) Summary {
	prices := make([]float64, len(ipos))
	for i, r := range ipos {
		prices[i] = (float64(r.PriceLow) + float64(r.PriceHigh)) / 2.0
	}
	return summarize(prices)
}

// PastSummary computes price statistics over the realized IPO prices.
func PastSummary(ipos []openbb.PastIPO) Summary {
	prices := make([]float64, len(ipos))
	for i, r := range ipos {
		prices[i] = float64(r.Price)
	}
	return summarize(prices)
}
