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

package calendar

import (
	"bytes"
	"context"
	"testing"

	"github.com/stockparfait/fetch"
	"github.com/stockparfait/ipocalendar/dates"
	"github.com/stockparfait/ipocalendar/openbb"
	"github.com/stockparfait/ipocalendar/table"
	"github.com/stockparfait/testutil"

	. "github.com/smartystreets/goconvey/convey"
)

func TestCalendar(t *testing.T) {
	t.Parallel()

	Convey("Queries work correctly", t, func() {
		server := testutil.NewTestServer()
		defer server.Close()
		server.ResponseBody = []string{"{}"}

		ctx := fetch.UseClient(context.Background(), server.Client())
		openbb.URL = server.URL() + "/api/v1"
		ctx = openbb.UseClient(ctx, "testtoken")

		Convey("Upcoming", func() {
			Convey("rejects a non-positive limit", func() {
				_, err := Upcoming(ctx, 0)
				So(err, ShouldNotBeNil)
			})

			Convey("sorts ascending by expected date", func() {
				page, err := openbb.TestCalendarPage([]openbb.Record{
					openbb.TestUpcomingIPO("Acme Corp.", "2025-03-01", 12.5, 18.0, 21.0, "NYSE"),
					openbb.TestUpcomingIPO("Initech", "2025-01-15", 4.2, 10.0, 12.0, "NASDAQ"),
					openbb.TestUpcomingIPO("Globex", "2025-02-10", 8.0, 15.0, 17.0, "NYSE"),
				}, "intrinio")
				So(err, ShouldBeNil)
				server.ResponseBody = []string{page}

				rows, err := Upcoming(ctx, 10)
				So(err, ShouldBeNil)
				So(len(rows), ShouldEqual, 3)
				So(rows[0].ExpectedDate, ShouldResemble, dates.New(2025, 1, 15))
				So(rows[1].ExpectedDate, ShouldResemble, dates.New(2025, 2, 10))
				So(rows[2].ExpectedDate, ShouldResemble, dates.New(2025, 3, 1))
				So(server.RequestQuery["status"], ShouldResemble, []string{"upcoming"})
				So(server.RequestQuery["limit"], ShouldResemble, []string{"10"})

				Convey("and projects exactly the six renamed columns", func() {
					var buf bytes.Buffer
					So(UpcomingTable(rows).WriteCSV(&buf, table.Params{}), ShouldBeNil)
					So("\n"+buf.String(), ShouldEqual, `
Company Name,Expected Date,Shares Offered (M),Price Low ($),Price High ($),Exchange
Initech,2025-01-15,4.2,10.00,12.00,NASDAQ
Globex,2025-02-10,8.0,15.00,17.00,NYSE
Acme Corp.,2025-03-01,12.5,18.00,21.00,NYSE
`)
				})

				Convey("and summarizes price range midpoints", func() {
					s := UpcomingSummary(rows)
					So(s.Count, ShouldEqual, 3)
					So(testutil.Round(s.Mean, 3), ShouldEqual, 15.5)
					So(testutil.Round(s.StdDev, 3), ShouldEqual, 4.27)
				})
			})

			Convey("empty result is not an error", func() {
				page, err := openbb.TestCalendarPage([]openbb.Record{}, "")
				So(err, ShouldBeNil)
				server.ResponseBody = []string{page}

				rows, err := Upcoming(ctx, 10)
				So(err, ShouldBeNil)
				So(rows, ShouldBeEmpty)
			})

			Convey("provider failure returns an error and no rows", func() {
				rows, err := Upcoming(context.Background(), 10)
				So(err, ShouldNotBeNil)
				So(rows, ShouldBeEmpty)
			})

			Convey("malformed record returns an error", func() {
				page, err := openbb.TestCalendarPage([]openbb.Record{
					{"name": "Acme Corp."},
				}, "")
				So(err, ShouldBeNil)
				server.ResponseBody = []string{page}

				_, err = Upcoming(ctx, 10)
				So(err, ShouldNotBeNil)
			})
		})

		Convey("Past", func() {
			Convey("rejects a non-positive limit", func() {
				_, err := Past(ctx, -1)
				So(err, ShouldNotBeNil)
			})

			Convey("sorts descending by IPO date", func() {
				page, err := openbb.TestCalendarPage([]openbb.Record{
					openbb.TestPastIPO("Pied Piper", "2024-01-01", 17.0, "NASDAQ"),
					openbb.TestPastIPO("Hooli", "2024-06-01", 19.0, "NYSE"),
				}, "intrinio")
				So(err, ShouldBeNil)
				server.ResponseBody = []string{page}

				rows, err := Past(ctx, 10)
				So(err, ShouldBeNil)
				So(len(rows), ShouldEqual, 2)
				So(rows[0].Date, ShouldResemble, dates.New(2024, 6, 1))
				So(rows[1].Date, ShouldResemble, dates.New(2024, 1, 1))
				So(server.RequestQuery["status"], ShouldResemble, []string{"historical"})

				Convey("and projects exactly the four renamed columns", func() {
					var buf bytes.Buffer
					So(PastTable(rows).WriteText(&buf, table.Params{Index: true}),
						ShouldBeNil)
					So("\n"+buf.String(), ShouldEqual, `
  | Company Name |   IPO Date | IPO Price ($) | Exchange
- | ------------ | ---------- | ------------- | --------
0 |        Hooli | 2024-06-01 |         19.00 |     NYSE
1 |   Pied Piper | 2024-01-01 |         17.00 |   NASDAQ
`)
				})

				Convey("and summarizes realized prices", func() {
					s := PastSummary(rows)
					So(s.Count, ShouldEqual, 2)
					So(testutil.Round(s.Mean, 3), ShouldEqual, 18.0)
					So(testutil.Round(s.StdDev, 3), ShouldEqual, 1.41)
					So(s.String(), ShouldEqual,
						"2 IPOs, mean price $18.00, stddev $1.41")
				})
			})

			Convey("empty result is not an error", func() {
				page, err := openbb.TestCalendarPage([]openbb.Record{}, "")
				So(err, ShouldBeNil)
				server.ResponseBody = []string{page}

				rows, err := Past(ctx, 10)
				So(err, ShouldBeNil)
				So(rows, ShouldBeEmpty)
			})
		})

		Convey("Summary of few samples", func() {
			So(Summary{}.String(), ShouldEqual, "no IPOs")
			s := PastSummary([]openbb.PastIPO{{Name: "Hooli", Price: 19.0}})
			So(s.String(), ShouldEqual, "1 IPOs, mean price $19.00")
			So(s.StdDev, ShouldEqual, 0.0)
		})
	})
}
