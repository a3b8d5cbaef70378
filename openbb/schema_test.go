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

package openbb

import (
	"testing"

	"github.com/stockparfait/ipocalendar/dates"

	. "github.com/smartystreets/goconvey/convey"
)

func TestSchema(t *testing.T) {
	t.Parallel()

	Convey("UpcomingIPO.Load", t, func() {
		Convey("loads a complete record", func() {
			var r UpcomingIPO
			So(r.Load(TestUpcomingIPO(
				"Acme Corp.", "2025-03-01", 12.5, 18.0, 21.0, "NYSE")), ShouldBeNil)
			So(r, ShouldResemble, UpcomingIPO{
				Name:          "Acme Corp.",
				ExpectedDate:  dates.New(2025, 3, 1),
				SharesOffered: 12.5,
				PriceLow:      18.0,
				PriceHigh:     21.0,
				Exchange:      "NYSE",
			})
		})

		Convey("ignores extra fields", func() {
			rec := TestUpcomingIPO("Acme Corp.", "2025-03-01", 12.5, 18.0, 21.0, "NYSE")
			rec["symbol"] = "ACME"
			var r UpcomingIPO
			So(r.Load(rec), ShouldBeNil)
			So(r.Name, ShouldEqual, "Acme Corp.")
		})

		Convey("null values become zero values", func() {
			rec := TestUpcomingIPO("Acme Corp.", "2025-03-01", 12.5, 18.0, 21.0, "NYSE")
			rec["price_low"] = nil
			rec["exchange"] = nil
			var r UpcomingIPO
			So(r.Load(rec), ShouldBeNil)
			So(r.PriceLow, ShouldEqual, 0.0)
			So(r.Exchange, ShouldEqual, "")
		})

		Convey("missing field is an error", func() {
			rec := TestUpcomingIPO("Acme Corp.", "2025-03-01", 12.5, 18.0, 21.0, "NYSE")
			delete(rec, "expected_date")
			var r UpcomingIPO
			So(r.Load(rec), ShouldNotBeNil)
		})

		Convey("wrong value type is an error", func() {
			rec := TestUpcomingIPO("Acme Corp.", "2025-03-01", 12.5, 18.0, 21.0, "NYSE")
			rec["price_high"] = "twenty one"
			var r UpcomingIPO
			So(r.Load(rec), ShouldNotBeNil)
		})

		Convey("unparsable date is an error", func() {
			rec := TestUpcomingIPO("Acme Corp.", "soon", 12.5, 18.0, 21.0, "NYSE")
			var r UpcomingIPO
			So(r.Load(rec), ShouldNotBeNil)
		})
	})

	Convey("PastIPO.Load", t, func() {
		Convey("loads a complete record", func() {
			var r PastIPO
			So(r.Load(TestPastIPO("Initech", "2024-06-01", 12.0, "NASDAQ")),
				ShouldBeNil)
			So(r, ShouldResemble, PastIPO{
				Name:     "Initech",
				Date:     dates.New(2024, 6, 1),
				Price:    12.0,
				Exchange: "NASDAQ",
			})
		})

		Convey("accepts a date-time string", func() {
			var r PastIPO
			So(r.Load(TestPastIPO("Initech", "2024-06-01T00:00:00", 12.0, "NASDAQ")),
				ShouldBeNil)
			So(r.Date, ShouldResemble, dates.New(2024, 6, 1))
		})

		Convey("missing field is an error", func() {
			rec := TestPastIPO("Initech", "2024-06-01", 12.0, "NASDAQ")
			delete(rec, "price")
			var r PastIPO
			So(r.Load(rec), ShouldNotBeNil)
		})

		Convey("wrong value type is an error", func() {
			rec := TestPastIPO("Initech", "2024-06-01", 12.0, "NASDAQ")
			rec["name"] = 42.0
			var r PastIPO
			So(r.Load(rec), ShouldNotBeNil)
		})
	})
}
