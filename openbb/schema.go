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
	"github.com/stockparfait/errors"
	"github.com/stockparfait/ipocalendar/dates"
)

// UpcomingIPO is a row of the upcoming IPO calendar: an offering that is
// scheduled but not yet completed.
type UpcomingIPO struct {
	Name          string     // the company's name
	ExpectedDate  dates.Date // when the offering is expected to price
	SharesOffered float32    // expected number of shares offered, in millions
	PriceLow      float32    // low end of the expected price range
	PriceHigh     float32    // high end of the expected price range
	Exchange      string     // e.g. NYSE
}

var _ RecordLoader = &UpcomingIPO{}

// UpcomingIPOFields are the record fields required to load an UpcomingIPO.
var UpcomingIPOFields = []string{
	"name",
	"expected_date",
	"expected_shares_offered",
	"price_low",
	"price_high",
	"exchange",
}

// PastIPO is a row of the historical IPO calendar: a completed offering with
// its realized price.
type PastIPO struct {
	Name     string     // the company's name
	Date     dates.Date // when the offering priced
	Price    float32    // the realized offering price
	Exchange string     // e.g. NASDAQ
}

var _ RecordLoader = &PastIPO{}

// PastIPOFields are the record fields required to load a PastIPO.
var PastIPOFields = []string{
	"name",
	"date",
	"price",
	"exchange",
}

func typeErr(v Value, tp string) error {
	return errors.Reason("expected %s but found %T: %v", tp, v, v)
}

// checkFields verifies that every required field is present in the record.
// Extra fields are ignored, so loaders keep working when the upstream provider
// adds new columns.
func checkFields(rec Record, fields []string) error {
	for _, f := range fields {
		if _, ok := rec[f]; !ok {
			return errors.Reason("missing field '%s' in record: %v", f, rec)
		}
	}
	return nil
}

func recordStr(rec Record, field string) (string, error) {
	v := rec[field]
	if v == nil {
		return "", nil
	}
	if str, ok := v.(string); ok {
		return str, nil
	}
	return "", typeErr(v, "a string")
}

func recordNum(rec Record, field string) (float32, error) {
	v := rec[field]
	if v == nil {
		return 0.0, nil
	}
	if num, ok := v.(float64); ok { // JSON numbers always unmarshal to float64
		return float32(num), nil
	}
	return 0.0, typeErr(v, "a number")
}

func recordDate(rec Record, field string) (dates.Date, error) {
	v := rec[field]
	if v == nil {
		return dates.Date{}, nil
	}
	str, ok := v.(string)
	if !ok {
		return dates.Date{}, typeErr(v, "a date string")
	}
	return dates.NewFromString(str)
}

// Load implements RecordLoader.
func (r *UpcomingIPO) Load(rec Record) error {
	if err := checkFields(rec, UpcomingIPOFields); err != nil {
		return errors.Annotate(err, "unexpected upcoming IPO record")
	}
	var err error

	if r.Name, err = recordStr(rec, "name"); err != nil {
		return errors.Annotate(err, "name should be a string")
	}
	if r.ExpectedDate, err = recordDate(rec, "expected_date"); err != nil {
		return errors.Annotate(err, "expected_date should be a date string")
	}
	if r.SharesOffered, err = recordNum(rec, "expected_shares_offered"); err != nil {
		return errors.Annotate(err, "expected_shares_offered should be a number")
	}
	if r.PriceLow, err = recordNum(rec, "price_low"); err != nil {
		return errors.Annotate(err, "price_low should be a number")
	}
	if r.PriceHigh, err = recordNum(rec, "price_high"); err != nil {
		return errors.Annotate(err, "price_high should be a number")
	}
	if r.Exchange, err = recordStr(rec, "exchange"); err != nil {
		return errors.Annotate(err, "exchange should be a string")
	}
	return nil
}

// Load implements RecordLoader.
func (r *PastIPO) Load(rec Record) error {
	if err := checkFields(rec, PastIPOFields); err != nil {
		return errors.Annotate(err, "unexpected historical IPO record")
	}
	var err error

	if r.Name, err = recordStr(rec, "name"); err != nil {
		return errors.Annotate(err, "name should be a string")
	}
	if r.Date, err = recordDate(rec, "date"); err != nil {
		return errors.Annotate(err, "date should be a date string")
	}
	if r.Price, err = recordNum(rec, "price"); err != nil {
		return errors.Annotate(err, "price should be a number")
	}
	if r.Exchange, err = recordStr(rec, "exchange"); err != nil {
		return errors.Annotate(err, "exchange should be a string")
	}
	return nil
}

// TestUpcomingIPO creates a calendar record for use in tests.
func TestUpcomingIPO(name, expectedDate string, shares, low, high float64, exchange string) Record {
	return Record{
		"name":                    name,
		"expected_date":           expectedDate,
		"expected_shares_offered": shares,
		"price_low":               low,
		"price_high":              high,
		"exchange":                exchange,
	}
}

// TestPastIPO creates a calendar record for use in tests.
func TestPastIPO(name, date string, price float64, exchange string) Record {
	return Record{
		"name":     name,
		"date":     date,
		"price":    price,
		"exchange": exchange,
	}
}
