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
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/stockparfait/errors"
	"github.com/stockparfait/fetch"
	"github.com/stockparfait/logging"
)

type contextKey int

const (
	clientContextKey contextKey = iota
)

// URL is the default base URL of the server. It may be overwritten in tests
// before creating a new client.
var URL = "https://api.openbb.co/api/v1"

// Client for querying OpenBB calendar endpoints.
type Client struct {
	baseURL string // the base URL of the server
	token   string // personal access token; empty = anonymous access
}

// newClient creates a new client.
func newClient(baseURL, token string) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
	}
}

// GetClient extracts the Client from the context, if any.
func GetClient(ctx context.Context) *Client {
	c, ok := ctx.Value(clientContextKey).(*Client)
	if !ok {
		return nil
	}
	return c
}

// UseClient creates a new client based on the access token and injects it into
// the context.
func UseClient(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, clientContextKey, newClient(URL, token))
}

// Value is an arbitrary value of a record field.
type Value interface{}

// Record is a single result of a calendar query: a mapping from field names to
// their values.
type Record map[string]Value

// RecordLoader is the interface that a row type of a specific calendar must
// implement.
type RecordLoader interface {
	Load(r Record) error
}

// Status selects the IPO calendar variant.
type Status string

// Values for the Status.
const (
	StatusUpcoming   = Status("upcoming")
	StatusHistorical = Status("historical")
)

// maxLimit is the largest number of rows the calendar endpoint returns in a
// single response.
const maxLimit = 1000

// queryOptions are options common to all the calendars.
type queryOptions struct {
	Limit    int    // max. number of rows to request (0 = server default)
	Provider string // if non-empty, request this upstream data provider
}

// CalendarQuery is a builder for an IPO calendar query.
type CalendarQuery struct {
	status  Status
	options queryOptions
}

// NewCalendarQuery creates a new query for the given calendar variant.
func NewCalendarQuery(status Status) *CalendarQuery {
	q := CalendarQuery{status: status}
	return &q
}

// Copy creates a deep copy of the query. It is primarily used in its builder
// methods.
func (q *CalendarQuery) Copy() *CalendarQuery {
	q2 := CalendarQuery{status: q.status, options: q.options}
	return &q2
}

// Limit sets the maximum number of rows to request, [0..1000]. This and other
// builder methods always create a deep copy of the query, leaving the original
// intact.
func (q *CalendarQuery) Limit(n int) *CalendarQuery {
	if n < 0 {
		n = 0
	}
	if n > maxLimit {
		n = maxLimit
	}
	q2 := q.Copy()
	q2.options.Limit = n
	return q2
}

// Provider requests a specific upstream data provider by name.
func (q *CalendarQuery) Provider(p string) *CalendarQuery {
	q2 := q.Copy()
	q2.options.Provider = p
	return q2
}

// Path returns the URL path to add to the base URL.
func (q *CalendarQuery) Path() string {
	return "equity/calendar/ipo"
}

// Values returns the query values for the query. Each call creates a new
// object, so the caller is free to modify it without affecting the query.
func (q *CalendarQuery) Values() url.Values {
	v := make(url.Values)
	if q.status != "" {
		v["status"] = []string{string(q.status)}
	}
	if q.options.Limit != 0 {
		v["limit"] = []string{fmt.Sprintf("%d", q.options.Limit)}
	}
	if q.options.Provider != "" {
		v["provider"] = []string{q.options.Provider}
	}
	return v
}

// calendarPage is the format of a single calendar API response.
type calendarPage struct {
	Results  []Record `json:"results"`
	Provider string   `json:"provider,omitempty"`
}

// TestCalendarPage generates the JSON string in a format as returned by the
// calendar API. For use in tests.
func TestCalendarPage(results []Record, provider string) (string, error) {
	bytes, err := json.Marshal(&calendarPage{
		Results:  results,
		Provider: provider,
	})
	return string(bytes), err
}

// readPage executes the query using the Client from the context and downloads
// the page of data.
func (q *CalendarQuery) readPage(ctx context.Context, page *calendarPage) error {
	client := GetClient(ctx)
	if client == nil {
		return errors.Reason("CalendarQuery.Read: no client in context")
	}
	uri := client.baseURL + "/" + q.Path() + ".json"
	query := q.Values()
	if client.token != "" {
		query["token"] = []string{client.token}
	}

	if err := fetch.FetchJSON(ctx, uri, page, query, nil); err != nil {
		return errors.Annotate(err, "CalendarQuery.Read: failed to fetch URL")
	}
	return nil
}

// RowIterator iterates over query results row by row.
type RowIterator struct {
	context context.Context
	query   *CalendarQuery
	page    calendarPage
	index   int  // the data element for Next() to return
	started bool // if at least one Next call was ever made
}

// newRowIterator creates a new iterator.
func newRowIterator(ctx context.Context, query *CalendarQuery) *RowIterator {
	return &RowIterator{context: ctx, query: query}
}

// Next loads the next row. If there are no more rows, the second value is
// false. Note, that error may be non-nil regardless of the end of iterator.
func (it *RowIterator) Next(row RecordLoader) (bool, error) {
	if it.query == nil {
		return false, nil
	}
	if !it.started {
		it.started = true
		it.page = calendarPage{}
		if err := it.query.readPage(it.context, &it.page); err != nil {
			status := it.query.status
			it.query = nil
			return false, errors.Annotate(err, "failed to query %s IPO calendar",
				status)
		}
		logging.Infof(it.context, "OpenBB: fetched %d %s IPO rows from '%s'",
			len(it.page.Results), it.query.status, it.page.Provider)
	}
	if it.index >= len(it.page.Results) {
		return false, nil
	}
	err := row.Load(it.page.Results[it.index])
	it.index++
	if err != nil {
		return true, errors.Annotate(err, "failed to parse row %d", it.index)
	}
	return true, nil
}

// Read sets up the iterator over the result rows, which will execute the query
// on the first Next call.
func (q *CalendarQuery) Read(ctx context.Context) *RowIterator {
	return newRowIterator(ctx, q)
}

// SystemInfo is the format returned by the system info API.
type SystemInfo struct {
	Version  string `json:"version"`
	Platform string `json:"platform,omitempty"`
}

// FetchSystemInfo obtains the platform's version metadata.
func FetchSystemInfo(ctx context.Context) (*SystemInfo, error) {
	client := GetClient(ctx)
	if client == nil {
		return nil, errors.Reason("no client in context")
	}
	uri := client.baseURL + "/system/info.json"
	query := make(url.Values)
	if client.token != "" {
		query["token"] = []string{client.token}
	}
	var si SystemInfo
	if err := fetch.FetchJSON(ctx, uri, &si, query, nil); err != nil {
		return nil, errors.Annotate(err, "failed to fetch URL")
	}
	return &si, nil
}

// LogSystemInfo fetches and logs the platform's version metadata. It is an
// optional startup hook; its failure never affects subsequent queries.
func LogSystemInfo(ctx context.Context) error {
	si, err := FetchSystemInfo(ctx)
	if err != nil {
		return errors.Annotate(err, "failed to fetch system info")
	}
	logging.Infof(ctx, "OpenBB platform version %s", si.Version)
	return nil
}
