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

// Package openbb implements the IPO calendar API of the OpenBB Platform.
//
// The calendar endpoints return a list of JSON records, one per IPO. Each
// record is a field-name to value mapping whose exact field set depends on the
// upstream data provider; row types in this package load only the fields they
// declare and ignore the rest. A missing declared field is an error, since the
// caller can no longer produce its fixed-column table.
//
// The client is carried in the context (see UseClient), which keeps the query
// builders free of connection state and makes the HTTP layer trivially
// mockable in tests.
package openbb
