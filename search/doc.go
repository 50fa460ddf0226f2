// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package search answers schedule and announcement queries.
//
// A Searcher runs each query through three stages:
//   - parsing the query into a predicate (package query)
//   - exact filtering of the table rows (package filter)
//   - an arbiter that either returns the filtered rows directly or ranks
//     them by meaning through an ai.Ranker
//
// The assembler then shapes matched rows into result records, removes
// duplicates and substitutes the "no result" sentinel for an empty outcome.
package search
