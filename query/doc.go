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


// Package query turns free-text Korean questions into structured predicates.
//
// Two parsers exist, one per dataset kind:
//   - ParseTodo extracts a date, an hour and a topic keyword for the schedule table
//   - ParseAnnouncement extracts a category keyword and a date for the announcement table
//
// Parsing never fails. Every extraction step independently falls back to
// "absent" when its pattern does not match or the matched value is out of range.
package query
