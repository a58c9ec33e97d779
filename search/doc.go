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


// Package search provides in-memory ranked search over a documentation corpus.
//
// The Engine type runs a single-pass pipeline for every query:
//   - Filtering with a lenient fuzzy matcher (substring, then in-order subsequence)
//   - Scoring by title match strength plus capped content frequency
//   - Stable descending sort and truncation to MaxResults
//   - Excerpt extraction around the first query occurrence
//
// Search is a pure function of the query and the corpus snapshot taken at
// construction, so results may be memoized in an LRU cache without changing
// what callers observe.
package search
