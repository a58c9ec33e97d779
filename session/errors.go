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

package session

import "errors"

var (
	// ErrSearcherRequired indicates that no search engine was supplied.
	ErrSearcherRequired = errors.New("searcher is required")

	// ErrHistoryRequired indicates that no recent query store was supplied.
	ErrHistoryRequired = errors.New("recent query store is required")

	// ErrInvalidKeyMap indicates a key map without a toggle binding.
	ErrInvalidKeyMap = errors.New("key map must bind toggle")
)
