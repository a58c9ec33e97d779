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

package history

import "errors"

var (
	// ErrStoreRequired indicates that no key/value store was supplied.
	ErrStoreRequired = errors.New("key/value store is required")

	// ErrInvalidKey indicates an empty storage key.
	ErrInvalidKey = errors.New("history key must not be empty")
)
