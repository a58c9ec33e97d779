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

package storage

import (
	"encoding/json"
	"fmt"
)

// MarshalQueries serializes a query list as a JSON array of strings.
// A nil list is written as an empty array.
func MarshalQueries(queries []string) ([]byte, error) {
	if queries == nil {
		queries = []string{}
	}
	data, err := json.Marshal(queries)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	return data, nil
}

// UnmarshalQueries deserializes a JSON array of strings.
// Anything else, including arrays holding non-string elements, is an error.
func UnmarshalQueries(data []byte) ([]string, error) {
	var queries []string
	if err := json.Unmarshal(data, &queries); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	if queries == nil {
		queries = []string{}
	}
	return queries, nil
}
