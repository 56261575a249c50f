// Copyright 2025 Blink Labs Software
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

package main

import (
	"fmt"
	"math"
)

func toUint32s(values []uint) ([]uint32, error) {
	if len(values) == 0 {
		return nil, nil
	}
	ret := make([]uint32, 0, len(values))
	for _, v := range values {
		if v > math.MaxUint32 {
			return nil, fmt.Errorf("value out of range: %d", v)
		}
		ret = append(ret, uint32(v))
	}
	return ret, nil
}

func toUint32(v uint) (uint32, error) {
	if v > math.MaxUint32 {
		return 0, fmt.Errorf("value out of range: %d", v)
	}
	return uint32(v), nil
}
