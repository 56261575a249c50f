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

package models

import "github.com/blinklabs-io/gouroboros/cbor"

// IdGenerator is a counter handing out ids for one namespace, optionally
// scoped to a subject code
type IdGenerator struct {
	cbor.StructAsArray
	Namespace          string
	SubjectCode        uint32
	Scoped             bool
	SmallerIdAvailable uint32
}

// SystemInitialization is the singleton flag set once by InitializeSystem
type SystemInitialization struct {
	cbor.StructAsArray
	Initialized bool
}
