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

import (
	"fmt"

	"github.com/blinklabs-io/gouroboros/cbor"
)

// SubjectCourse is the academic year a subject is taught in
type SubjectCourse uint8

const (
	SubjectCourseNotDefined SubjectCourse = iota
	SubjectCourseFirst
	SubjectCourseSecond
	SubjectCourseThird
	SubjectCourseFourth
	SubjectCourseFifth
	SubjectCourseSixth
	SubjectCourseSeventh
	SubjectCourseEighth
	SubjectCourseNinth
)

var subjectCourseNames = []string{
	"NotDefined",
	"First",
	"Second",
	"Third",
	"Fourth",
	"Fifth",
	"Sixth",
	"Seventh",
	"Eighth",
	"Ninth",
}

func (c SubjectCourse) String() string {
	if int(c) < len(subjectCourseNames) {
		return subjectCourseNames[c]
	}
	return fmt.Sprintf("unknown(%d)", uint8(c))
}

// Valid reports whether the course is one of the known values
func (c SubjectCourse) Valid() bool {
	return int(c) < len(subjectCourseNames)
}

// ParseSubjectCourse returns the course for its name
func ParseSubjectCourse(s string) (SubjectCourse, error) {
	for idx, name := range subjectCourseNames {
		if name == s {
			return SubjectCourse(idx), nil //nolint:gosec // bounded by table size
		}
	}
	return 0, fmt.Errorf("unknown subject course: %s", s)
}

type Faculty struct {
	cbor.StructAsArray
	ID   uint32
	Name string
}

type Degree struct {
	cbor.StructAsArray
	ID        uint32
	Name      string
	FacultyID uint32
}

type Specialty struct {
	cbor.StructAsArray
	ID       uint32
	Name     string
	DegreeID uint32
}

// Subject is a course unit identified by a numeric code. Professors and
// Students hold role ids and fix the proposal quorum for the subject
type Subject struct {
	cbor.StructAsArray
	ID          uint32
	Name        string
	DegreeID    uint32
	SpecialtyID uint32
	Course      SubjectCourse
	Code        uint32
	Reference   string
	Professors  []uint32
	Students    []uint32
}

// CodeSubjectRelation maps subject codes to subject ids as two parallel lists
type CodeSubjectRelation struct {
	cbor.StructAsArray
	Codes      []uint32
	SubjectIDs []uint32
}

// SubjectID returns the subject id registered for the code
func (r *CodeSubjectRelation) SubjectID(code uint32) (uint32, bool) {
	for idx, tmpCode := range r.Codes {
		if tmpCode == code && idx < len(r.SubjectIDs) {
			return r.SubjectIDs[idx], true
		}
	}
	return 0, false
}

// Add registers a code. It returns false if the code is already present
func (r *CodeSubjectRelation) Add(code uint32, subjectID uint32) bool {
	if _, ok := r.SubjectID(code); ok {
		return false
	}
	r.Codes = append(r.Codes, code)
	r.SubjectIDs = append(r.SubjectIDs, subjectID)
	return true
}
