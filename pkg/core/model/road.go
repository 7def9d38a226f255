// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

// RoadClass is the functional class of a road way, as reported by the
// highway tag of the road attributes feed. Classes which are not
// relevant for driving (e.g., footway or cycleway) are represented
// by RoadClassUnknown.
type RoadClass int

// Valid values for the RoadClass enum. Larger values do not imply a
// higher rank; use the Rank method for ordering.
const (
	RoadClassUnknown RoadClass = iota
	RoadClassMotorway
	RoadClassTrunk
	RoadClassPrimary
	RoadClassSecondary
	RoadClassTertiary
	RoadClassResidential
	RoadClassUnclassified
)

var roadClassNames = map[string]RoadClass{
	"motorway":     RoadClassMotorway,
	"trunk":        RoadClassTrunk,
	"primary":      RoadClassPrimary,
	"secondary":    RoadClassSecondary,
	"tertiary":     RoadClassTertiary,
	"residential":  RoadClassResidential,
	"unclassified": RoadClassUnclassified,
}

// ParseRoadClass converts a highway tag value to a RoadClass.
// Unrecognized values are returned as RoadClassUnknown.
func ParseRoadClass(highway string) RoadClass {
	return roadClassNames[highway]
}

// Recognized reports whether rc is one of the drivable classes which
// may be selected by the speed limit resolver.
func (rc RoadClass) Recognized() bool {
	return rc != RoadClassUnknown
}

// Rank returns the priority of rc when several ways are found around
// a position. A higher rank is preferred. The unclassified roads have
// the lowest rank among the recognized classes.
func (rc RoadClass) Rank() int {
	switch rc {
	case RoadClassMotorway:
		return 10
	case RoadClassTrunk:
		return 9
	case RoadClassPrimary:
		return 8
	case RoadClassSecondary:
		return 7
	case RoadClassTertiary:
		return 6
	case RoadClassResidential:
		return 5
	default:
		return 0
	}
}

func (rc RoadClass) String() string {
	for name, c := range roadClassNames {
		if c == rc {
			return name
		}
	}
	return "unknown"
}

// RoadWay is a tagged road segment which is reported by the road
// attributes feed around some position. Tags hold the raw key/value
// attributes of the way, such as maxspeed, oneway, and
// dual_carriageway. Tag values may be malformed.
type RoadWay struct {
	ID    int64
	Class RoadClass
	Name  string
	Tags  map[string]string
}

// Tag returns the value of the k tag, or an empty string if it is
// missing.
func (w RoadWay) Tag(k string) string {
	return w.Tags[k]
}

// Divided reports whether the w way is a divided road, i.e., it is
// tagged as a dual carriageway or as a oneway road.
func (w RoadWay) Divided() bool {
	return w.Tag("dual_carriageway") == "yes" || w.Tag("oneway") == "yes"
}
