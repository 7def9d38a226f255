// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

import (
	"errors"
	"fmt"
)

// LimitSource reports which tier of the speed limit resolution has
// produced a ResolvedSpeedLimit. The zero value LimitSourceNone means
// that no tier could decide about the limit.
type LimitSource int

// Valid values for the LimitSource enum.
const (
	LimitSourceNone     LimitSource = iota // unknown, serialized as null
	LimitSourceUser                        // a user-taught speed marker
	LimitSourceRegistry                    // the known roads registry
	LimitSourceOSM                         // the maxspeed tag of a way
)

// ErrUnknownLimitSource indicates that a given string may not be
// parsed as a valid/known limit source.
var ErrUnknownLimitSource = errors.New("unknown limit source")

// String converts the LimitSource enum to a string.
// The LimitSourceNone is converted to an empty string.
func (ls LimitSource) String() string {
	switch ls {
	case LimitSourceUser:
		return "user"
	case LimitSourceRegistry:
		return "registry"
	case LimitSourceOSM:
		return "osm"
	case LimitSourceNone:
		return ""
	default:
		panic(fmt.Sprintf("invalid limit source: %d", int(ls)))
	}
}

// ParseLimitSource parses the given string and returns a LimitSource.
// Both of the empty and "null" strings are parsed as LimitSourceNone.
func ParseLimitSource(s string) (LimitSource, error) {
	switch s {
	case "user":
		return LimitSourceUser, nil
	case "registry":
		return LimitSourceRegistry, nil
	case "osm":
		return LimitSourceOSM, nil
	case "", "null":
		return LimitSourceNone, nil
	default:
		return LimitSourceNone, ErrUnknownLimitSource
	}
}

// MarshalJSON serializes ls as a JSON string, or null for
// the LimitSourceNone value.
func (ls LimitSource) MarshalJSON() ([]byte, error) {
	if ls == LimitSourceNone {
		return []byte("null"), nil
	}
	return []byte(`"` + ls.String() + `"`), nil
}

// UnmarshalJSON is the inverse of the MarshalJSON method.
func (ls *LimitSource) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	v, err := ParseLimitSource(s)
	if err != nil {
		return fmt.Errorf("ParseLimitSource(%q): %w", s, err)
	}
	*ls = v
	return nil
}

// ResolvedSpeedLimit is the outcome of one speed limit resolution.
// A nil Value means that the limit is unknown; no default is ever
// substituted for it. In that case, Source is LimitSourceNone.
// RoadName is the name of the selected road way (if any) and may be
// empty even when a limit is known.
type ResolvedSpeedLimit struct {
	Value    *int        `json:"value"`  // km/h
	Source   LimitSource `json:"source"` // which tier decided
	RoadName string      `json:"roadName,omitempty"`
}

// Known reports whether the r speed limit carries a value.
func (r ResolvedSpeedLimit) Known() bool {
	return r.Value != nil
}

// UnknownSpeedLimit returns a ResolvedSpeedLimit with no value, while
// keeping the given road name (which may be empty).
func UnknownSpeedLimit(roadName string) ResolvedSpeedLimit {
	return ResolvedSpeedLimit{RoadName: roadName}
}

// KnownSpeedLimit returns a ResolvedSpeedLimit with the given value
// and source.
func KnownSpeedLimit(
	value int, src LimitSource, roadName string,
) ResolvedSpeedLimit {
	return ResolvedSpeedLimit{Value: &value, Source: src, RoadName: roadName}
}
