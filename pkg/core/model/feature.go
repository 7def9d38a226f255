// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

import (
	"errors"
	"fmt"
)

// FeatureType specifies the kind of a point feature which is reported
// by the features feed. Although this enum is numeric, it is
// (de)serialized as a string for readability in the adapter layer.
type FeatureType int

// Valid values for the FeatureType enum.
const (
	FeatureTypeInvalid FeatureType = iota // zero value is invalid

	FeatureTypeTrafficLight // traffic signals at an intersection
	FeatureTypeCamera       // speed or surveillance camera
)

// ErrUnknownFeatureType indicates that a given string may not be
// parsed as a valid/known feature type. The invalid string itself is
// not included because the caller of ParseFeatureType knows about it.
var ErrUnknownFeatureType = errors.New("unknown feature type")

// FeatureTypeError indicates an invalid feature type. This error
// contains the invalid type as an integer.
type FeatureTypeError int

// Error implements the error interface, returning a string
// representation of the FeatureTypeError.
func (e FeatureTypeError) Error() string {
	return fmt.Sprintf("invalid feature type: %d", e)
}

// Validate returns nil if FeatureType value is valid. For invalid
// values, an instance of the FeatureTypeError will be returned.
func (ft FeatureType) Validate() error {
	switch ft {
	case FeatureTypeTrafficLight, FeatureTypeCamera:
		return nil
	default:
		return FeatureTypeError(ft)
	}
}

// String converts the FeatureType enum to a string.
// Invalid feature type causes a panic.
func (ft FeatureType) String() string {
	switch ft {
	case FeatureTypeTrafficLight:
		return "traffic_light"
	case FeatureTypeCamera:
		return "camera"
	default:
		panic(FeatureTypeError(ft))
	}
}

// ParseFeatureType parses the given string and returns a FeatureType.
// For invalid strings, FeatureTypeInvalid and ErrUnknownFeatureType
// will be returned.
func ParseFeatureType(s string) (FeatureType, error) {
	switch s {
	case "traffic_light":
		return FeatureTypeTrafficLight, nil
	case "camera":
		return FeatureTypeCamera, nil
	default:
		return FeatureTypeInvalid, ErrUnknownFeatureType
	}
}

// MarshalText implements the encoding.TextMarshaler interface.
func (ft FeatureType) MarshalText() ([]byte, error) {
	if err := ft.Validate(); err != nil {
		return nil, err
	}
	return []byte(ft.String()), nil
}

// UnmarshalText implements the encoding.TextUnmarshaler interface.
func (ft *FeatureType) UnmarshalText(data []byte) error {
	t, err := ParseFeatureType(string(data))
	if err != nil {
		return fmt.Errorf("ParseFeatureType(%q): %w", data, err)
	}
	*ft = t
	return nil
}

// MapFeature is a point feature near the road, such as a traffic light
// or a camera, which is fetched from the features feed. Its ID is
// unique within one feed response.
type MapFeature struct {
	ID   string      `json:"id"`
	Lat  float64     `json:"lat"`
	Lng  float64     `json:"lng"`
	Type FeatureType `json:"type"`
}

// Coordinate returns the location of the f feature.
func (f MapFeature) Coordinate() Coordinate {
	return Coordinate{Lat: f.Lat, Lng: f.Lng}
}

// NearestFeature reports the closest known feature and its distance
// (in meters) from the current vehicle position.
type NearestFeature struct {
	ID       string      `json:"id"`
	Type     FeatureType `json:"type"`
	Distance float64     `json:"distance"`
}
