// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package model defines the inner most layer of the Clean Architecture
// containing the navigation entities, such as coordinates, paths,
// speed markers, and map features.
// This layer may not depend on outter layers, while all other layers
// may depend on it.
// By the way, it is acceptable to annotate structs in this package with
// serialization tags since adding more tags does not complicate the
// definition of a struct, but can prevent unnecessary structs
// duplication in the adapters layer.
package model

import (
	"fmt"
	"math"
)

// Coordinate represents a geographical location with a latitude and
// longitude in degrees (WGS-84). Coordinates are not validated by
// the core layer and out-of-range values flow through the geodesy
// functions with their natural (possibly meaningless) results.
type Coordinate struct {
	Lat float64 `json:"lat"` // latitude in degrees
	Lng float64 `json:"lng"` // longitude in degrees
}

// IsNaN reports whether any component of c is not a number.
func (c Coordinate) IsNaN() bool {
	return math.IsNaN(c.Lat) || math.IsNaN(c.Lng)
}

func (c Coordinate) String() string {
	return fmt.Sprintf("(%.6f, %.6f)", c.Lat, c.Lng)
}
