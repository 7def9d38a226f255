// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package repo

import (
	"context"

	"github.com/momeni/navengine/pkg/core/model"
)

// Markers persists the whole speed markers collection as one record.
// Load returns the markers in their insertion order. A missing or
// unreadable record is reported as an empty collection alongside a
// non-nil error, so callers may log the error and go on.
type Markers interface {
	Load(ctx context.Context) ([]model.SpeedMarker, error)
	Save(ctx context.Context, markers []model.SpeedMarker) error
}
