// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

// AlertKind identifies a one-shot notification which is emitted by the
// navigation engine and may be announced by the presentation layer.
type AlertKind string

// Known alert kinds.
const (
	AlertFeatureApproach   AlertKind = "feature_approach"
	AlertSpeedLimitLowered AlertKind = "speed_limit_lowered"
)

// Alert is a one-shot notification. Feature is set for the feature
// approach alerts and SpeedLimit is set for the speed limit lowered
// alerts.
type Alert struct {
	Kind       AlertKind       `json:"kind"`
	Feature    *NearestFeature `json:"feature,omitempty"`
	SpeedLimit *int            `json:"speedLimit,omitempty"`
}
