// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

import "errors"

// ViewMode specifies how the map should be oriented by the
// presentation layer. Changing the view mode never changes the
// computed display heading.
type ViewMode int

// Valid values for the ViewMode enum, in their cycling order.
const (
	ViewModeNorthUp ViewMode = iota
	ViewModeHeadingUp
	ViewModeOverview

	viewModesCount
)

// ErrUnknownViewMode indicates that a given string may not be parsed
// as a valid/known view mode.
var ErrUnknownViewMode = errors.New("unknown view mode")

// Next returns the view mode which follows vm in the
// north_up, heading_up, overview cycle.
func (vm ViewMode) Next() ViewMode {
	return (vm + 1) % viewModesCount
}

func (vm ViewMode) String() string {
	switch vm {
	case ViewModeNorthUp:
		return "north_up"
	case ViewModeHeadingUp:
		return "heading_up"
	case ViewModeOverview:
		return "overview"
	default:
		return "invalid"
	}
}

// ParseViewMode parses the given string and returns a ViewMode.
func ParseViewMode(s string) (ViewMode, error) {
	for vm := ViewModeNorthUp; vm < viewModesCount; vm++ {
		if vm.String() == s {
			return vm, nil
		}
	}
	return ViewModeNorthUp, ErrUnknownViewMode
}

// MarshalText implements the encoding.TextMarshaler interface.
func (vm ViewMode) MarshalText() ([]byte, error) {
	return []byte(vm.String()), nil
}

// UnmarshalText implements the encoding.TextUnmarshaler interface.
func (vm *ViewMode) UnmarshalText(data []byte) error {
	v, err := ParseViewMode(string(data))
	if err != nil {
		return err
	}
	*vm = v
	return nil
}
