// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package speeduc

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/momeni/navengine/pkg/core/model"
)

// ZoneLimits holds the implicit limits of the urban and rural zone
// codes of the maxspeed tag, for divided and undivided roads.
type ZoneLimits struct {
	Urban, UrbanDivided int
	Rural, RuralDivided int
}

// DefaultZoneLimits are the Vietnamese implicit limits.
var DefaultZoneLimits = ZoneLimits{
	Urban: 50, UrbanDivided: 60,
	Rural: 80, RuralDivided: 90,
}

// ParseMaxSpeed extracts the speed limit (km/h) of the w way from its
// maxspeed tag. The VN:urban and VN:rural zone codes are mapped using
// zl while considering the divided status of w. Other values are taken
// from their first semicolon-separated alternative after dropping all
// non-digit characters, so a unit suffix is ignored. Missing or
// malformed values and non-positive limits are reported as not ok.
func ParseMaxSpeed(w model.RoadWay, zl ZoneLimits) (limit int, ok bool) {
	ms := w.Tag("maxspeed")
	switch ms {
	case "":
		return 0, false
	case "VN:urban":
		if w.Divided() {
			return zl.UrbanDivided, true
		}
		return zl.Urban, true
	case "VN:rural":
		if w.Divided() {
			return zl.RuralDivided, true
		}
		return zl.Rural, true
	}
	first, _, _ := strings.Cut(ms, ";")
	digits := strings.Map(func(r rune) rune {
		if r < unicode.MaxASCII && unicode.IsDigit(r) {
			return r
		}
		return -1
	}, first)
	v, err := strconv.Atoi(digits)
	if err != nil || v <= 0 {
		return 0, false
	}
	return v, true
}

// SelectWay returns the highest ranked way among the ways which have a
// recognized road class. If several ways have the same rank, the first
// one wins. The ok return value is false if no way is recognized.
func SelectWay(ways []model.RoadWay) (best model.RoadWay, ok bool) {
	for _, w := range ways {
		if !w.Class.Recognized() {
			continue
		}
		if !ok || w.Class.Rank() > best.Class.Rank() {
			best, ok = w, true
		}
	}
	return best, ok
}
