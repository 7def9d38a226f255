// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package command

import (
	"testing"

	"github.com/momeni/navengine/pkg/core/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCoord(t *testing.T) {
	c, err := ParseCoord("10.7769, 106.7009")
	require.NoError(t, err)
	assert.Equal(t, model.Coordinate{Lat: 10.7769, Lng: 106.7009}, c)

	for _, s := range []string{"", "1", "1,2,3", "x,2", "91,0", "0,181"} {
		_, err := ParseCoord(s)
		assert.Error(t, err, s)
	}
}
