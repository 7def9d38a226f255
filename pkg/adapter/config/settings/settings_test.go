// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package settings_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/momeni/navengine/pkg/adapter/config/settings"
	"github.com/stretchr/testify/assert"
)

func ExampleDuration_Marshal() {
	for _, d := range []time.Duration{
		0, 90 * time.Minute, 2 * time.Hour, 1500 * time.Millisecond,
	} {
		sd := settings.Duration(d)
		fmt.Println(*sd.Marshal())
	}
	var nd *settings.Duration
	fmt.Println(nd.Marshal() == nil, nd.LogValue())
	// Output:
	// 0s
	// 1h30m
	// 2h
	// 1.5s
	// true nil-duration
}

func TestVerifyRange(t *testing.T) {
	lo, hi := 1.0, 10.0
	var missing *float64
	assert.Nil(t, settings.VerifyRange(&missing, &lo, &hi))

	v := 20.0
	pv := &v
	err := settings.VerifyRange(&pv, &lo, &hi)
	if assert.NotNil(t, err) {
		assert.False(t, err.LessThanMin)
		assert.Equal(t, 20.0, *err.Value)
	}
	assert.Equal(t, hi, *pv, "value is clamped to max")

	v = 0.5
	err = settings.VerifyRange(&pv, &lo, &hi)
	if assert.NotNil(t, err) {
		assert.True(t, err.LessThanMin)
	}
	assert.Equal(t, lo, *pv)

	err = settings.VerifyRange(&pv, &hi, &lo)
	if assert.NotNil(t, err) {
		assert.True(t, err.InvalidRange)
	}
}

func TestNilInitializers(t *testing.T) {
	var b *bool
	settings.Nil2Zero(&b)
	if assert.NotNil(t, b) {
		assert.False(t, *b)
	}
	yes := true
	settings.OverwriteNil(&b, &yes)
	assert.False(t, *b, "non-nil values are kept")

	var c *bool
	settings.OverwriteNil(&c, &yes)
	assert.True(t, *c)
	yes = false
	assert.True(t, *c, "the source value is copied")
}
