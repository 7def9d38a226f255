// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package cerr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/momeni/navengine/pkg/core/cerr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorChain(t *testing.T) {
	base := errors.New("no active session")
	err := fmt.Errorf("snapshot: %w", cerr.Conflict(base))
	var ce *cerr.Error
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, http.StatusConflict, ce.HTTPStatusCode)
	assert.ErrorIs(t, err, base)
	assert.Equal(t, "snapshot: [409] no active session", err.Error())
}
