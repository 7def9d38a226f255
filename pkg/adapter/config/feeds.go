// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package config

import (
	"net/http"

	"github.com/momeni/navengine/pkg/adapter/feed/osrm"
	"github.com/momeni/navengine/pkg/adapter/feed/overpass"
)

// Feeds contains the addresses of the external services. Empty URLs
// select the public OpenStreetMap services.
type Feeds struct {
	OverpassURL string `yaml:"overpass-url" validate:"omitempty,url"`
	OSRMURL     string `yaml:"osrm-url" validate:"omitempty,url"`
}

// NewOverpass instantiates the road attributes and features client.
func (f Feeds) NewOverpass() (*overpass.Client, error) {
	return overpass.New(f.OverpassURL)
}

// NewRouter instantiates the routing client.
func (f Feeds) NewRouter() *osrm.Client {
	return osrm.New(f.OSRMURL, http.DefaultClient)
}
