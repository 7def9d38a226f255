// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package osrm_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/momeni/navengine/pkg/adapter/feed/osrm"
	"github.com/momeni/navengine/pkg/core/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serve(t *testing.T, status int, body string) (*osrm.Client, *string) {
	t.Helper()
	var path string
	srv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			path = r.URL.Path + "?" + r.URL.RawQuery
			w.WriteHeader(status)
			_, _ = w.Write([]byte(body))
		},
	))
	t.Cleanup(srv.Close)
	return osrm.New(srv.URL+"/", srv.Client()), &path
}

func TestRoute(t *testing.T) {
	c, p := serve(t, http.StatusOK, `{"code":"Ok","routes":[
	  {"distance":1234.5,"duration":100,"geometry":{"type":"LineString",
	    "coordinates":[[106.70,10.77],[106.71,10.78]]}},
	  {"distance":2000,"duration":200,"geometry":{"type":"LineString",
	    "coordinates":[[1,2]]}}]}`)
	path, err := c.Route(
		context.Background(),
		model.Coordinate{Lat: 10.77, Lng: 106.7},
		model.Coordinate{Lat: 10.78, Lng: 106.71},
	)
	require.NoError(t, err)
	assert.Equal(t, model.Path{
		{Lat: 10.77, Lng: 106.70},
		{Lat: 10.78, Lng: 106.71},
	}, path, "the first route is taken and coordinates are swapped")
	assert.Equal(t,
		"/route/v1/driving/106.7,10.77;106.71,10.78"+
			"?overview=full&geometries=geojson&alternatives=true&steps=true",
		*p,
	)
}

func TestNoRoute(t *testing.T) {
	c, _ := serve(t, http.StatusBadRequest,
		`{"code":"NoRoute","message":"Impossible route"}`)
	_, err := c.Route(context.Background(), model.Coordinate{}, model.Coordinate{})
	assert.ErrorIs(t, err, osrm.ErrNoRoute)

	c, _ = serve(t, http.StatusOK, `{"code":"Ok","routes":[]}`)
	_, err = c.Route(context.Background(), model.Coordinate{}, model.Coordinate{})
	assert.ErrorIs(t, err, osrm.ErrNoRoute)
}

func TestServerErrors(t *testing.T) {
	c, _ := serve(t, http.StatusBadGateway, "<html>bad gateway</html>")
	_, err := c.Route(context.Background(), model.Coordinate{}, model.Coordinate{})
	assert.ErrorContains(t, err, "502")

	c, _ = serve(t, http.StatusBadRequest,
		`{"code":"InvalidQuery","message":"bad coordinates"}`)
	_, err = c.Route(context.Background(), model.Coordinate{}, model.Coordinate{})
	assert.ErrorContains(t, err, "InvalidQuery")
	assert.NotErrorIs(t, err, osrm.ErrNoRoute)
}
