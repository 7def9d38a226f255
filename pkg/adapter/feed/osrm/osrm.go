// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package osrm implements the repo.Router interface using the route
// service of an OSRM server.
package osrm

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"github.com/momeni/navengine/pkg/core/log"
	"github.com/momeni/navengine/pkg/core/model"
	"github.com/paulmach/orb"
)

// DefaultURL is the public OSRM demo server.
const DefaultURL = "https://router.project-osrm.org"

// ErrNoRoute indicates that the server found no route between the
// requested positions.
var ErrNoRoute = errors.New("no route found")

// Client asks an OSRM server for driving routes.
type Client struct {
	baseURL string
	hc      *http.Client
}

// New instantiates a Client. An empty baseURL selects DefaultURL and
// a nil hc selects the http.DefaultClient.
func New(baseURL string, hc *http.Client) *Client {
	if baseURL == "" {
		baseURL = DefaultURL
	}
	if hc == nil {
		hc = http.DefaultClient
	}
	return &Client{baseURL: strings.TrimSuffix(baseURL, "/"), hc: hc}
}

type routeResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Routes  []struct {
		Distance float64 `json:"distance"`
		Duration float64 `json:"duration"`
		Geometry struct {
			Type        string         `json:"type"`
			Coordinates orb.LineString `json:"coordinates"`
		} `json:"geometry"`
	} `json:"routes"`
}

// Route implements the repo.Router interface. The geometry of the
// first (preferred) route is returned.
func (c *Client) Route(
	ctx context.Context, from, to model.Coordinate,
) (model.Path, error) {
	u := fmt.Sprintf(
		"%s/route/v1/driving/%s,%s;%s,%s"+
			"?overview=full&geometries=geojson&alternatives=true&steps=true",
		c.baseURL, num(from.Lng), num(from.Lat), num(to.Lng), num(to.Lat),
	)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	res, err := c.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("querying osrm: %w", err)
	}
	defer res.Body.Close()
	body, err := io.ReadAll(io.LimitReader(res.Body, 32<<20))
	if err != nil {
		return nil, fmt.Errorf("reading osrm response: %w", err)
	}
	rr := &routeResponse{}
	if err := json.Unmarshal(body, rr); err != nil {
		if res.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("osrm returned %d", res.StatusCode)
		}
		return nil, fmt.Errorf("decoding osrm response: %w", err)
	}
	switch {
	case rr.Code == "NoRoute", rr.Code == "Ok" && len(rr.Routes) == 0:
		return nil, ErrNoRoute
	case rr.Code != "Ok":
		return nil, fmt.Errorf("osrm returned %q: %s", rr.Code, rr.Message)
	}
	r := rr.Routes[0]
	path := make(model.Path, 0, len(r.Geometry.Coordinates))
	for _, p := range r.Geometry.Coordinates {
		path = append(path, model.Coordinate{Lat: p.Lat(), Lng: p.Lon()})
	}
	if len(path) == 0 {
		return nil, ErrNoRoute
	}
	log.Info(
		ctx, "route planned",
		slog.Int("points", len(path)),
		slog.Float64("distance", r.Distance),
		slog.Float64("duration", r.Duration),
	)
	return path, nil
}

func num(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
