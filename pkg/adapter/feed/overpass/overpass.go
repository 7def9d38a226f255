// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package overpass implements the repo.RoadFeed and repo.FeatureFeed
// interfaces by querying an Overpass API interpreter for the
// OpenStreetMap ways and nodes around a position.
package overpass

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/momeni/navengine/pkg/core/log"
	"github.com/momeni/navengine/pkg/core/model"
	"github.com/paulmach/osm"
)

// DefaultURL is the public Overpass API interpreter endpoint.
const DefaultURL = "https://overpass-api.de/api/interpreter"

// Client queries an Overpass interpreter. It is safe for concurrent
// use.
type Client struct {
	baseURL  string
	hc       *http.Client
	waysTO   int // server side timeout of ways queries, seconds
	nodesTO  int // server side timeout of nodes queries, seconds
	maxBytes int64
}

// Option represents a configuration option of the Client.
type Option func(c *Client) error

// WithHTTPClient replaces the http.DefaultClient.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) error {
		if hc == nil {
			return fmt.Errorf("nil http client")
		}
		c.hc = hc
		return nil
	}
}

// WithServerTimeouts sets the timeouts which are asked from the
// interpreter for the ways and nodes queries. They are further
// lowered to the remaining time of each request context.
func WithServerTimeouts(ways, nodes time.Duration) Option {
	return func(c *Client) error {
		if ways < time.Second || nodes < time.Second {
			return fmt.Errorf("server timeouts must be at least 1s")
		}
		c.waysTO = int(ways / time.Second)
		c.nodesTO = int(nodes / time.Second)
		return nil
	}
}

// New instantiates a Client for the given interpreter URL. An empty
// baseURL selects the DefaultURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		baseURL = DefaultURL
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}
	c := &Client{
		baseURL:  baseURL,
		hc:       http.DefaultClient,
		waysTO:   2,
		nodesTO:  5,
		maxBytes: 16 << 20,
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, fmt.Errorf("invalid option: %w", err)
		}
	}
	return c, nil
}

// element is one entry of the elements array of an Overpass JSON
// response. Ways have no position when they are queried by "out tags".
type element struct {
	Type osm.Type `json:"type"`
	ID   int64    `json:"id"`
	Lat  float64  `json:"lat"`
	Lon  float64  `json:"lon"`
	Tags osm.Tags `json:"tags"`
}

type response struct {
	Elements []element `json:"elements"`
}

// WaysAround implements the repo.RoadFeed interface. It returns all
// highway ways within radius meters of pos, with their tags.
// Filtering and ranking of the ways is left to the caller.
func (c *Client) WaysAround(
	ctx context.Context, pos model.Coordinate, radius float64,
) ([]model.RoadWay, error) {
	q := fmt.Sprintf(
		`[out:json][timeout:%d];way(around:%s,%s,%s)["highway"];out tags;`,
		serverTimeout(ctx, c.waysTO), num(radius),
		num(pos.Lat), num(pos.Lng),
	)
	resp, err := c.query(ctx, q)
	if err != nil {
		return nil, err
	}
	ways := make([]model.RoadWay, 0, len(resp.Elements))
	for _, e := range resp.Elements {
		if e.Type != osm.TypeWay {
			continue
		}
		ways = append(ways, model.RoadWay{
			ID:    int64(osm.WayID(e.ID)),
			Class: model.ParseRoadClass(e.Tags.Find("highway")),
			Name:  e.Tags.Find("name"),
			Tags:  e.Tags.Map(),
		})
	}
	return ways, nil
}

// FeaturesAround implements the repo.FeatureFeed interface. It returns
// the traffic signals and the surveillance or speed cameras which are
// tagged on nodes within radius meters of pos.
func (c *Client) FeaturesAround(
	ctx context.Context, pos model.Coordinate, radius float64,
) ([]model.MapFeature, error) {
	around := fmt.Sprintf(
		"(around:%s,%s,%s)", num(radius), num(pos.Lat), num(pos.Lng),
	)
	q := fmt.Sprintf(
		`[out:json][timeout:%d];(`+
			`node["highway"="traffic_signals"]%[2]s;`+
			`node["man_made"="surveillance"]%[2]s;`+
			`node["highway"="speed_camera"]%[2]s;`+
			`);out body;`,
		serverTimeout(ctx, c.nodesTO), around,
	)
	resp, err := c.query(ctx, q)
	if err != nil {
		return nil, err
	}
	ff := make([]model.MapFeature, 0, len(resp.Elements))
	for _, e := range resp.Elements {
		if e.Type != osm.TypeNode {
			continue
		}
		ft, ok := Classify(e.Tags)
		if !ok {
			continue
		}
		ff = append(ff, model.MapFeature{
			ID:   osm.NodeID(e.ID).FeatureID().String(),
			Lat:  e.Lat,
			Lng:  e.Lon,
			Type: ft,
		})
	}
	return ff, nil
}

// Classify finds the feature type of a node from its tags.
// Surveillance and speed cameras are both reported as cameras.
func Classify(tags osm.Tags) (model.FeatureType, bool) {
	switch {
	case tags.Find("man_made") == "surveillance",
		tags.Find("highway") == "speed_camera":
		return model.FeatureTypeCamera, true
	case tags.Find("highway") == "traffic_signals":
		return model.FeatureTypeTrafficLight, true
	}
	return model.FeatureTypeInvalid, false
}

func (c *Client) query(ctx context.Context, q string) (*response, error) {
	u := c.baseURL + "?data=" + url.QueryEscape(q)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	start := time.Now()
	res, err := c.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("querying overpass: %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(res.Body, 512))
		return nil, fmt.Errorf(
			"overpass returned %d: %s", res.StatusCode,
			strings.TrimSpace(string(msg)),
		)
	}
	resp := &response{}
	dec := json.NewDecoder(io.LimitReader(res.Body, c.maxBytes))
	if err := dec.Decode(resp); err != nil {
		return nil, fmt.Errorf("decoding overpass response: %w", err)
	}
	log.Debug(
		ctx, "overpass query done",
		slog.Int("elements", len(resp.Elements)),
		slog.Duration("took", time.Since(start)),
	)
	return resp, nil
}

// serverTimeout returns def seconds, lowered to the remaining time of
// ctx if it has a closer deadline. At least one second is returned.
func serverTimeout(ctx context.Context, def int) int {
	if dl, ok := ctx.Deadline(); ok {
		rem := int(math.Ceil(time.Until(dl).Seconds()))
		if rem < def {
			def = rem
		}
	}
	return max(def, 1)
}

func num(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
