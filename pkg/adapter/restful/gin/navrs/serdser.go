// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package navrs

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/momeni/navengine/pkg/adapter/restful/gin/serdser"
	"github.com/momeni/navengine/pkg/core/model"
	"github.com/momeni/navengine/pkg/core/usecase/naviuc"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// Coordinate is the JSON form of a position which is validated by the
// gin-gonic binding.
type Coordinate struct {
	Lat *float64 `json:"lat" form:"lat" binding:"required,latitude"`
	Lng *float64 `json:"lng" form:"lng" binding:"required,longitude"`
}

// ToModel converts c to a model.Coordinate. It must be called after a
// successful validation.
func (c Coordinate) ToModel() model.Coordinate {
	return model.Coordinate{Lat: *c.Lat, Lng: *c.Lng}
}

type rawStartReq struct {
	Path []Coordinate `json:"path" binding:"omitempty,dive"`
	From *Coordinate  `json:"from"`
	To   *Coordinate  `json:"to"`
}

type startReq struct {
	Path     model.Path
	From, To *model.Coordinate
}

func (rs *resource) DserStartReq(c *gin.Context) *startReq {
	req := &rawStartReq{}
	if ok := serdser.Bind(c, req, binding.JSON); !ok {
		return nil
	}
	var errs map[string][]string
	defer func() {
		if errs != nil {
			c.JSON(http.StatusBadRequest, errs)
		}
	}()
	val := &startReq{}
	routed := req.From != nil || req.To != nil
	if !serdser.Assert(&errs, !routed || (req.From != nil && req.To != nil),
		"from/to", "Both of from and to are required for routing.") {
		return nil
	}
	if !serdser.Assert(&errs, !routed || len(req.Path) == 0,
		"path", "The path must not be combined with from/to.") {
		return nil
	}
	if routed {
		from, to := req.From.ToModel(), req.To.ToModel()
		val.From, val.To = &from, &to
		return val
	}
	val.Path = make(model.Path, 0, len(req.Path))
	for _, p := range req.Path {
		val.Path = append(val.Path, p.ToModel())
	}
	return val
}

type rawLocationReq struct {
	Coordinate
	Speed     *float64   `json:"speed"`
	Heading   *float64   `json:"heading" binding:"omitempty,gte=0,lt=360"`
	Accuracy  *float64   `json:"accuracy" binding:"omitempty,gte=0"`
	Timestamp *time.Time `json:"timestamp"`
	Simulated bool       `json:"simulated"`
}

type locationReq struct {
	Sample    model.LocationSample
	Simulated bool
}

func (rs *resource) DserLocationReq(c *gin.Context) *locationReq {
	req := &rawLocationReq{}
	if ok := serdser.Bind(c, req, binding.JSON); !ok {
		return nil
	}
	ts := time.Now()
	if req.Timestamp != nil {
		ts = *req.Timestamp
	}
	return &locationReq{
		Sample: model.LocationSample{
			Coordinate: req.ToModel(),
			Speed:      req.Speed,
			Heading:    req.Heading,
			Accuracy:   req.Accuracy,
			Timestamp:  ts,
		},
		Simulated: req.Simulated,
	}
}

// SerRoute exports the route and the map features of the snap as a
// GeoJSON feature collection. Route parts are LineString features with
// a "part" property (traveled or remaining), the vehicle position is a
// Point with the "position" part, and the map features are Points
// carrying their "id" and "type" properties.
func SerRoute(snap naviuc.Snapshot) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	if rt := snap.Route; rt != nil {
		for _, part := range []struct {
			name string
			path model.Path
		}{
			{"traveled", rt.TraveledPath},
			{"remaining", rt.RemainingPath},
		} {
			if len(part.path) < 2 {
				continue
			}
			f := geojson.NewFeature(lineString(part.path))
			f.Properties["part"] = part.name
			fc.Append(f)
		}
	}
	if p := snap.Position; p != nil {
		f := geojson.NewFeature(point(*p))
		f.Properties["part"] = "position"
		f.Properties["heading"] = snap.Heading
		fc.Append(f)
	}
	for _, mf := range snap.Features {
		f := geojson.NewFeature(point(mf.Coordinate()))
		f.Properties["id"] = mf.ID
		f.Properties["type"] = mf.Type.String()
		fc.Append(f)
	}
	return fc
}

func point(c model.Coordinate) orb.Point {
	return orb.Point{c.Lng, c.Lat}
}

func lineString(p model.Path) orb.LineString {
	ls := make(orb.LineString, 0, len(p))
	for _, c := range p {
		ls = append(ls, point(c))
	}
	return ls
}
