// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package markersrs realizes the speed markers resource, allowing the
// user-taught speed limits to be saved, listed, cleared, and queried
// and the speed limit of a position to be resolved on demand.
package markersrs

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/momeni/navengine/pkg/adapter/restful/gin/serdser"
	"github.com/momeni/navengine/pkg/core/cerr"
	"github.com/momeni/navengine/pkg/core/model"
	"github.com/momeni/navengine/pkg/core/usecase/memoryuc"
	"github.com/momeni/navengine/pkg/core/usecase/naviuc"
	"github.com/momeni/navengine/pkg/core/usecase/speeduc"
)

// ErrNoMarker indicates that no marker applies to a queried position.
var ErrNoMarker = errors.New("no speed marker nearby")

type resource struct {
	memory *memoryuc.UseCase
	speed  *speeduc.UseCase
	engine *naviuc.Engine
}

// Register instantiates a resource adapting the speed memory, speed
// limit, and navigation use cases with the relevant REST APIs:
//  1. POST request to /api/naveng/v1/speed-markers
//     in order to teach a speed limit at a given or current position,
//  2. GET request to /api/naveng/v1/speed-markers
//     in order to list the markers,
//  3. DELETE request to /api/naveng/v1/speed-markers
//     in order to clear the markers,
//  4. GET request to /api/naveng/v1/speed-markers/nearby
//     in order to find the marker which applies to a position,
//  5. GET request to /api/naveng/v1/speed-limit
//     in order to resolve the speed limit of a position.
func Register(
	r *gin.RouterGroup,
	memory *memoryuc.UseCase,
	speed *speeduc.UseCase,
	engine *naviuc.Engine,
) {
	rs := &resource{memory: memory, speed: speed, engine: engine}
	r.POST("speed-markers", rs.TeachMarker)
	r.GET("speed-markers", rs.ListMarkers)
	r.DELETE("speed-markers", rs.ClearMarkers)
	r.GET("speed-markers/nearby", rs.FindNearbyMarker)
	r.GET("speed-limit", rs.ResolveSpeedLimit)
}

func (rs *resource) TeachMarker(c *gin.Context) {
	req := rs.DserTeachReq(c)
	if req == nil {
		return
	}
	var m *model.SpeedMarker
	var err error
	if req.Pos == nil {
		m, err = rs.engine.Teach(c, req.Speed)
	} else {
		m, err = rs.memory.Save(c, *req.Pos, req.Heading, req.Speed, req.RoadName)
	}
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, m)
}

func (rs *resource) ListMarkers(c *gin.Context) {
	c.JSON(http.StatusOK, rs.memory.List(c))
}

func (rs *resource) ClearMarkers(c *gin.Context) {
	if err := rs.memory.Clear(c); err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (rs *resource) FindNearbyMarker(c *gin.Context) {
	req := rs.DserPositionQuery(c)
	if req == nil {
		return
	}
	m := rs.memory.FindNearby(c, req.Pos, req.Heading)
	if m == nil {
		serdser.SerErr(c, cerr.NotFound(ErrNoMarker))
		return
	}
	c.JSON(http.StatusOK, m)
}

func (rs *resource) ResolveSpeedLimit(c *gin.Context) {
	req := rs.DserPositionQuery(c)
	if req == nil {
		return
	}
	c.JSON(http.StatusOK, rs.speed.Resolve(c, req.Pos, req.Heading))
}
