// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package navrs realizes the navigation resource, allowing the
// navigation sessions to be started and stopped, the location samples
// to be fed, and the navigation snapshots to be fetched through the
// REST APIs which are delegated to the navigation engine.
package navrs

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/momeni/navengine/pkg/adapter/restful/gin/serdser"
	"github.com/momeni/navengine/pkg/core/cerr"
	"github.com/momeni/navengine/pkg/core/repo"
	"github.com/momeni/navengine/pkg/core/usecase/naviuc"
)

type resource struct {
	engine *naviuc.Engine
	router repo.Router
}

// Register instantiates a resource adapting the navigation engine
// with the relevant REST APIs including:
//  1. POST request to /api/naveng/v1/navigation
//     in order to start a session along a path, a routed trip, or a
//     free drive,
//  2. DELETE request to /api/naveng/v1/navigation
//     in order to stop the active session,
//  3. POST request to /api/naveng/v1/locations
//     in order to apply one location sample,
//  4. GET request to /api/naveng/v1/snapshot
//     in order to fetch the current navigation snapshot,
//  5. GET request to /api/naveng/v1/route.geojson
//     in order to export the traveled and remaining route parts,
//  6. POST request to /api/naveng/v1/view-mode
//     in order to cycle the map view mode.
//
// The router may be nil, then only explicit paths are accepted.
func Register(r *gin.RouterGroup, engine *naviuc.Engine, router repo.Router) {
	rs := &resource{engine: engine, router: router}
	r.POST("navigation", rs.StartNavigation)
	r.DELETE("navigation", rs.StopNavigation)
	r.POST("locations", rs.UpdateLocation)
	r.GET("snapshot", rs.FetchSnapshot)
	r.GET("route.geojson", rs.ExportRoute)
	r.POST("view-mode", rs.CycleViewMode)
}

func (rs *resource) StartNavigation(c *gin.Context) {
	req := rs.DserStartReq(c)
	if req == nil {
		return
	}
	path := req.Path
	if req.From != nil {
		if rs.router == nil {
			serdser.SerErr(c, cerr.BadRequest(
				fmt.Errorf("routing is not configured"),
			))
			return
		}
		p, err := rs.router.Route(c, *req.From, *req.To)
		if err != nil {
			serdser.SerErr(c, cerr.BadGateway(
				fmt.Errorf("planning route: %w", err),
			))
			return
		}
		path = p
	}
	c.JSON(http.StatusOK, rs.engine.Start(c, path))
}

func (rs *resource) StopNavigation(c *gin.Context) {
	c.JSON(http.StatusOK, rs.engine.Stop(c))
}

func (rs *resource) UpdateLocation(c *gin.Context) {
	req := rs.DserLocationReq(c)
	if req == nil {
		return
	}
	c.JSON(http.StatusOK, rs.engine.Update(c, req.Sample, req.Simulated))
}

func (rs *resource) FetchSnapshot(c *gin.Context) {
	c.JSON(http.StatusOK, rs.engine.Snapshot())
}

func (rs *resource) CycleViewMode(c *gin.Context) {
	c.JSON(http.StatusOK, rs.engine.CycleViewMode(c))
}

func (rs *resource) ExportRoute(c *gin.Context) {
	fc := SerRoute(rs.engine.Snapshot())
	b, err := json.Marshal(fc)
	if err != nil {
		serdser.SerErr(c, fmt.Errorf("encoding geojson: %w", err))
		return
	}
	c.Data(http.StatusOK, "application/geo+json", b)
}

