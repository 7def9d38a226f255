// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package markersrs

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/momeni/navengine/pkg/adapter/restful/gin/serdser"
	"github.com/momeni/navengine/pkg/core/model"
)

type rawTeachReq struct {
	Speed    *float64 `json:"speed" binding:"required,gt=0,lte=300"`
	Lat      *float64 `json:"lat" binding:"omitempty,latitude"`
	Lng      *float64 `json:"lng" binding:"omitempty,longitude"`
	Heading  *float64 `json:"heading" binding:"omitempty,gte=0,lt=360"`
	RoadName string   `json:"roadName" binding:"max=200"`
}

type teachReq struct {
	Speed    float64
	Pos      *model.Coordinate // nil means the current position
	Heading  float64
	RoadName string
}

func (rs *resource) DserTeachReq(c *gin.Context) *teachReq {
	req := &rawTeachReq{}
	if ok := serdser.Bind(c, req, binding.JSON); !ok {
		return nil
	}
	var errs map[string][]string
	defer func() {
		if errs != nil {
			c.JSON(http.StatusBadRequest, errs)
		}
	}()
	val := &teachReq{Speed: *req.Speed, RoadName: req.RoadName}
	given := req.Lat != nil || req.Lng != nil || req.Heading != nil
	if !given {
		serdser.Assert(&errs, req.RoadName == "", "roadName",
			"The roadName is taken from the current road.")
		if errs != nil {
			return nil
		}
		return val
	}
	if !serdser.Assert(&errs,
		req.Lat != nil && req.Lng != nil && req.Heading != nil,
		"lat/lng/heading", "Explicit markers need lat, lng, and heading.",
	) {
		return nil
	}
	val.Pos = &model.Coordinate{Lat: *req.Lat, Lng: *req.Lng}
	val.Heading = *req.Heading
	return val
}

type rawPositionQuery struct {
	Lat     *float64 `form:"lat" binding:"required,latitude"`
	Lng     *float64 `form:"lng" binding:"required,longitude"`
	Heading *float64 `form:"heading" binding:"required,gte=0,lt=360"`
}

type positionQuery struct {
	Pos     model.Coordinate
	Heading float64
}

func (rs *resource) DserPositionQuery(c *gin.Context) *positionQuery {
	req := &rawPositionQuery{}
	if ok := serdser.Bind(c, req, binding.Query); !ok {
		return nil
	}
	return &positionQuery{
		Pos:     model.Coordinate{Lat: *req.Lat, Lng: *req.Lng},
		Heading: *req.Heading,
	}
}
