// Copyright (c) 2023-2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package routes contains all resource packages and facilitates
// registration of them on a gin-gonic engine.
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/momeni/navengine/pkg/adapter/restful/gin/markersrs"
	"github.com/momeni/navengine/pkg/adapter/restful/gin/navrs"
	"github.com/momeni/navengine/pkg/core/repo"
	"github.com/momeni/navengine/pkg/core/usecase/memoryuc"
	"github.com/momeni/navengine/pkg/core/usecase/naviuc"
	"github.com/momeni/navengine/pkg/core/usecase/speeduc"
)

// Prefix is the path prefix of all REST APIs.
const Prefix = "/api/naveng/v1"

// UseCases lists the use case instances which are exposed by the
// resources. Each use case package is named like memoryuc and each
// resource package is named like markersrs.
type UseCases struct {
	Memory *memoryuc.UseCase
	Speed  *speeduc.UseCase
	Engine *naviuc.Engine
	Router repo.Router // optional, enables the routed sessions
}

// Register instantiates a series of "resource" structs in order to
// adapt the use cases interfaces with the REST APIs. These resources
// are registered as request handlers using the e gin-gonic engine.
func Register(e *gin.Engine, uc UseCases) {
	r := e.Group(Prefix)
	navrs.Register(r, uc.Engine, uc.Router)
	markersrs.Register(r, uc.Memory, uc.Speed, uc.Engine)
}
