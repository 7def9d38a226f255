// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package gin wraps the gin-gonic engine instantiation, so the
// REST API middlewares may be selected by the configuration settings
// and log through the structured slog loggers.
package gin

import (
	"log/slog"

	"github.com/FabienMht/ginslog/logger"
	"github.com/FabienMht/ginslog/recovery"
	"github.com/gin-gonic/gin"
)

type HandlerFunc = gin.HandlerFunc
type Engine = gin.Engine

// New instantiates a gin-gonic engine with the given middlewares.
func New(middlewares ...HandlerFunc) *Engine {
	e := gin.New()
	e.Use(middlewares...)
	return e
}

// Logger returns a middleware which logs every request with l.
// A nil l selects the slog default logger.
func Logger(l *slog.Logger) HandlerFunc {
	if l == nil {
		l = slog.Default()
	}
	return logger.New(l)
}

// Recovery returns a middleware which recovers from the handlers
// panics, logs them with l, and responds with a 500 status code.
// A nil l selects the slog default logger.
func Recovery(l *slog.Logger) HandlerFunc {
	if l == nil {
		l = slog.Default()
	}
	return recovery.New(l)
}
