// Copyright 2025 The RepresentApp Authors
// SPDX-License-Identifier: Apache-2.0

package lookup

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Server is the thin HTTP boundary over the resolver.
type Server struct {
	resolver *Resolver
}

// NewServer creates a server exposing the resolver over HTTP.
func NewServer(resolver *Resolver) *Server {
	return &Server{resolver: resolver}
}

// Router builds the gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	r := gin.Default()
	r.Use(corsMiddleware())

	r.GET("/healthz", s.health)
	r.GET("/api/representatives", s.lookupRepresentatives)

	return r
}

// Run starts the HTTP server on the given address.
func (s *Server) Run(addr string) error {
	return s.Router().Run(addr)
}

func corsMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		ctx.Header("Access-Control-Allow-Origin", "*")
		ctx.Header("Access-Control-Allow-Methods", "GET, OPTIONS")
		ctx.Header("Access-Control-Allow-Headers", "Content-Type")

		if ctx.Request.Method == http.MethodOptions {
			ctx.AbortWithStatus(http.StatusNoContent)

			return
		}

		ctx.Next()
	}
}

func (s *Server) health(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (s *Server) lookupRepresentatives(ctx *gin.Context) {
	address, ok := ctx.GetQuery("address")
	if !ok {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": errorBody{
			Code:    "MISSING_PARAMETER",
			Message: "the 'address' query parameter is required",
		}})

		return
	}

	resp, err := s.resolver.Resolve(ctx.Request.Context(), address)
	if err != nil {
		var lerr *Error
		if errors.As(err, &lerr) {
			// Only the classified reason goes out, never provider internals
			ctx.JSON(HTTPStatus(err), gin.H{"error": errorBody{
				Code:    lerr.Code(),
				Message: lerr.Message,
			}})

			return
		}

		log.Printf("Unclassified error resolving address: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": errorBody{
			Code:    "INTERNAL_ERROR",
			Message: "an unexpected error occurred",
		}})

		return
	}

	ctx.JSON(http.StatusOK, resp)
}
