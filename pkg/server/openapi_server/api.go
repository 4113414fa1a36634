// SPDX-License-Identifier: MIT

package openapi_server

import (
	"context"
	"net/http"

	"github.com/natevvv/grid-astar/pkg/path"
)

// DefaultApiRouter defines the required methods for binding the api requests to a responses for the DefaultApi
// The DefaultApiRouter implementation should parse necessary information from the http request,
// pass the data to a DefaultApiServicer to perform the required actions, then write the service results to the http response.
type DefaultApiRouter interface {
	GetMap(http.ResponseWriter, *http.Request)
	ComputeRoute(http.ResponseWriter, *http.Request)
	GetSearchSpace(http.ResponseWriter, *http.Request)
	GetImage(http.ResponseWriter, *http.Request)
	StreamRoute(http.ResponseWriter, *http.Request)
}

// DefaultApiServicer defines the api actions for the DefaultApi service
// This interface intended to stay up to date with the openapi yaml used to generate it,
// while the service implementation can ignored with the .openapi-generator-ignore file
// and updated with the logic required for the API.
type DefaultApiServicer interface {
	GetMap(context.Context) (ImplResponse, error)
	ComputeRoute(context.Context, RouteRequest) (ImplResponse, error)
	GetSearchSpace(context.Context) (ImplResponse, error)
	GetImage(context.Context) (ImplResponse, error)
	// NewSearch prepares a search for stepwise execution. On success the
	// response code is 200 and the search is returned; otherwise the response
	// describes the problem.
	NewSearch(context.Context, RouteRequest) (*path.AStar, ImplResponse, error)
}

// ServiceConfig defines the configuration of the search service
type ServiceConfig struct {
	CostFactor float64 // default heuristic weight
	DebugLevel int     // debug level of the created searches
}
