package openapi_server

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"

	"github.com/natevvv/grid-astar/pkg/grid"
	"github.com/natevvv/grid-astar/pkg/path"
	"github.com/natevvv/grid-astar/pkg/render"
)

// DefaultApiService is a service that implements the logic for the DefaultApiServicer
// This service should implement the business logic for every endpoint for the DefaultApi API.
// Include any external packages or services that will be required by this service.
type DefaultApiService struct {
	g      *grid.Grid
	config ServiceConfig

	mutex sync.Mutex
	last  *path.AStar // last search computed through ComputeRoute
}

// NewDefaultApiService creates a default api service
func NewDefaultApiService(g *grid.Grid, config ServiceConfig) DefaultApiServicer {
	if config.CostFactor == 0 {
		config.CostFactor = path.DefaultCostFactor
	}
	return &DefaultApiService{
		g:      g,
		config: config,
	}
}

func (s *DefaultApiService) GetMap(ctx context.Context) (ImplResponse, error) {
	lines := strings.Split(strings.TrimSuffix(s.g.AsString(), "\n"), "\n")
	m := Map{Rows: s.g.Rows(), Cols: s.g.Cols(), Tiles: lines[1:]}
	return Response(http.StatusOK, m), nil
}

// ComputeRoute - Compute a new route
func (s *DefaultApiService) ComputeRoute(ctx context.Context, routeRequest RouteRequest) (ImplResponse, error) {
	search, response, err := s.NewSearch(ctx, routeRequest)
	if search == nil {
		return response, err
	}
	search.Resolve()

	s.mutex.Lock()
	s.last = search
	s.mutex.Unlock()

	routeResult := RouteResult{
		Start:      *routeRequest.Start,
		Goal:       *routeRequest.Goal,
		State:      search.State().String(),
		Reachable:  search.State() == path.Succeeded,
		Iterations: search.Iterations(),
		Path:       *newPath(search),
	}
	return Response(http.StatusOK, routeResult), nil
}

func (s *DefaultApiService) GetSearchSpace(ctx context.Context) (ImplResponse, error) {
	search := s.lastSearch()
	if search == nil {
		return Response(http.StatusNotFound, "No route computed yet"), nil
	}
	return Response(http.StatusOK, newSearchSpace(search)), nil
}

func (s *DefaultApiService) GetImage(ctx context.Context) (ImplResponse, error) {
	search := s.lastSearch()
	if search == nil {
		return Response(http.StatusNotFound, "No route computed yet"), nil
	}
	var buffer bytes.Buffer
	if err := render.DrawSearch(search).EncodePNG(&buffer); err != nil {
		return Response(http.StatusInternalServerError, nil), err
	}
	return Response(http.StatusOK, buffer.Bytes()), nil
}

func (s *DefaultApiService) NewSearch(ctx context.Context, routeRequest RouteRequest) (*path.AStar, ImplResponse, error) {
	search, err := path.NewAStar(s.g, routeRequest.Start.toGeometry(), routeRequest.Goal.toGeometry())
	if errors.Is(err, path.ErrInvalidStart) || errors.Is(err, path.ErrInvalidGoal) {
		return nil, Response(http.StatusBadRequest, err.Error()), nil
	} else if err != nil {
		return nil, Response(http.StatusInternalServerError, nil), err
	}

	costFactor := s.config.CostFactor
	if routeRequest.CostFactor != nil {
		costFactor = *routeRequest.CostFactor
	}
	if err := search.SetCostFactor(costFactor); err != nil {
		return nil, Response(http.StatusBadRequest, err.Error()), nil
	}
	search.SetDebugLevel(s.config.DebugLevel)
	return search, Response(http.StatusOK, nil), nil
}

func (s *DefaultApiService) lastSearch() *path.AStar {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.last
}
