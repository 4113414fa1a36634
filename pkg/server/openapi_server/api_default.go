package openapi_server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/natevvv/grid-astar/pkg/path"
	channerics "github.com/niceyeti/channerics/channels"
	"golang.org/x/sync/errgroup"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 1 * time.Second
	// Time the peer has to answer a close message.
	closeGracePeriod = 2 * time.Second
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// DefaultApiController binds http requests to an api service and writes the service results to the http response
type DefaultApiController struct {
	service      DefaultApiServicer
	errorHandler ErrorHandler
}

// DefaultApiOption for how the controller is set up.
type DefaultApiOption func(*DefaultApiController)

// WithDefaultApiErrorHandler inject ErrorHandler into controller
func WithDefaultApiErrorHandler(h ErrorHandler) DefaultApiOption {
	return func(c *DefaultApiController) {
		c.errorHandler = h
	}
}

// NewDefaultApiController creates a default api controller
func NewDefaultApiController(s DefaultApiServicer, opts ...DefaultApiOption) Router {
	controller := &DefaultApiController{
		service:      s,
		errorHandler: DefaultErrorHandler,
	}

	for _, opt := range opts {
		opt(controller)
	}

	return controller
}

// Routes returns all of the api route for the DefaultApiController
func (c *DefaultApiController) Routes() Routes {
	return Routes{
		{
			"GetMap",
			strings.ToUpper("Get"),
			"/map",
			c.GetMap,
		},
		{
			"ComputeRoute",
			strings.ToUpper("Post"),
			"/routes",
			c.ComputeRoute,
		},
		{
			"StreamRoute",
			strings.ToUpper("Get"),
			"/routes/stream",
			c.StreamRoute,
		},
		{
			"GetSearchSpace",
			strings.ToUpper("Get"),
			"/searchSpace",
			c.GetSearchSpace,
		},
		{
			"GetImage",
			strings.ToUpper("Get"),
			"/image",
			c.GetImage,
		},
	}
}

func setCorsHeaders(w http.ResponseWriter, method string) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", method)
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
}

func (c *DefaultApiController) GetMap(w http.ResponseWriter, r *http.Request) {
	result, err := c.service.GetMap(r.Context())
	// If an error occurred, encode the error with the status code
	if err != nil {
		c.errorHandler(w, r, err, &result)
		return
	}
	// If no error, encode the body and the result code
	setCorsHeaders(w, "GET")
	EncodeJSONResponse(result.Body, &result.Code, w)
}

// ComputeRoute - Compute a new route
func (c *DefaultApiController) ComputeRoute(w http.ResponseWriter, r *http.Request) {
	routeRequestParam := RouteRequest{}
	d := json.NewDecoder(r.Body)
	d.DisallowUnknownFields()
	if err := d.Decode(&routeRequestParam); err != nil {
		c.errorHandler(w, r, &ParsingError{Err: err}, nil)
		return
	}
	if err := AssertRouteRequestRequired(routeRequestParam); err != nil {
		c.errorHandler(w, r, err, nil)
		return
	}
	result, err := c.service.ComputeRoute(r.Context(), routeRequestParam)
	// If an error occurred, encode the error with the status code
	if err != nil {
		c.errorHandler(w, r, err, &result)
		return
	}
	// If no error, encode the body and the result code
	setCorsHeaders(w, "POST")
	EncodeJSONResponse(result.Body, &result.Code, w)
}

func (c *DefaultApiController) GetSearchSpace(w http.ResponseWriter, r *http.Request) {
	result, err := c.service.GetSearchSpace(r.Context())
	// If an error occurred, encode the error with the status code
	if err != nil {
		c.errorHandler(w, r, err, &result)
		return
	}
	// If no error, encode the body and the result code
	setCorsHeaders(w, "GET")
	EncodeJSONResponse(result.Body, &result.Code, w)
}

// GetImage writes a PNG of the last search
func (c *DefaultApiController) GetImage(w http.ResponseWriter, r *http.Request) {
	result, err := c.service.GetImage(r.Context())
	if err != nil {
		c.errorHandler(w, r, err, &result)
		return
	}
	data, ok := result.Body.([]byte)
	if !ok {
		EncodeJSONResponse(result.Body, &result.Code, w)
		return
	}
	setCorsHeaders(w, "GET")
	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(result.Code)
	w.Write(data)
}

// StreamRoute runs a search step by step and publishes one snapshot per step over a websocket.
// The optional query parameter delay paces the steps in milliseconds.
func (c *DefaultApiController) StreamRoute(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	routeRequestParam := RouteRequest{Start: &Point{}, Goal: &Point{}}
	params := []struct {
		name   string
		target *int
	}{
		{"startRow", &routeRequestParam.Start.Row},
		{"startCol", &routeRequestParam.Start.Col},
		{"goalRow", &routeRequestParam.Goal.Row},
		{"goalCol", &routeRequestParam.Goal.Col},
	}
	delay, err := parseIntParameter(query.Get("delay"), false)
	if err != nil {
		c.errorHandler(w, r, &ParsingError{Err: fmt.Errorf("delay: %w", err)}, nil)
		return
	}
	for _, param := range params {
		value, err := parseIntParameter(query.Get(param.name), true)
		if err != nil {
			c.errorHandler(w, r, &ParsingError{Err: fmt.Errorf("%v: %w", param.name, err)}, nil)
			return
		}
		*param.target = value
	}

	search, result, err := c.service.NewSearch(r.Context(), routeRequestParam)
	if err != nil {
		c.errorHandler(w, r, err, &result)
		return
	}
	if search == nil {
		EncodeJSONResponse(result.Body, &result.Code, w)
		return
	}

	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("upgrade:", err)
		return
	}
	defer ws.Close()

	group, groupCtx := errgroup.WithContext(r.Context())
	group.Go(func() error {
		return readMessages(ws)
	})
	group.Go(func() error {
		err := publishSteps(groupCtx, ws, search, time.Duration(delay)*time.Millisecond)
		closeWebsocket(ws)
		return err
	})
	if err := group.Wait(); err != nil {
		log.Println("stream:", err)
	}
}

// publishSteps steps the search until it settles and writes a snapshot after
// every step. A positive delay paces the steps.
func publishSteps(ctx context.Context, ws *websocket.Conn, search *path.AStar, delay time.Duration) error {
	publish := func() (bool, error) {
		state := search.Step()
		if err := ws.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
			return false, err
		}
		if err := ws.WriteJSON(newSearchSnapshot(search)); err != nil {
			return false, err
		}
		return state.Settled(), nil
	}

	if delay <= 0 {
		for {
			if err := ctx.Err(); err != nil {
				return err
			}
			if settled, err := publish(); settled || err != nil {
				return err
			}
		}
	}
	for range channerics.NewTicker(ctx.Done(), delay) {
		if settled, err := publish(); settled || err != nil {
			return err
		}
	}
	return ctx.Err()
}

// readMessages drains the client side of the socket. It returns once the
// client closes the connection and thereby cancels the publisher.
func readMessages(ws *websocket.Conn) error {
	for {
		if _, _, err := ws.ReadMessage(); err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}
			return err
		}
	}
}

func closeWebsocket(ws *websocket.Conn) {
	_ = ws.SetWriteDeadline(time.Now().Add(writeWait))
	_ = ws.WriteMessage(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	_ = ws.SetReadDeadline(time.Now().Add(closeGracePeriod))
}
