package openapi_server

import (
	"bytes"
	"encoding/json"
	"image/png"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/natevvv/grid-astar/pkg/grid"
	"github.com/natevvv/grid-astar/pkg/path"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testMap = `3 3
.#.
.#.
...
`

func newTestServer(t *testing.T) *httptest.Server {
	g, err := grid.NewGridFromString(testMap)
	require.NoError(t, err)
	service := NewDefaultApiService(g, ServiceConfig{})
	server := httptest.NewServer(NewRouter(NewDefaultApiController(service)))
	t.Cleanup(server.Close)
	return server
}

func postRoute(t *testing.T, server *httptest.Server, body string) *http.Response {
	response, err := http.Post(server.URL+"/routes", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { response.Body.Close() })
	return response
}

func TestGetMap(t *testing.T) {
	server := newTestServer(t)
	response, err := http.Get(server.URL + "/map")
	require.NoError(t, err)
	defer response.Body.Close()

	require.Equal(t, http.StatusOK, response.StatusCode)
	var m Map
	require.NoError(t, json.NewDecoder(response.Body).Decode(&m))
	assert.Equal(t, Map{Rows: 3, Cols: 3, Tiles: []string{".#.", ".#.", "..."}}, m)
}

func TestComputeRoute(t *testing.T) {
	server := newTestServer(t)
	response := postRoute(t, server, `{"start":{"row":0,"col":0},"goal":{"row":0,"col":2}}`)
	require.Equal(t, http.StatusOK, response.StatusCode)

	var result RouteResult
	require.NoError(t, json.NewDecoder(response.Body).Decode(&result))
	assert.True(t, result.Reachable)
	assert.Equal(t, "SUCCEEDED", result.State)
	assert.Equal(t, Point{Row: 0, Col: 0}, result.Path.Waypoints[0])
	assert.Equal(t, Point{Row: 0, Col: 2}, result.Path.Waypoints[len(result.Path.Waypoints)-1])
	assert.Contains(t, result.Path.Waypoints, Point{Row: 2, Col: 1})
	assert.Equal(t, len(result.Path.Waypoints), result.Path.Length)
}

func TestComputeRouteInvalidInput(t *testing.T) {
	server := newTestServer(t)

	blocked := postRoute(t, server, `{"start":{"row":0,"col":1},"goal":{"row":0,"col":2}}`)
	assert.Equal(t, http.StatusBadRequest, blocked.StatusCode)

	outside := postRoute(t, server, `{"start":{"row":0,"col":0},"goal":{"row":7,"col":2}}`)
	assert.Equal(t, http.StatusBadRequest, outside.StatusCode)

	factor := postRoute(t, server, `{"start":{"row":0,"col":0},"goal":{"row":0,"col":2},"costFactor":12}`)
	assert.Equal(t, http.StatusBadRequest, factor.StatusCode)

	zeroFactor := postRoute(t, server, `{"start":{"row":0,"col":0},"goal":{"row":0,"col":2},"costFactor":0}`)
	assert.Equal(t, http.StatusBadRequest, zeroFactor.StatusCode)
	body, err := io.ReadAll(zeroFactor.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), path.ErrInvalidCostFactor.Error())

	missing := postRoute(t, server, `{"start":{"row":0,"col":0}}`)
	assert.Equal(t, http.StatusUnprocessableEntity, missing.StatusCode)

	malformed := postRoute(t, server, `{"start":`)
	assert.Equal(t, http.StatusBadRequest, malformed.StatusCode)
}

func TestSearchSpaceAndImage(t *testing.T) {
	server := newTestServer(t)

	for _, endpoint := range []string{"/searchSpace", "/image"} {
		response, err := http.Get(server.URL + endpoint)
		require.NoError(t, err)
		response.Body.Close()
		assert.Equal(t, http.StatusNotFound, response.StatusCode, endpoint)
	}

	postRoute(t, server, `{"start":{"row":0,"col":0},"goal":{"row":0,"col":2}}`)

	response, err := http.Get(server.URL + "/searchSpace")
	require.NoError(t, err)
	defer response.Body.Close()
	var space SearchSpace
	require.NoError(t, json.NewDecoder(response.Body).Decode(&space))
	assert.Contains(t, space.Cells, Cell{Row: 0, Col: 0, Class: "START"})
	assert.Contains(t, space.Cells, Cell{Row: 0, Col: 2, Class: "GOAL"})
	assert.Contains(t, space.Cells, Cell{Row: 2, Col: 1, Class: "PATH"})

	image, err := http.Get(server.URL + "/image")
	require.NoError(t, err)
	defer image.Body.Close()
	require.Equal(t, http.StatusOK, image.StatusCode)
	assert.Equal(t, "image/png", image.Header.Get("Content-Type"))
	var buffer bytes.Buffer
	_, err = buffer.ReadFrom(image.Body)
	require.NoError(t, err)
	decoded, err := png.Decode(&buffer)
	require.NoError(t, err)
	assert.Equal(t, 3*3+2*5, decoded.Bounds().Dx())
}

func readSnapshots(t *testing.T, server *httptest.Server, query string) []SearchSnapshot {
	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/routes/stream?" + query
	ws, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer ws.Close()

	var snapshots []SearchSnapshot
	for {
		var snapshot SearchSnapshot
		if err := ws.ReadJSON(&snapshot); err != nil {
			break
		}
		snapshots = append(snapshots, snapshot)
	}
	return snapshots
}

func TestStreamRoute(t *testing.T) {
	server := newTestServer(t)
	snapshots := readSnapshots(t, server, "startRow=0&startCol=0&goalRow=0&goalCol=2")

	require.NotEmpty(t, snapshots)
	first := snapshots[0]
	assert.Equal(t, "RUNNING", first.State)
	assert.Equal(t, 0, first.Iteration)
	assert.Equal(t, []Cell{{Row: 0, Col: 0, Class: "START"}}, first.Cells)

	last := snapshots[len(snapshots)-1]
	assert.Equal(t, "SUCCEEDED", last.State)
	require.NotNil(t, last.Path)
	assert.Equal(t, len(snapshots)-1, last.Iteration)
	assert.Equal(t, Point{Row: 0, Col: 2}, last.Path.Waypoints[len(last.Path.Waypoints)-1])
}

func TestStreamRoutePaced(t *testing.T) {
	server := newTestServer(t)
	immediate := readSnapshots(t, server, "startRow=0&startCol=0&goalRow=0&goalCol=2")
	paced := readSnapshots(t, server, "startRow=0&startCol=0&goalRow=0&goalCol=2&delay=1")
	assert.Equal(t, immediate, paced)
}

func TestStreamRouteInvalidInput(t *testing.T) {
	server := newTestServer(t)

	response, err := http.Get(server.URL + "/routes/stream?startRow=0&startCol=1&goalRow=0&goalCol=2")
	require.NoError(t, err)
	response.Body.Close()
	assert.Equal(t, http.StatusBadRequest, response.StatusCode)

	response, err = http.Get(server.URL + "/routes/stream?startRow=0&startCol=0&goalRow=x&goalCol=2")
	require.NoError(t, err)
	response.Body.Close()
	assert.Equal(t, http.StatusBadRequest, response.StatusCode)
}
