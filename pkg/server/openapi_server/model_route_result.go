// SPDX-License-Identifier: MIT

package openapi_server

type Path struct {
	Length    int     `json:"length"`
	Cost      float64 `json:"cost"`
	Waypoints []Point `json:"waypoints"`
}

type RouteResult struct {
	Start      Point  `json:"start"`
	Goal       Point  `json:"goal"`
	State      string `json:"state"`
	Reachable  bool   `json:"reachable"`
	Iterations int    `json:"iterations"`
	Path       Path   `json:"path"`
}
