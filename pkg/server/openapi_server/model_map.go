// SPDX-License-Identifier: MIT

package openapi_server

// Map holds one string per grid row, '.' passable and '#' blocked.
type Map struct {
	Rows  int      `json:"rows"`
	Cols  int      `json:"cols"`
	Tiles []string `json:"tiles"`
}
