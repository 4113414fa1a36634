// SPDX-License-Identifier: MIT

package openapi_server

type RouteRequest struct {
	Start      *Point   `json:"start"`
	Goal       *Point   `json:"goal"`
	CostFactor *float64 `json:"costFactor,omitempty"` // heuristic weight, the configured factor if absent
}

// AssertRouteRequestRequired checks if the required fields are not zero-ed
func AssertRouteRequestRequired(obj RouteRequest) error {
	elements := map[string]interface{}{
		"start": obj.Start,
		"goal":  obj.Goal,
	}
	for name, el := range elements {
		if isZero := IsZeroValue(el); isZero {
			return &RequiredError{Field: name}
		}
	}
	return nil
}
