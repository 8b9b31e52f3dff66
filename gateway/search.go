package gateway

import (
	"context"
	"encoding/json"
)

type SearchRequest struct {
	Origin      string   `json:"origin"`
	Destination string   `json:"destination"`
	DepartDate  string   `json:"departDate"`
	CabinCode   int      `json:"cabinClass"`
	Adults      int      `json:"adultCount"`
	Children    int      `json:"childCount"`
	Infants     int      `json:"infantCount"`
	Sources     []string `json:"sources,omitempty"`
}

// SearchResult keeps the offer list raw. The result array may arrive flat or
// double-nested depending on the supplier mix; extraction is the search
// orchestrator's job.
type SearchResult struct {
	TraceID    string          `json:"traceId"`
	RawResults json.RawMessage `json:"results"`
}

func (c *Client) Search(ctx context.Context, req SearchRequest) (SearchResult, error) {
	var result SearchResult
	if err := c.post(ctx, "/search", c.budgets.Search, req, &result); err != nil {
		return SearchResult{}, err
	}
	return result, nil
}
