package models

import (
	"encoding/json"
	"fmt"
)

const StatusSuccess = "success"

// Envelope is the wrapper every upstream endpoint responds with.
// Paginated list endpoints additionally carry the pagination fields.
type Envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
	// URL is set by /server responses that carry the stream at the top level.
	URL string `json:"url,omitempty"`
	Pagination
}

// Pagination is present on /ongoing, /completed and /popular responses.
type Pagination struct {
	CurrentPage int  `json:"currentPage,omitempty"`
	TotalPages  int  `json:"totalPages,omitempty"`
	HasNextPage bool `json:"hasNextPage,omitempty"`
	HasPrevPage bool `json:"hasPrevPage,omitempty"`
	NextPage    *int `json:"nextPage,omitempty"`
	PrevPage    *int `json:"prevPage,omitempty"`
}

func (e *Envelope) Succeeded() bool {
	return e.Status == StatusSuccess
}

// DecodeData unmarshals the envelope payload into dest.
func (e *Envelope) DecodeData(dest any) error {
	if len(e.Data) == 0 || string(e.Data) == "null" {
		return fmt.Errorf("envelope has no data")
	}
	if err := json.Unmarshal(e.Data, dest); err != nil {
		return fmt.Errorf("failed to decode envelope data: %w", err)
	}
	return nil
}
