package postgres

// PagedData is returned from the Paged method.
// It contains paged database records and pagination metadata.
type PagedData struct {
	Items      any   `json:"items"`
	Page       int64 `json:"page"`
	PerPage    int64 `json:"perPage"`
	TotalItems int64 `json:"totalItems"`
	TotalPages int64 `json:"totalPages"`
}

// HasNext asserts whether a page follows the current one.
func (pd PagedData) HasNext() bool { return pd.Page < pd.TotalPages }

// HasPrev asserts whether a page precedes the current one.
func (pd PagedData) HasPrev() bool { return pd.Page > 1 }
