package models

// ReasonsResponse is the result of a filter query.
type ReasonsResponse struct {
	Category string   `json:"category"`
	Query    string   `json:"query"`
	Count    int      `json:"count"`
	Reasons  []string `json:"reasons"`
}

// RandomResponse carries one randomly picked reason.
type RandomResponse struct {
	Category string `json:"category"`
	Reason   string `json:"reason"`
}

// CategoryCount is one category with its reason count.
type CategoryCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// CountsResponse reports the catalog totals in catalog order.
type CountsResponse struct {
	Total      int             `json:"total"`
	Categories []CategoryCount `json:"categories"`
}

// CopyRequest is sent by the page after a reason was copied to the clipboard.
type CopyRequest struct {
	Reason   string `json:"reason"`
	Category string `json:"category"`
}
