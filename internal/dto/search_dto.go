package dto

type SearchRequest struct {
	Query string `json:"query"`
	Type  string `json:"type"`
}

type SearchResponse struct {
	Query   string `json:"query"`
	Results string `json:"results"`
	Type    string `json:"type"`
}
