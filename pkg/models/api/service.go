package api

// ServiceSearch is the payload of core/service/search.
type ServiceSearch struct {
	Total int          `json:"total"`
	Rows  []ServiceRow `json:"rows"`
}

type ServiceRow struct {
	Name    string `json:"name"`
	Running int    `json:"running"`
}
