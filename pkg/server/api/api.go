package api

import (
	"encoding/json"
	"net/http"
)

// Error is the JSON body rendered for any non-2xx response.
type Error struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Code   string `json:"code"`
	Title  string `json:"title"`
	Detail string `json:"detail"`
}

func (e Error) Render(w http.ResponseWriter, statuscode int) {
	w.WriteHeader(statuscode)
	json.NewEncoder(w).Encode(e)
}

var InternalServerError = Error{
	ID:     "internal_server_error",
	Code:   "internal_server_error",
	Status: "500",
	Title:  "Internal Server Error",
	Detail: "Something went wrong :(",
}

var NotFoundError = Error{
	ID:     "resource_not_found",
	Code:   "resource_not_found",
	Status: "404",
	Title:  "Resource Not Found",
	Detail: "The resource you requested could not be found",
}
