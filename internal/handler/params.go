package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"slices"

	"portfolioAPI/internal/apierror"
	"portfolioAPI/internal/models"
	"portfolioAPI/internal/pagination"
)

// maxBodyBytes bounds JSON request bodies.
const maxBodyBytes = 1 << 20

var reservedQuery = map[string]bool{"page": true, "limit": true, "sort": true}

// filterFrom turns every non-paging query parameter into an equality filter
// on the field of the same name. Stores drop fields they do not know.
func filterFrom(q url.Values, skip ...string) models.Filter {
	filter := models.Filter{}
	for key, values := range q {
		if reservedQuery[key] || len(values) == 0 || slices.Contains(skip, key) {
			continue
		}
		filter[key] = values[0]
	}
	return filter
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.Is(err, io.EOF):
			return apierror.Validation("request body is required")
		case errors.As(err, &maxErr):
			return apierror.Validation(fmt.Sprintf("request body exceeds %d bytes", maxErr.Limit))
		default:
			return apierror.Validation("invalid JSON: " + err.Error())
		}
	}
	return nil
}

type listQuery struct {
	pagination.Params
	Filter models.Filter
}

func parseList(r *http.Request, skip ...string) listQuery {
	q := r.URL.Query()
	return listQuery{
		Params: pagination.FromQuery(q),
		Filter: filterFrom(q, skip...),
	}
}
