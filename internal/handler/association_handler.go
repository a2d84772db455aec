package handlers

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"portfolioAPI/internal/apierror"
	"portfolioAPI/internal/metrics"
	"portfolioAPI/internal/service"
)

// relatedIDs reads the ids of a bulk request from a repeatable query
// parameter. Comma separated values are split as well, so both
// ?tagId=a&tagId=b and ?tagId=a,b work.
func relatedIDs(r *http.Request, param string) []string {
	var ids []string
	for _, value := range r.URL.Query()[param] {
		for _, id := range strings.Split(value, ",") {
			ids = append(ids, strings.TrimSpace(id))
		}
	}
	return ids
}

func listRelated[R any](svc service.Association[R], idParam string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := parseList(r, idParam)

		resp, err := svc.ListRelatedFor(r.Context(), mux.Vars(r)["id"], q.Limit, q.Page, q.Filter, q.Sort)
		if err != nil {
			writeError(w, err)
			return
		}

		writeSuccess(w, resp, http.StatusOK)
	}
}

func getRelated[R any](svc service.Association[R]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)

		record, err := svc.GetRelated(r.Context(), vars["id"], vars["relatedId"])
		if err != nil {
			writeError(w, err)
			return
		}

		writeSuccess(w, record, http.StatusOK)
	}
}

// linkRelated and unlinkRelated answer 200 whenever at least one id was
// sent. Per-id failures are reported inside the bulk response.
func linkRelated[R any](svc service.Association[R], idParam string, m *metrics.Metrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ids := relatedIDs(r, idParam)
		if len(ids) == 0 {
			writeError(w, apierror.Validation(idParam+" is required"))
			return
		}

		resp := svc.LinkMany(r.Context(), mux.Vars(r)["id"], ids)
		m.ObserveBulk("link", len(resp.Success), len(resp.Errors))

		writeSuccess(w, resp, http.StatusOK)
	}
}

func unlinkRelated[R any](svc service.Association[R], idParam string, m *metrics.Metrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ids := relatedIDs(r, idParam)
		if len(ids) == 0 {
			writeError(w, apierror.Validation(idParam+" is required"))
			return
		}

		resp := svc.UnlinkMany(r.Context(), mux.Vars(r)["id"], ids)
		m.ObserveBulk("unlink", len(resp.Success), len(resp.Errors))

		writeSuccess(w, resp, http.StatusOK)
	}
}
