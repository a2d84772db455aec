package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"portfolioAPI/internal/models"
	"portfolioAPI/internal/service"
)

type DeleteResponse struct {
	Deleted int64 `json:"deleted"`
}

func listEntity[T any](svc service.Entity[T]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := parseList(r)

		resp, err := svc.List(r.Context(), q.Limit, q.Page, q.Filter, q.Sort)
		if err != nil {
			writeError(w, err)
			return
		}

		writeSuccess(w, resp, http.StatusOK)
	}
}

func getEntity[T any](svc service.Entity[T]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		record, err := svc.Get(r.Context(), mux.Vars(r)["id"])
		if err != nil {
			writeError(w, err)
			return
		}

		writeSuccess(w, record, http.StatusOK)
	}
}

func createEntity[T any](svc service.Entity[T]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		record := new(T)
		if err := decodeBody(w, r, record); err != nil {
			writeError(w, err)
			return
		}

		created, err := svc.Create(r.Context(), record)
		if err != nil {
			writeError(w, err)
			return
		}

		writeSuccess(w, created, http.StatusCreated)
	}
}

// updateEntity sends only the keys present in the body, so omitted fields
// keep their stored values.
func updateEntity[T any](svc service.Entity[T]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var patch models.Patch
		if err := decodeBody(w, r, &patch); err != nil {
			writeError(w, err)
			return
		}

		updated, err := svc.Update(r.Context(), mux.Vars(r)["id"], patch)
		if err != nil {
			writeError(w, err)
			return
		}

		writeSuccess(w, updated, http.StatusOK)
	}
}

func deleteEntity[T any](svc service.Entity[T]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		count, err := svc.Delete(r.Context(), mux.Vars(r)["id"])
		if err != nil {
			writeError(w, err)
			return
		}

		writeSuccess(w, DeleteResponse{Deleted: count}, http.StatusOK)
	}
}

// deleteAllEntity removes every row matching the query filter.
func deleteAllEntity[T any](svc service.Entity[T]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		count, err := svc.DeleteAll(r.Context(), filterFrom(r.URL.Query()))
		if err != nil {
			writeError(w, err)
			return
		}

		writeSuccess(w, DeleteResponse{Deleted: count}, http.StatusOK)
	}
}
