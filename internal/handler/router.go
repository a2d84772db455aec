package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"portfolioAPI/internal/metrics"
	"portfolioAPI/internal/middleware"
	"portfolioAPI/internal/service"
)

const apiPrefix = "/api/v1"

// guardFunc wraps a handler that changes state.
type guardFunc func(http.HandlerFunc) http.Handler

// NewRouter mounts the api under /api/v1. Reads are public. Writes pass
// through limit and then admin.
func (h *Handlers) NewRouter(admin, limit middleware.Middleware) *mux.Router {
	r := mux.NewRouter()
	r.Use(mux.MiddlewareFunc(middleware.Metrics(h.Metrics)))

	r.HandleFunc("/health", h.Health).Methods(http.MethodGet)
	r.Handle("/metrics", h.Metrics.Handler()).Methods(http.MethodGet)

	guard := func(hf http.HandlerFunc) http.Handler {
		return middleware.Chain(hf, admin, limit)
	}

	api := r.PathPrefix(apiPrefix).Subrouter()

	registerEntity(api, guard, "images", "image", h.Service.Image.Entity)
	registerEntity(api, guard, "groups", "group", h.Service.Group.Entity)
	registerEntity(api, guard, "tags", "tag", h.Service.Tag.Entity)

	registerAssociation(api, guard, "/image/{id}/groups", "groupId", h.Service.Image.Groups, h.Metrics)
	registerAssociation(api, guard, "/image/{id}/tags", "tagId", h.Service.Image.Tags, h.Metrics)
	registerAssociation(api, guard, "/group/{id}/images", "imageId", h.Service.Group.Images, h.Metrics)
	registerAssociation(api, guard, "/group/{id}/tags", "tagId", h.Service.Group.Tags, h.Metrics)
	registerAssociation(api, guard, "/tag/{id}/groups", "groupId", h.Service.Tag.Groups, h.Metrics)
	registerAssociation(api, guard, "/tag/{id}/images", "imageId", h.Service.Tag.Images, h.Metrics)

	registerJoin(api, "imageGroups", "imageGroup", h.Service.ImageGroup)
	registerJoin(api, "groupTags", "groupTag", h.Service.GroupTag)
	registerJoin(api, "imageTags", "imageTag", h.Service.ImageTag)

	api.HandleFunc("/role/{googleId}", h.GetRole).Methods(http.MethodGet)
	api.Handle("/me", guard(h.GetCurrentUser)).Methods(http.MethodGet)
	api.Handle("/upload", guard(h.UploadImage)).Methods(http.MethodPost)
	api.Handle("/upload/{objectName:.+}", guard(h.DeleteUpload)).Methods(http.MethodDelete)

	return r
}

func registerEntity[T any](api *mux.Router, guard guardFunc, plural, singular string, svc service.Entity[T]) {
	api.HandleFunc("/"+plural, listEntity(svc)).Methods(http.MethodGet)
	api.Handle("/"+plural, guard(deleteAllEntity(svc))).Methods(http.MethodDelete)

	api.Handle("/"+singular, guard(createEntity(svc))).Methods(http.MethodPost)
	api.HandleFunc("/"+singular+"/{id}", getEntity(svc)).Methods(http.MethodGet)
	api.Handle("/"+singular+"/{id}", guard(updateEntity(svc))).Methods(http.MethodPut)
	api.Handle("/"+singular+"/{id}", guard(deleteEntity(svc))).Methods(http.MethodDelete)
}

func registerAssociation[R any](api *mux.Router, guard guardFunc, path, idParam string, svc service.Association[R], m *metrics.Metrics) {
	api.HandleFunc(path, listRelated(svc, idParam)).Methods(http.MethodGet)
	api.Handle(path, guard(linkRelated(svc, idParam, m))).Methods(http.MethodPost)
	api.Handle(path, guard(unlinkRelated(svc, idParam, m))).Methods(http.MethodDelete)
	api.HandleFunc(path+"/{relatedId}", getRelated(svc)).Methods(http.MethodGet)
}

// registerJoin exposes the raw link rows read-only.
func registerJoin[T any](api *mux.Router, plural, singular string, svc service.Entity[T]) {
	api.HandleFunc("/"+plural, listEntity(svc)).Methods(http.MethodGet)
	api.HandleFunc("/"+singular+"/{id}", getEntity(svc)).Methods(http.MethodGet)
}
