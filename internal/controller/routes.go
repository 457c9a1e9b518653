package controller

import (
	"fmt"
	"net/http"

	"github.com/grpc-ecosystem/grpc-gateway/v2/runtime"
)

// Register mounts the catalog routes on mux.
func (i *implementation) Register(mux *runtime.ServeMux) error {
	routes := []struct {
		method  string
		pattern string
		handler runtime.HandlerFunc
	}{
		{http.MethodGet, "/v1/authors", i.ListAuthors},
		{http.MethodPost, "/v1/authors", i.CreateAuthor},
		{http.MethodGet, "/v1/authors/{id}", i.GetAuthor},
		{http.MethodDelete, "/v1/authors/{id}", i.DeleteAuthor},
		{http.MethodGet, "/v1/books", i.ListBooks},
		{http.MethodPost, "/v1/books", i.CreateBook},
		{http.MethodGet, "/v1/books/{id}", i.GetBook},
		{http.MethodDelete, "/v1/books/{id}", i.DeleteBook},
	}

	for _, route := range routes {
		if err := mux.HandlePath(route.method, route.pattern, route.handler); err != nil {
			return fmt.Errorf("register %s %s: %w", route.method, route.pattern, err)
		}
	}
	return nil
}
