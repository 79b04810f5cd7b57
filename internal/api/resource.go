package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/stockpro/stockpro-cli/internal/debug"
)

// Resource is a REST collection on the backend: "<path>" for the collection
// and "<path><id>/" for one record. T is the decoded record type.
//
// Create/update/replace are unexported; the typed services built on top of
// Resource decide which payload and transport each entity uses.
type Resource[T any] struct {
	r    requester
	name string
	path string
}

func newResource[T any](r requester, name, path string) Resource[T] {
	return Resource[T]{r: r, name: name, path: path}
}

// Name is the singular resource name, e.g. "product".
func (s Resource[T]) Name() string { return s.name }

// Path is the collection path relative to the API root, e.g. "products/".
func (s Resource[T]) Path() string { return s.path }

func (s Resource[T]) itemPath(id int) string {
	return fmt.Sprintf("%s%d/", s.path, id)
}

func (s Resource[T]) key(id int) string {
	return fmt.Sprintf("%s/%d", s.name, id)
}

// List fetches the whole collection. Paginated envelopes and bare arrays both
// come back as a plain ordered slice.
func (s Resource[T]) List(ctx context.Context) ([]T, error) {
	debug.Log(ctx, "listing records", "resource", s.name)
	body, err := s.r.execute(ctx, http.MethodGet, s.path, nil)
	if err != nil {
		debug.Log(ctx, "list failed", "resource", s.name, "error", err)
		return nil, err
	}
	items, err := normalizeList[T](body)
	if err != nil {
		return nil, err
	}
	debug.Log(ctx, "listed records", "resource", s.name, "count", len(items))
	return items, nil
}

// Get fetches one record.
func (s Resource[T]) Get(ctx context.Context, id int) (*T, error) {
	debug.Log(ctx, "fetching record", "resource", s.name, "id", id)
	var result T
	if err := s.r.do(ctx, http.MethodGet, s.itemPath(id), nil, &result); err != nil {
		debug.Log(ctx, "fetch failed", "resource", s.name, "id", id, "error", err)
		return nil, err
	}
	debug.Log(ctx, "fetched record", "resource", s.name, "id", id)
	return &result, nil
}

// Delete removes one record. Deleting an already deleted record surfaces the
// backend's 404 as *APIError.
func (s Resource[T]) Delete(ctx context.Context, id int) error {
	release, err := s.r.acquire(ctx, s.key(id))
	if err != nil {
		return err
	}
	defer release()

	debug.Log(ctx, "deleting record", "resource", s.name, "id", id)
	if _, err := s.r.execute(ctx, http.MethodDelete, s.itemPath(id), nil); err != nil {
		debug.Log(ctx, "delete failed", "resource", s.name, "id", id, "error", err)
		return err
	}
	debug.Log(ctx, "deleted record", "resource", s.name, "id", id)
	return nil
}

func (s Resource[T]) create(ctx context.Context, body requestBody) (*T, error) {
	debug.Log(ctx, "creating record", "resource", s.name)
	var result T
	if err := s.r.do(ctx, http.MethodPost, s.path, body, &result); err != nil {
		debug.Log(ctx, "create failed", "resource", s.name, "error", err)
		return nil, err
	}
	debug.Log(ctx, "created record", "resource", s.name)
	return &result, nil
}

// update sends a partial update (PATCH).
func (s Resource[T]) update(ctx context.Context, id int, body requestBody) (*T, error) {
	return s.write(ctx, http.MethodPatch, id, body)
}

// replace sends a full replacement (PUT).
func (s Resource[T]) replace(ctx context.Context, id int, body requestBody) (*T, error) {
	return s.write(ctx, http.MethodPut, id, body)
}

func (s Resource[T]) write(ctx context.Context, method string, id int, body requestBody) (*T, error) {
	release, err := s.r.acquire(ctx, s.key(id))
	if err != nil {
		return nil, err
	}
	defer release()

	debug.Log(ctx, "updating record", "resource", s.name, "id", id, "method", method)
	var result T
	if err := s.r.do(ctx, method, s.itemPath(id), body, &result); err != nil {
		debug.Log(ctx, "update failed", "resource", s.name, "id", id, "error", err)
		return nil, err
	}
	debug.Log(ctx, "updated record", "resource", s.name, "id", id)
	return &result, nil
}
