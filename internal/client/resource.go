package client

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
)

// Resource is the CRUD surface shared by every entity collection.
// T is the entity, C its create payload, U its partial update payload.
type Resource[T, C, U any] struct {
	c    *Client
	base string // collection path with trailing slash, e.g. /api/devices/
}

func (r Resource[T, C, U]) item(id int64) string {
	return r.base + strconv.FormatInt(id, 10)
}

func (r Resource[T, C, U]) List(ctx context.Context) ([]T, error) {
	return request[[]T](ctx, r.c, http.MethodGet, r.base, nil)
}

func (r Resource[T, C, U]) Get(ctx context.Context, id int64) (T, error) {
	return request[T](ctx, r.c, http.MethodGet, r.item(id), nil)
}

func (r Resource[T, C, U]) Create(ctx context.Context, in C) (T, error) {
	return request[T](ctx, r.c, http.MethodPost, r.base, in)
}

// Update sends only the fields set in in.
func (r Resource[T, C, U]) Update(ctx context.Context, id int64, in U) (T, error) {
	return request[T](ctx, r.c, http.MethodPut, r.item(id), in)
}

func (r Resource[T, C, U]) Delete(ctx context.Context, id int64) error {
	_, err := request[json.RawMessage](ctx, r.c, http.MethodDelete, r.item(id), nil)
	return err
}
