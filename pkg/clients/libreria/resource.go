package libreria

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/libreria-gestion/backoffice/internal/domain/models"
)

// Resource issues CRUD calls against one REST collection.
type Resource[T any] struct {
	httpClient *resty.Client
	kind       models.Kind
	logger     *zap.Logger
}

// NewResource binds a collection of the given kind to an HTTP client.
func NewResource[T any](httpClient *resty.Client, kind models.Kind, logger *zap.Logger) *Resource[T] {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resource[T]{
		httpClient: httpClient,
		kind:       kind,
		logger:     logger.With(zap.String("resource", string(kind))),
	}
}

// List fetches the full collection.
func (r *Resource[T]) List(ctx context.Context) ([]T, error) {
	var result []T
	if err := r.do(ctx, "list", http.MethodGet, r.kind.Path(), nil, &result); err != nil {
		return nil, err
	}
	if result == nil {
		result = []T{}
	}
	return result, nil
}

// Get fetches one record by id.
func (r *Resource[T]) Get(ctx context.Context, id models.ID) (T, error) {
	var result T
	err := r.do(ctx, "get", http.MethodGet, r.itemPath(id), nil, &result)
	return result, err
}

// Create submits a draft; the server assigns the id.
func (r *Resource[T]) Create(ctx context.Context, draft T) (T, error) {
	var result T
	err := r.do(ctx, "create", http.MethodPost, r.kind.Path(), draft, &result)
	return result, err
}

// Update replaces the mutable fields of the record with the given id.
func (r *Resource[T]) Update(ctx context.Context, id models.ID, draft T) (T, error) {
	var result T
	err := r.do(ctx, "update", http.MethodPut, r.itemPath(id), draft, &result)
	return result, err
}

// Delete removes the record with the given id. Deleting an id that is
// already gone reports ErrNotFound.
func (r *Resource[T]) Delete(ctx context.Context, id models.ID) error {
	return r.do(ctx, "delete", http.MethodDelete, r.itemPath(id), nil, nil)
}

func (r *Resource[T]) itemPath(id models.ID) string {
	return fmt.Sprintf("%s/%s", r.kind.Path(), id)
}

func (r *Resource[T]) do(ctx context.Context, op, method, path string, body, result any) error {
	apiErr := new(errorBody)

	req := r.httpClient.R().
		SetContext(ctx).
		SetError(apiErr)
	if body != nil {
		req.SetBody(body)
	}
	if result != nil {
		req.SetResult(result)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		r.logger.Debug("request failed", zap.String("op", op), zap.String("path", path), zap.Error(err))
		status := 0
		if resp != nil {
			status = resp.StatusCode()
		}
		switch {
		case status >= http.StatusBadRequest:
			return newStatusError(op, r.kind, status, apiErr.text())
		case status != 0:
			// The server answered but the body could not be decoded.
			return &APIError{Op: op, Kind: r.kind, Status: status, Err: models.ErrUnknown, Cause: err}
		default:
			return &APIError{Op: op, Kind: r.kind, Err: models.ErrNetwork, Cause: err}
		}
	}

	r.logger.Debug("request completed",
		zap.String("op", op),
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode()),
		zap.Duration("duration", resp.Time()))

	if resp.IsError() {
		return newStatusError(op, r.kind, resp.StatusCode(), apiErr.text())
	}

	return nil
}
