// Package ctx provides a gin.Context-inspired request context for handlers.
//
// Instead of accepting (http.ResponseWriter, *http.Request), a handler
// receives a single *Context with helper methods:
//
//	func (pc *ProductController) Show(c *ctx.Context) {
//	    product, err := pc.catalog.Get(c.Context(), c.Param("id"))
//	    ...
//	    c.Success(product)
//	}
//
//	// Register with ctx.Wrap:
//	r.Get("/products/{id}", "products.show", ctx.Wrap(pc.Show))
package ctx

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"

	"github.com/shashiranjanraj/nexus/pkg/bind"
	"github.com/shashiranjanraj/nexus/pkg/response"
)

// HandlerFunc is the context-aware handler signature.
type HandlerFunc func(c *Context)

// Wrap converts a HandlerFunc to a standard http.HandlerFunc so it can be
// passed to any router method.
func Wrap(h HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := acquire(w, r)
		defer release(c)
		h(c)
	}
}

// ─── Context ──────────────────────────────────────────────────────────────────

// Context wraps a request/response pair and provides a helper API.
type Context struct {
	W http.ResponseWriter
	R *http.Request
}

// pool recycles Context objects to reduce GC pressure.
var pool = sync.Pool{
	New: func() any { return new(Context) },
}

func acquire(w http.ResponseWriter, r *http.Request) *Context {
	c := pool.Get().(*Context)
	c.W = w
	c.R = r
	return c
}

func release(c *Context) {
	c.W = nil
	c.R = nil
	pool.Put(c)
}

// ─── Request helpers ──────────────────────────────────────────────────────────

// Param returns a URL path parameter (e.g. "/products/{id}" → c.Param("id")).
func (c *Context) Param(key string) string {
	return chi.URLParam(c.R, key)
}

// Context returns the underlying request context.
func (c *Context) Context() context.Context { return c.R.Context() }

// ─── Binding ──────────────────────────────────────────────────────────────────

// Bind decodes the JSON body into dest with b and validates it.
// On failure the response is already written and Bind returns false:
// 422 for validation and malformed bodies, 413 for oversized ones.
//
//	var in RegisterRequest
//	if !c.Bind(ac.binder, &in) {
//	    return
//	}
func (c *Context) Bind(b *bind.Binder, dest any) bool {
	err := b.JSON(c.W, c.R, dest)
	if err == nil {
		return true
	}

	var fields bind.FieldErrors
	switch {
	case errors.As(err, &fields):
		c.ValidationError(fields)
	case errors.Is(err, bind.ErrBodyTooLarge):
		c.Error(http.StatusRequestEntityTooLarge, err.Error())
	case errors.Is(err, bind.ErrMalformedBody):
		c.ValidationError(map[string]string{"body": "invalid JSON"})
	default:
		c.Error(http.StatusInternalServerError, "Internal server error")
	}
	return false
}

// ─── Response helpers ─────────────────────────────────────────────────────────

// JSON writes v as the response body with the given status code.
func (c *Context) JSON(code int, v any) {
	response.JSON(c.W, code, v)
}

// Success sends a 200 with data.
func (c *Context) Success(data any) {
	c.JSON(http.StatusOK, data)
}

// Error sends a JSON error envelope with the given status and message.
func (c *Context) Error(code int, message string) {
	response.Error(c.W, code, message)
}

// ValidationError sends a 422 Unprocessable Entity with field-level errors.
func (c *Context) ValidationError(errs map[string]string) {
	response.ValidationError(c.W, errs)
}

// Unauthorized sends a 401 with message.
func (c *Context) Unauthorized(message string) {
	response.Unauthorized(c.W, message)
}
