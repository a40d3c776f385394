// Package router wires handlers and middleware into the gin engine.
package router

import (
	"net/http"
	"path"

	"github.com/gin-gonic/gin"
)

// DefaultBasePath is the prefix of every resource route
const DefaultBasePath = "/api"

// Resource declares the routes under one path prefix, plus nested
// resources below it. Routes are collected first and bound by Mount.
type Resource struct {
	name       string
	prefix     string
	middleware []gin.HandlerFunc
	routes     []route
	children   []*Resource
}

type route struct {
	method   string
	path     string
	handlers []gin.HandlerFunc
}

// NewResource starts a resource mounted at prefix
func NewResource(name, prefix string) *Resource {
	return &Resource{name: name, prefix: prefix}
}

// Name identifies the resource in route listings
func (r *Resource) Name() string { return r.name }

// Use adds middleware run before every route of r and its children
func (r *Resource) Use(middleware ...gin.HandlerFunc) *Resource {
	r.middleware = append(r.middleware, middleware...)
	return r
}

// Handle adds a route relative to the resource prefix
func (r *Resource) Handle(method, relPath string, handlers ...gin.HandlerFunc) *Resource {
	r.routes = append(r.routes, route{method: method, path: relPath, handlers: handlers})
	return r
}

func (r *Resource) GET(relPath string, handlers ...gin.HandlerFunc) *Resource {
	return r.Handle(http.MethodGet, relPath, handlers...)
}

func (r *Resource) POST(relPath string, handlers ...gin.HandlerFunc) *Resource {
	return r.Handle(http.MethodPost, relPath, handlers...)
}

func (r *Resource) PUT(relPath string, handlers ...gin.HandlerFunc) *Resource {
	return r.Handle(http.MethodPut, relPath, handlers...)
}

func (r *Resource) DELETE(relPath string, handlers ...gin.HandlerFunc) *Resource {
	return r.Handle(http.MethodDelete, relPath, handlers...)
}

// Nest declares a child resource below r, e.g. "/:id/contact" under "/partner"
func (r *Resource) Nest(name, prefix string) *Resource {
	child := NewResource(name, prefix)
	r.children = append(r.children, child)
	return child
}

// Mount binds r and its children onto rg
func (r *Resource) Mount(rg *gin.RouterGroup) {
	group := rg.Group(r.prefix, r.middleware...)
	for _, rt := range r.routes {
		group.Handle(rt.method, rt.path, rt.handlers...)
	}
	for _, child := range r.children {
		child.Mount(group)
	}
}

// Routes lists "METHOD /path" for r and its children below base
func (r *Resource) Routes(base string) []string {
	prefix := joinPath(base, r.prefix)
	var out []string
	for _, rt := range r.routes {
		out = append(out, rt.method+" "+joinPath(prefix, rt.path))
	}
	for _, child := range r.children {
		out = append(out, child.Routes(prefix)...)
	}
	return out
}

// Mount binds resources under basePath, behind middleware shared by all of them
func Mount(engine *gin.Engine, basePath string, resources []*Resource, middleware ...gin.HandlerFunc) {
	api := engine.Group(basePath, middleware...)
	for _, res := range resources {
		res.Mount(api)
	}
}

func joinPath(base, rel string) string {
	if rel == "" {
		return base
	}
	return path.Join(base, rel)
}
