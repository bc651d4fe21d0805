package handlers

import (
	"net/http"
)

// RegisteredRoute represents an endpoint with its handler. Public routes
// bypass the connection guard.
type RegisteredRoute struct {
	Method  string
	Path    string
	Handler http.Handler
	Public  bool
}

// Endpoint is one entry of the root route listing.
type Endpoint struct {
	Path    string   `json:"path"`
	Methods []string `json:"methods"`
}

// RegisterAllRoutes returns the thought endpoints.
func RegisterAllRoutes(deps HandlerDeps) []RegisteredRoute {
	return []RegisteredRoute{
		{Method: http.MethodGet, Path: "/thoughts", Handler: NewListThoughtsHandler(deps)},
		{Method: http.MethodPost, Path: "/thoughts", Handler: NewCreateThoughtHandler(deps)},
		{Method: http.MethodPost, Path: "/thoughts/{id}/like", Handler: NewLikeThoughtHandler(deps)},
	}
}

// NewRouter builds the HTTP handler serving the root listing, every
// registered route and a JSON 404 for anything else, all behind the
// connection guard.
func NewRouter(deps HandlerDeps) http.Handler {
	root := RegisteredRoute{Method: http.MethodGet, Path: "/", Public: true}
	routes := append([]RegisteredRoute{root}, RegisterAllRoutes(deps)...)
	routes[0].Handler = NewRootHandler(deps, ListEndpoints(routes))

	mux := http.NewServeMux()
	var public []RegisteredRoute
	for _, route := range routes {
		mux.Handle(muxPattern(route), route.Handler)
		if route.Public {
			public = append(public, route)
		}
	}
	mux.Handle("/", NewNotFoundHandler(deps))

	return RequireConnection(deps, public...)(mux)
}

// ListEndpoints groups routes by path, keeping registration order.
func ListEndpoints(routes []RegisteredRoute) []Endpoint {
	var endpoints []Endpoint
	index := make(map[string]int)
	for _, route := range routes {
		i, ok := index[route.Path]
		if !ok {
			i = len(endpoints)
			index[route.Path] = i
			endpoints = append(endpoints, Endpoint{Path: route.Path})
		}
		endpoints[i].Methods = append(endpoints[i].Methods, route.Method)
	}
	return endpoints
}

func muxPattern(route RegisteredRoute) string {
	path := route.Path
	if path == "/" {
		path = "/{$}"
	}
	return route.Method + " " + path
}
