package navigation

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/jhoicas/user-console/internal/domain/entity"
)

// Nombres de ruta de la consola.
const (
	RouteHome           = "Home"
	RouteLogin          = "Login"
	RouteUnauthorized   = "Unauthorized"
	RouteUserManagement = "UserManagement"
	RouteUserDetail     = "UserDetail"
	RouteNotFound       = "NotFound"
)

// Route requisitos declarados de una ruta. Path admite segmentos ":param".
// RedirectTo != "" marca una ruta que solo reenvía a otra (no se renderiza).
type Route struct {
	Name         string
	Path         string
	RequiresAuth bool
	RequiredRole entity.Role
	RedirectTo   string
}

// RouteTable tabla de rutas de página resuelta con un árbol chi; NotFound atrapa el resto.
type RouteTable struct {
	routes    []Route
	fallback  Route
	mux       *chi.Mux
	byPattern map[string]Route
}

// NewRouteTable construye una tabla con las rutas dadas y la ruta de respaldo.
// Ante dos rutas con el mismo patrón gana la primera.
func NewRouteTable(fallback Route, routes ...Route) *RouteTable {
	t := &RouteTable{
		routes:    append([]Route(nil), routes...),
		fallback:  fallback,
		mux:       chi.NewRouter(),
		byPattern: make(map[string]Route, len(routes)),
	}
	for _, r := range t.routes {
		pattern := chiPattern(r.Path)
		if _, dup := t.byPattern[pattern]; dup || !strings.HasPrefix(pattern, "/") {
			continue
		}
		t.byPattern[pattern] = r
		t.mux.Get(pattern, pageHandler)
	}
	return t
}

// DefaultRoutes tabla de la consola de usuarios.
func DefaultRoutes() *RouteTable {
	return NewRouteTable(
		Route{Name: RouteNotFound, Path: "*"},
		Route{Name: RouteHome, Path: "/", RedirectTo: RouteUserManagement},
		Route{Name: RouteLogin, Path: "/login"},
		Route{Name: RouteUnauthorized, Path: "/unauthorized"},
		Route{Name: RouteUserManagement, Path: "/users", RequiresAuth: true, RequiredRole: entity.RoleViewer},
		Route{Name: RouteUserDetail, Path: "/users/:id", RequiresAuth: true, RequiredRole: entity.RoleEditor},
	)
}

// Match resuelve el path (sin query) contra la tabla y devuelve la ruta y sus parámetros.
// La barra final se ignora, como en el router HTTP.
func (t *RouteTable) Match(path string) (Route, map[string]string) {
	if len(path) > 1 {
		path = strings.TrimSuffix(path, "/")
	}
	if path == "" {
		path = "/"
	}
	rctx := chi.NewRouteContext()
	if !t.mux.Match(rctx, http.MethodGet, path) {
		return t.fallback, map[string]string{}
	}
	route, ok := t.byPattern[rctx.RoutePattern()]
	if !ok {
		return t.fallback, map[string]string{}
	}
	params := make(map[string]string, len(rctx.URLParams.Keys))
	for i, key := range rctx.URLParams.Keys {
		if rctx.URLParams.Values[i] == "" {
			return t.fallback, map[string]string{}
		}
		params[key] = rctx.URLParams.Values[i]
	}
	return route, params
}

// ByName busca una ruta por nombre (incluida la de respaldo).
func (t *RouteTable) ByName(name string) (Route, bool) {
	if t.fallback.Name == name {
		return t.fallback, true
	}
	for _, r := range t.routes {
		if r.Name == name {
			return r, true
		}
	}
	return Route{}, false
}

// Routes copia de las rutas registradas (sin la de respaldo).
func (t *RouteTable) Routes() []Route {
	return append([]Route(nil), t.routes...)
}

// Fallback ruta de respaldo.
func (t *RouteTable) Fallback() Route { return t.fallback }

// chiPattern traduce los segmentos ":param" a la sintaxis "{param}" de chi.
func chiPattern(path string) string {
	segs := strings.Split(path, "/")
	for i, seg := range segs {
		if name, ok := strings.CutPrefix(seg, ":"); ok {
			segs[i] = "{" + name + "}"
		}
	}
	return strings.Join(segs, "/")
}

// pageHandler solo marca el patrón en el árbol; la tabla nunca sirve peticiones.
func pageHandler(http.ResponseWriter, *http.Request) {}
