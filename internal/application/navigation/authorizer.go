// Package navigation decide si una navegación se permite a partir del estado de sesión
// y de los requisitos declarados de la ruta destino.
package navigation

import (
	"net/url"

	"github.com/jhoicas/user-console/internal/domain/entity"
	"github.com/jhoicas/user-console/pkg/logger"
)

// Reason motivo de la decisión.
type Reason string

const (
	ReasonAllowed              Reason = "allowed"
	ReasonAlreadyAuthenticated Reason = "already_authenticated"
	ReasonNotAuthenticated     Reason = "not_authenticated"
	ReasonSessionExpired       Reason = "session_expired"
	ReasonInsufficientRole     Reason = "insufficient_role"
	ReasonHomeRedirect         Reason = "home_redirect"
)

// SessionGuard vista del guard de sesión que necesita el autorizador.
type SessionGuard interface {
	IsAuthenticated() bool
	Restore() bool
	Expired() bool
	Logout()
	RecordActivity()
	HasRole(required entity.Role) bool
}

// Redirect destino de una navegación denegada.
type Redirect struct {
	Name  string            `json:"name"`
	Path  string            `json:"path"`
	Query map[string]string `json:"query,omitempty"`
}

// URL path con la query codificada (claves ordenadas).
func (r Redirect) URL() string {
	if len(r.Query) == 0 {
		return r.Path
	}
	q := url.Values{}
	for k, v := range r.Query {
		q.Set(k, v)
	}
	return r.Path + "?" + q.Encode()
}

// Decision resultado de autorizar una navegación.
type Decision struct {
	Allow    bool              `json:"allow"`
	Route    Route             `json:"-"`
	Params   map[string]string `json:"params,omitempty"`
	Redirect *Redirect         `json:"redirect,omitempty"`
	Reason   Reason            `json:"reason"`
}

// Authorizer aplica las reglas de navegación sobre la tabla de rutas.
type Authorizer struct {
	guard  SessionGuard
	routes *RouteTable
	log    *logger.Logger
}

// NewAuthorizer construye el autorizador. routes nil usa DefaultRoutes.
func NewAuthorizer(guard SessionGuard, routes *RouteTable, log *logger.Logger) *Authorizer {
	if routes == nil {
		routes = DefaultRoutes()
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Authorizer{guard: guard, routes: routes, log: log.Component("navigation")}
}

// Routes tabla usada por el autorizador.
func (a *Authorizer) Routes() *RouteTable { return a.routes }

// Authorize resuelve fullPath (path + query opcional) y decide.
func (a *Authorizer) Authorize(fullPath string) Decision {
	path := fullPath
	if u, err := url.Parse(fullPath); err == nil {
		path = u.Path
	}
	route, params := a.routes.Match(path)
	d := a.Decide(route, fullPath)
	d.Params = params
	return d
}

// Decide aplica las reglas a una ruta ya resuelta.
func (a *Authorizer) Decide(route Route, fullPath string) Decision {
	if route.RedirectTo != "" {
		return a.deny(route, a.redirectTo(route.RedirectTo, nil), ReasonHomeRedirect)
	}

	if !route.RequiresAuth {
		if route.Name == RouteLogin && a.guard.IsAuthenticated() {
			return a.deny(route, a.redirectTo(RouteUserManagement, nil), ReasonAlreadyAuthenticated)
		}
		return Decision{Allow: true, Route: route, Reason: ReasonAllowed}
	}

	if !a.guard.IsAuthenticated() && !a.guard.Restore() {
		return a.deny(route, a.redirectTo(RouteLogin, map[string]string{"redirect": fullPath}), ReasonNotAuthenticated)
	}

	if a.guard.Expired() {
		a.guard.Logout()
		return a.deny(route, a.redirectTo(RouteLogin, map[string]string{"redirect": fullPath, "expired": "true"}), ReasonSessionExpired)
	}

	a.guard.RecordActivity()

	if route.RequiredRole != "" && !a.guard.HasRole(route.RequiredRole) {
		return a.deny(route, a.redirectTo(RouteUnauthorized, nil), ReasonInsufficientRole)
	}
	return Decision{Allow: true, Route: route, Reason: ReasonAllowed}
}

func (a *Authorizer) deny(route Route, to *Redirect, reason Reason) Decision {
	a.log.Debug().Str("route", route.Name).Str("reason", string(reason)).Str("redirect", to.URL()).Msg("navegación denegada")
	return Decision{Allow: false, Route: route, Redirect: to, Reason: reason}
}

func (a *Authorizer) redirectTo(name string, query map[string]string) *Redirect {
	path := "/"
	if r, ok := a.routes.ByName(name); ok {
		path = r.Path
	}
	return &Redirect{Name: name, Path: path, Query: query}
}
