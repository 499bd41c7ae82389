package guard

import (
	"net/http"
	"net/url"
	"sort"
	"strings"

	"quadras/web/internal/authctx"
	"quadras/web/internal/httpjson"
	"quadras/web/internal/logging"
	"quadras/web/internal/session"
)

// AnyRole marks a prefix that only needs an authenticated caller.
const AnyRole session.Role = "*"

// Rule maps a path prefix to the role it requires.
type Rule struct {
	Prefix string
	Role   session.Role
}

// Table is evaluated once per request; the longest matching prefix wins.
type Table []Rule

type Decision int

const (
	Allow Decision = iota
	Unauthenticated
	Forbidden
)

func DefaultTable() Table {
	return NewTable(
		Rule{Prefix: "/admin", Role: session.RoleAdmin},
		Rule{Prefix: "/dashboard", Role: session.RoleArena},
		Rule{Prefix: "/perfil/arena", Role: session.RoleArena},
		Rule{Prefix: "/perfil/atleta", Role: session.RoleAthlete},

		Rule{Prefix: "/api/admin", Role: session.RoleAdmin},
		Rule{Prefix: "/api/arena", Role: session.RoleArena},
		Rule{Prefix: "/api/atleta", Role: session.RoleAthlete},
		Rule{Prefix: "/api/me", Role: AnyRole},
		Rule{Prefix: "/api/session", Role: AnyRole},
		Rule{Prefix: "/api/upload", Role: AnyRole},
	)
}

func NewTable(rules ...Rule) Table {
	t := make(Table, 0, len(rules))
	for _, r := range rules {
		r.Prefix = "/" + strings.Trim(r.Prefix, "/")
		t = append(t, r)
	}
	sort.SliceStable(t, func(i, j int) bool { return len(t[i].Prefix) > len(t[j].Prefix) })
	return t
}

// Match finds the rule guarding path. Prefixes only match on segment
// boundaries, so "/admin" guards "/admin/x" but not "/administrator".
func (t Table) Match(path string) (Rule, bool) {
	for _, r := range t {
		if r.Prefix == "/" {
			return r, true
		}
		if path == r.Prefix || strings.HasPrefix(path, r.Prefix+"/") {
			return r, true
		}
	}
	return Rule{}, false
}

func (t Table) Decide(path string, p *session.Principal) Decision {
	rule, ok := t.Match(path)
	if !ok {
		return Allow
	}
	if p == nil {
		return Unauthenticated
	}
	if rule.Role == AnyRole || p.Role == rule.Role {
		return Allow
	}
	return Forbidden
}

type Options struct {
	LoginPath  string
	DeniedPath string
}

// Middleware enforces the table. It expects the principal (if any) to be in
// the request context already. Pages are redirected; /api paths get 401/403.
func Middleware(t Table, opts Options) func(http.Handler) http.Handler {
	if opts.LoginPath == "" {
		opts.LoginPath = "/login"
	}
	if opts.DeniedPath == "" {
		opts.DeniedPath = "/acesso-negado"
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, _ := authctx.Principal(r.Context())
			decision := t.Decide(r.URL.Path, p)
			if decision == Allow {
				next.ServeHTTP(w, r)
				return
			}

			logging.FromContext(r.Context()).InfoContext(r.Context(), "route guard refused request",
				"decision", decision.String(), "path", r.URL.Path)

			if isAPI(r.URL.Path) {
				if decision == Unauthenticated {
					httpjson.Error(w, http.StatusUnauthorized, "authentication required")
					return
				}
				httpjson.Error(w, http.StatusForbidden, "access denied")
				return
			}

			if decision == Unauthenticated {
				http.Redirect(w, r, LoginURL(opts.LoginPath, r.URL), http.StatusSeeOther)
				return
			}
			http.Redirect(w, r, opts.DeniedPath, http.StatusSeeOther)
		})
	}
}

// LoginURL points at the login page with the original target as callbackUrl.
func LoginURL(loginPath string, target *url.URL) string {
	q := url.Values{}
	q.Set("callbackUrl", target.RequestURI())
	return loginPath + "?" + q.Encode()
}

func (d Decision) String() string {
	switch d {
	case Allow:
		return "allow"
	case Unauthenticated:
		return "unauthenticated"
	case Forbidden:
		return "forbidden"
	}
	return "unknown"
}

func isAPI(path string) bool {
	return path == "/api" || strings.HasPrefix(path, "/api/")
}
