package middleware

import (
	"net/http"
)

// MethodOverride rewrites POST requests carrying a _method form field to
// the verb it names, before routing happens. HTML forms can only submit GET
// and POST; the edit and delete forms use this to reach the PUT and DELETE
// routes. It wraps the router rather than running as a route middleware
// because the method must change before dispatch.
func MethodOverride(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			switch r.PostFormValue("_method") {
			case http.MethodPut:
				r.Method = http.MethodPut
			case http.MethodDelete:
				r.Method = http.MethodDelete
			}
		}
		next.ServeHTTP(w, r)
	})
}
