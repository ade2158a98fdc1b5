package handlers

import (
	"net/http"
	"sort"
	"time"

	"DONATION_CHECKOUT_GO/internal/utils"

	"github.com/gorilla/mux"
)

// Health reports open sessions and the methods served per path.
func (h *Handler) Health(router *mux.Router) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		routes := map[string][]string{}
		_ = router.Walk(func(route *mux.Route, _ *mux.Router, _ []*mux.Route) error {
			path, err := route.GetPathTemplate()
			if err != nil {
				return nil
			}
			verbs, err := route.GetMethods()
			if err != nil {
				return nil
			}
			for _, verb := range verbs {
				if verb != http.MethodOptions {
					routes[path] = append(routes[path], verb)
				}
			}
			return nil
		})
		for path := range routes {
			sort.Strings(routes[path])
		}

		utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
			"status":    "online",
			"checkedAt": time.Now().UTC().Format(time.RFC3339),
			"sessions": map[string]interface{}{
				"active":     h.Sessions.Len(),
				"ttlSeconds": int(h.Sessions.TTL().Seconds()),
			},
			"routes": routes,
		})
	}
}
