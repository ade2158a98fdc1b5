package router

import (
	"net/http"

	"DONATION_CHECKOUT_GO/internal/handlers"
	"DONATION_CHECKOUT_GO/internal/utils"

	"github.com/gorilla/mux"
)

func New(h *handlers.Handler) *mux.Router {
	r := mux.NewRouter()
	r.Use(utils.CorsMiddleware)
	r.PathPrefix("/").Methods(http.MethodOptions).HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	r.HandleFunc("/health", h.Health(r)).Methods(http.MethodGet)

	r.HandleFunc("/donate/sessions", h.OpenSession).Methods(http.MethodPost)
	r.HandleFunc("/donate/sessions/{id}", h.CloseSession).Methods(http.MethodDelete)
	r.HandleFunc("/donate/sessions/{id}/methods/{method}", h.SelectMethod).Methods(http.MethodPost)
	r.HandleFunc("/donate/sessions/{id}/back", h.Back).Methods(http.MethodPost)
	r.HandleFunc("/donate/sessions/{id}/qr/download", h.DownloadQR).Methods(http.MethodGet)

	r.HandleFunc("/donate/sessions/{id}/stripe", h.StripeSnapshot).Methods(http.MethodGet)
	r.HandleFunc("/donate/sessions/{id}/stripe/amount", h.SelectAmount).Methods(http.MethodPost)
	r.HandleFunc("/donate/sessions/{id}/stripe/change-amount", h.ChangeAmount).Methods(http.MethodPost)
	r.HandleFunc("/donate/sessions/{id}/stripe/retry", h.Retry).Methods(http.MethodPost)
	r.HandleFunc("/donate/sessions/{id}/stripe/confirm", h.Confirm).Methods(http.MethodPost)
	r.HandleFunc("/donate/sessions/{id}/stripe/express", h.Express).Methods(http.MethodPost)
	return r
}
