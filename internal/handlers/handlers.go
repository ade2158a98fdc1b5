package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"DONATION_CHECKOUT_GO/internal/checkout"
	"DONATION_CHECKOUT_GO/internal/confirm"
	"DONATION_CHECKOUT_GO/internal/methods"
	"DONATION_CHECKOUT_GO/internal/modal"
	"DONATION_CHECKOUT_GO/internal/money"
	"DONATION_CHECKOUT_GO/internal/session"
	"DONATION_CHECKOUT_GO/internal/utils"

	"github.com/gorilla/mux"
)

type Handler struct {
	Sessions *session.Registry
	Log      *utils.Logger
}

func NewHandler(sessions *session.Registry, logger *utils.Logger) *Handler {
	return &Handler{
		Sessions: sessions,
		Log:      logger,
	}
}

type amountRequest struct {
	Preset *int64  `json:"preset"`
	Custom *string `json:"custom"`
}

type walletApp struct {
	methods.PaymentApp
	Link      string `json:"link"`
	StoreLink string `json:"storeLink"`
}

type walletCountry struct {
	Country methods.Country `json:"country"`
	Apps    []walletApp     `json:"apps"`
}

type walletView struct {
	Device    methods.Device  `json:"device"`
	Primary   walletApp       `json:"primary"`
	Countries []walletCountry `json:"countries"`
}

func (h *Handler) OpenSession(w http.ResponseWriter, r *http.Request) {
	s := h.Sessions.Open(r.Context())
	utils.RespondJSON(w, http.StatusCreated, map[string]interface{}{
		"sessionId": s.ID,
		"methods":   s.Modal.Methods(),
	})
}

func (h *Handler) CloseSession(w http.ResponseWriter, r *http.Request) {
	if !h.Sessions.Close(mux.Vars(r)["id"]) {
		utils.RespondError(w, http.StatusNotFound, "sessao nao encontrada")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) SelectMethod(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	method := methods.Method(mux.Vars(r)["method"])
	view, err := s.Modal.Select(r.Context(), method)
	if err != nil {
		h.respondErr(w, "selecao_metodo_falhou", err)
		return
	}

	var payload interface{} = view
	switch v := view.(type) {
	case *methods.Wallet:
		payload = walletPayload(v, r.UserAgent())
	case *modal.StripeView:
		payload = v.Snapshot()
	}
	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"method": method,
		"view":   payload,
	})
}

func (h *Handler) Back(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	s.Modal.Back()
	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{"methods": s.Modal.Methods()})
}

func (h *Handler) StripeSnapshot(w http.ResponseWriter, r *http.Request) {
	view, ok := h.stripe(w, r)
	if !ok {
		return
	}
	utils.RespondJSON(w, http.StatusOK, view.Snapshot())
}

func (h *Handler) SelectAmount(w http.ResponseWriter, r *http.Request) {
	view, ok := h.stripe(w, r)
	if !ok {
		return
	}

	var req amountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "JSON invalido")
		return
	}
	if (req.Preset == nil) == (req.Custom == nil) {
		utils.RespondError(w, http.StatusBadRequest, "informe preset ou custom")
		return
	}

	var err error
	if req.Preset != nil {
		err = view.SelectPreset(r.Context(), *req.Preset)
	} else {
		err = view.SubmitCustom(r.Context(), *req.Custom)
	}
	if err != nil {
		h.respondErr(w, "selecao_valor_falhou", err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, view.Snapshot())
}

func (h *Handler) ChangeAmount(w http.ResponseWriter, r *http.Request) {
	view, ok := h.stripe(w, r)
	if !ok {
		return
	}
	view.ChangeAmount(r.Context())
	utils.RespondJSON(w, http.StatusOK, view.Snapshot())
}

func (h *Handler) Retry(w http.ResponseWriter, r *http.Request) {
	view, ok := h.stripe(w, r)
	if !ok {
		return
	}
	if err := view.Retry(r.Context()); err != nil {
		h.respondErr(w, "retry_falhou", err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, view.Snapshot())
}

func (h *Handler) Confirm(w http.ResponseWriter, r *http.Request) {
	h.confirm(w, r, false)
}

func (h *Handler) Express(w http.ResponseWriter, r *http.Request) {
	h.confirm(w, r, true)
}

func (h *Handler) confirm(w http.ResponseWriter, r *http.Request, express bool) {
	view, ok := h.stripe(w, r)
	if !ok {
		return
	}

	var details confirm.PaymentDetails
	if err := json.NewDecoder(r.Body).Decode(&details); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "JSON invalido")
		return
	}

	var (
		outcome confirm.Outcome
		err     error
	)
	if express {
		outcome, err = view.Express(r.Context(), details)
	} else {
		outcome, err = view.Confirm(r.Context(), details)
	}
	if err != nil {
		h.respondErr(w, "confirmacao_rejeitada", err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, outcome)
}

func (h *Handler) DownloadQR(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	qr, err := s.Modal.QR()
	if err != nil {
		h.respondErr(w, "download_qr_falhou", err)
		return
	}

	var buf bytes.Buffer
	contentType, err := qr.Download(r.Context(), &buf)
	if err != nil {
		h.respondErr(w, "download_qr_falhou", err)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", qr.FileName))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func (h *Handler) session(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	id := strings.TrimSpace(mux.Vars(r)["id"])
	s, ok := h.Sessions.Get(id)
	if !ok {
		utils.RespondError(w, http.StatusNotFound, "sessao nao encontrada")
		return nil, false
	}
	return s, true
}

func (h *Handler) stripe(w http.ResponseWriter, r *http.Request) (*modal.StripeView, bool) {
	s, ok := h.session(w, r)
	if !ok {
		return nil, false
	}
	view, err := s.Modal.Stripe()
	if err != nil {
		h.respondErr(w, "stripe_indisponivel", err)
		return nil, false
	}
	return view, true
}

func (h *Handler) respondErr(w http.ResponseWriter, event string, err error) {
	status := statusFor(err)
	fields := map[string]interface{}{"error": err.Error(), "status": status}
	if status >= http.StatusInternalServerError {
		h.Log.Error(event, fields)
	} else {
		h.Log.Info(event, fields)
	}

	if checkout.Retryable(err) {
		utils.RespondJSON(w, status, map[string]interface{}{
			"error":     checkout.PublicMessage(err),
			"retryable": true,
		})
		return
	}
	utils.RespondError(w, status, err.Error())
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, money.ErrAmountInvalid):
		return http.StatusBadRequest
	case errors.Is(err, modal.ErrMethodUnavailable):
		return http.StatusNotFound
	case errors.Is(err, modal.ErrMethodNotSelected),
		errors.Is(err, modal.ErrModalClosed),
		errors.Is(err, modal.ErrIntentNotReady),
		errors.Is(err, checkout.ErrAmountAlreadySelected),
		errors.Is(err, checkout.ErrRetryNotAllowed),
		errors.Is(err, checkout.ErrStaleResponse),
		errors.Is(err, confirm.ErrFlowClosed),
		errors.Is(err, confirm.ErrConfirmationPending):
		return http.StatusConflict
	case checkout.Retryable(err), errors.Is(err, methods.ErrAssetUnavailable):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func walletPayload(wallet *methods.Wallet, userAgent string) walletView {
	annotate := func(app methods.PaymentApp) walletApp {
		return walletApp{
			PaymentApp: app,
			Link:       methods.Link(app, userAgent),
			StoreLink:  methods.StoreLink(app, userAgent),
		}
	}

	out := walletView{
		Device:    methods.DetectDevice(userAgent),
		Primary:   annotate(wallet.Primary),
		Countries: make([]walletCountry, 0, len(wallet.Countries)),
	}
	for _, c := range wallet.Countries {
		apps := make([]walletApp, 0, len(c.Apps))
		for _, app := range c.Apps {
			apps = append(apps, annotate(app))
		}
		out.Countries = append(out.Countries, walletCountry{Country: c.Country, Apps: apps})
	}
	return out
}
