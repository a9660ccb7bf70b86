package ticket_api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"ticket-journal/internal/friends"
	"ticket-journal/internal/logger"
	"ticket-journal/internal/models"
	"ticket-journal/internal/profile"
	"ticket-journal/internal/tickets"
	"ticket-journal/internal/tickets/share"
	"ticket-journal/internal/utils"
)

const qrImageSize = 256

// Handler exposes the in-memory stores to the app's screens over HTTP.
type Handler struct {
	Store   *tickets.Store
	Friends *friends.Store
	Profile *profile.Store
	Logger  *logger.Logger
}

func NewHandler(store *tickets.Store, friendStore *friends.Store, profileStore *profile.Store, log *logger.Logger) *Handler {
	return &Handler{
		Store:   store,
		Friends: friendStore,
		Profile: profileStore,
		Logger:  log,
	}
}

// Routes mounts every endpoint of the journal service.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Route("/tickets", func(r chi.Router) {
		r.Post("/", h.CreateTicket)
		r.Get("/", h.ListTickets)
		r.Get("/stats", h.TicketStats)
		r.Post("/bulk-delete", h.BulkDeleteTickets)
		r.Get("/views/month", h.MonthView)
		r.Get("/views/day", h.DayView)
		r.Get("/views/grid", h.GridView)
		r.Patch("/{ticketID}", h.UpdateTicket)
		r.Delete("/{ticketID}", h.DeleteTicket)
		r.Get("/{ticketID}/qr", h.TicketQR)
	})
	r.Route("/friends", func(r chi.Router) {
		r.Get("/", h.ListFriends)
		r.Post("/", h.AddFriend)
		r.Delete("/{friendID}", h.RemoveFriend)
	})
	r.Route("/profile", func(r chi.Router) {
		r.Get("/", h.GetProfile)
		r.Put("/", h.UpdateProfile)
	})
	return r
}

func (h *Handler) CreateTicket(w http.ResponseWriter, r *http.Request) {
	var data models.CreateTicketData
	if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
		writeJSON(w, http.StatusBadRequest, utils.ErrorResponse("invalid request body"))
		return
	}

	ticket, err := h.Store.Add(data)
	if err != nil {
		h.writeStoreError(w, err)
		return
	}

	h.Logger.LogTicket("CREATE", ticket.ID, ticket.Title)
	writeJSON(w, http.StatusCreated, utils.SuccessResponse(ticket))
}

func (h *Handler) ListTickets(w http.ResponseWriter, r *http.Request) {
	filters, err := parseFilters(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, utils.ErrorResponse(err.Error()))
		return
	}

	list := tickets.ApplyTicketFilters(h.Store.List(), filters)
	writeJSON(w, http.StatusOK, utils.SuccessResponse(list))
}

func (h *Handler) UpdateTicket(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "ticketID")

	var data models.UpdateTicketData
	if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
		writeJSON(w, http.StatusBadRequest, utils.ErrorResponse("invalid request body"))
		return
	}

	ticket, err := h.Store.Update(id, data)
	if err != nil {
		h.writeStoreError(w, err)
		return
	}

	h.Logger.LogTicket("UPDATE", id, ticket.Title)
	writeJSON(w, http.StatusOK, utils.SuccessResponse(ticket))
}

func (h *Handler) DeleteTicket(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "ticketID")

	if err := h.Store.Delete(id); err != nil {
		h.writeStoreError(w, err)
		return
	}

	h.Logger.LogTicket("DELETE", id, "deleted")
	writeJSON(w, http.StatusOK, utils.SuccessResponse(nil))
}

func (h *Handler) BulkDeleteTickets(w http.ResponseWriter, r *http.Request) {
	var body struct {
		IDs []string `json:"ids"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, utils.ErrorResponse("invalid request body"))
		return
	}

	result := h.Store.BulkDelete(body.IDs)
	for _, e := range result.Errors {
		h.Logger.Warn("TICKET", "bulk delete "+e.TicketID+": "+e.Reason)
	}
	writeJSON(w, http.StatusOK, utils.SuccessResponse(result))
}

func (h *Handler) TicketStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, utils.SuccessResponse(h.Store.Stats()))
}

// MonthView returns the current month's tickets. The empty flag is the
// explicit empty-state signal for the screen; no placeholder records exist
// anywhere in the store.
func (h *Handler) MonthView(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	list := tickets.MonthOf(h.Store.List(), now)
	writeJSON(w, http.StatusOK, utils.SuccessResponse(map[string]interface{}{
		"month":   now.Format("2006-01"),
		"tickets": list,
		"empty":   len(list) == 0,
	}))
}

func (h *Handler) DayView(w http.ResponseWriter, r *http.Request) {
	day, err := time.Parse("2006-01-02", r.URL.Query().Get("date"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, utils.ErrorResponse("date must be YYYY-MM-DD"))
		return
	}
	writeJSON(w, http.StatusOK, utils.SuccessResponse(tickets.OnDay(h.Store.List(), day)))
}

func (h *Handler) GridView(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, utils.SuccessResponse(tickets.Grid(h.Store.List())))
}

func (h *Handler) TicketQR(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "ticketID")

	var found *models.Ticket
	for _, t := range h.Store.List() {
		if t.ID == id {
			ticket := t
			found = &ticket
			break
		}
	}
	if found == nil {
		h.writeStoreError(w, &tickets.NotFoundError{ID: id})
		return
	}

	png, err := share.TicketQR(*found, qrImageSize)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, utils.ErrorResponse("failed to render QR code"))
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}

func (h *Handler) ListFriends(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, utils.SuccessResponse(h.Friends.List()))
}

func (h *Handler) AddFriend(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name      string `json:"name"`
		AvatarURI string `json:"avatar_uri"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, utils.ErrorResponse("invalid request body"))
		return
	}

	friend, err := h.Friends.Add(body.Name, body.AvatarURI)
	if err != nil {
		var dup *friends.DuplicateError
		if errors.As(err, &dup) {
			writeJSON(w, http.StatusConflict, utils.ErrorResponse(err.Error()))
			return
		}
		writeJSON(w, http.StatusBadRequest, utils.ErrorResponse(err.Error()))
		return
	}
	writeJSON(w, http.StatusCreated, utils.SuccessResponse(friend))
}

func (h *Handler) RemoveFriend(w http.ResponseWriter, r *http.Request) {
	if err := h.Friends.Remove(chi.URLParam(r, "friendID")); err != nil {
		var notFound *friends.NotFoundError
		if errors.As(err, &notFound) {
			writeJSON(w, http.StatusNotFound, utils.ErrorResponse(err.Error()))
			return
		}
		writeJSON(w, http.StatusBadRequest, utils.ErrorResponse(err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, utils.SuccessResponse(nil))
}

func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, utils.SuccessResponse(h.Profile.Get()))
}

func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Nickname  *string `json:"nickname"`
		AvatarURI *string `json:"avatar_uri"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, utils.ErrorResponse("invalid request body"))
		return
	}
	writeJSON(w, http.StatusOK, utils.SuccessResponse(h.Profile.Update(body.Nickname, body.AvatarURI)))
}

// writeStoreError maps the store's typed errors onto HTTP statuses.
func (h *Handler) writeStoreError(w http.ResponseWriter, err error) {
	var validation *tickets.ValidationError
	var limit *tickets.LimitExceededError
	var notFound *tickets.NotFoundError
	var forbidden *tickets.ForbiddenError

	switch {
	case errors.As(err, &validation):
		writeJSON(w, http.StatusBadRequest, utils.FieldErrorResponse(validation.Field, validation.Message))
	case errors.As(err, &limit):
		writeJSON(w, http.StatusConflict, utils.ErrorResponse(err.Error()))
	case errors.As(err, &notFound):
		writeJSON(w, http.StatusNotFound, utils.ErrorResponse(err.Error()))
	case errors.As(err, &forbidden):
		writeJSON(w, http.StatusForbidden, utils.ErrorResponse(err.Error()))
	default:
		h.Logger.Error("API", err.Error())
		writeJSON(w, http.StatusInternalServerError, utils.ErrorResponse("internal error"))
	}
}

func parseFilters(r *http.Request) (models.TicketFilters, error) {
	q := r.URL.Query()
	filters := models.TicketFilters{Search: q.Get("search")}

	if raw := q.Get("status"); raw != "" {
		status := models.TicketStatus(raw)
		if !status.Valid() {
			return filters, errors.New("status must be PUBLIC or PRIVATE")
		}
		filters.Status = &status
	}
	if raw := q.Get("from"); raw != "" {
		from, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return filters, errors.New("from must be an RFC 3339 timestamp")
		}
		filters.From = &from
	}
	if raw := q.Get("to"); raw != "" {
		to, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return filters, errors.New("to must be an RFC 3339 timestamp")
		}
		filters.To = &to
	}
	return filters, nil
}

func writeJSON(w http.ResponseWriter, status int, body utils.APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
