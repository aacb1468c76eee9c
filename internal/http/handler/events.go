package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"ayyam/internal/auth"
	"ayyam/internal/event"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type EventHandler struct {
	Store event.Store
	Log   *slog.Logger

	// Now is swappable in tests; nil means time.Now.
	Now func() time.Time
}

func (h *EventHandler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

// eventDTO is a stored event plus its countdown evaluated at serve time.
type eventDTO struct {
	event.Event
	Countdown event.Countdown `json:"countdown"`
}

func (h *EventHandler) toDTO(e event.Event) eventDTO {
	return eventDTO{
		Event:     e,
		Countdown: event.Calculate(e.EventDate, h.now(), e.CalculationType),
	}
}

type eventReq struct {
	Title           *string `json:"title"`
	EventDate       *string `json:"event_date"`
	EventType       *string `json:"event_type"`
	CalculationType *string `json:"calculation_type"`
	RepeatOption    *string `json:"repeat_option"`
	BackgroundImage *string `json:"background_image"`
}

func (h *EventHandler) List(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())

	var types []string
	if raw := strings.TrimSpace(r.URL.Query().Get("types")); raw != "" {
		for _, t := range strings.Split(raw, ",") {
			if t = strings.TrimSpace(t); t != "" {
				types = append(types, t)
			}
		}
	}

	rows, err := h.Store.List(r.Context(), uid, types)
	if err != nil {
		h.Log.Error("list events failed", "user_id", uid, "err", err)
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}

	out := make([]eventDTO, 0, len(rows))
	for _, e := range rows {
		out = append(out, h.toDTO(e))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *EventHandler) Create(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())

	var req eventReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json")
		return
	}

	e, errMsg := buildEvent(uid, req)
	if errMsg != "" {
		writeError(w, http.StatusBadRequest, errMsg)
		return
	}

	if err := h.Store.Create(r.Context(), e); err != nil {
		h.Log.Error("create event failed", "user_id", uid, "err", err)
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}

	writeJSON(w, http.StatusCreated, h.toDTO(*e))
}

// Import persists a batch of pending events collected before login.
func (h *EventHandler) Import(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())

	var reqs []eventReq
	if err := json.NewDecoder(r.Body).Decode(&reqs); err != nil {
		writeError(w, http.StatusBadRequest, "bad json")
		return
	}
	if len(reqs) == 0 {
		writeJSON(w, http.StatusCreated, map[string]int{"imported": 0})
		return
	}

	evs := make([]*event.Event, 0, len(reqs))
	for i, req := range reqs {
		e, errMsg := buildEvent(uid, req)
		if errMsg != "" {
			writeError(w, http.StatusBadRequest, errMsg+" (event "+strconv.Itoa(i)+")")
			return
		}
		evs = append(evs, e)
	}

	if err := h.Store.CreateBatch(r.Context(), evs); err != nil {
		h.Log.Error("import events failed", "user_id", uid, "count", len(evs), "err", err)
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]int{"imported": len(evs)})
}

func (h *EventHandler) Update(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	var req eventReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json")
		return
	}

	upd, errMsg := buildUpdate(req)
	if errMsg != "" {
		writeError(w, http.StatusBadRequest, errMsg)
		return
	}

	e, err := h.Store.Update(r.Context(), id, uid, upd)
	if err != nil {
		if errors.Is(err, event.ErrNotFound) {
			writeError(w, http.StatusNotFound, "event not found")
			return
		}
		h.Log.Error("update event failed", "user_id", uid, "event_id", id, "err", err)
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}

	writeJSON(w, http.StatusOK, h.toDTO(*e))
}

func (h *EventHandler) Delete(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	if err := h.Store.Delete(r.Context(), id, uid); err != nil {
		if errors.Is(err, event.ErrNotFound) {
			writeError(w, http.StatusNotFound, "event not found")
			return
		}
		h.Log.Error("delete event failed", "user_id", uid, "event_id", id, "err", err)
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// buildEvent validates a full create request. The returned message is empty
// on success.
func buildEvent(uid uint64, req eventReq) (*event.Event, string) {
	if req.Title == nil || req.EventDate == nil {
		return nil, "title and event date are required"
	}

	title, err := event.SanitizeTitle(*req.Title)
	if err != nil {
		return nil, titleError(err)
	}

	date, err := time.Parse(time.RFC3339, strings.TrimSpace(*req.EventDate))
	if err != nil {
		return nil, "invalid event_date (RFC3339)"
	}

	e := &event.Event{
		UserID:          uid,
		Title:           title,
		EventDate:       date,
		EventType:       "countdown",
		CalculationType: event.CalcDaysLeft,
		RepeatOption:    event.RepeatNone,
		BackgroundImage: req.BackgroundImage,
	}

	if req.EventType != nil && strings.TrimSpace(*req.EventType) != "" {
		e.EventType = strings.TrimSpace(*req.EventType)
	}
	if req.CalculationType != nil && *req.CalculationType != "" {
		ct := event.CalculationType(*req.CalculationType)
		if !ct.Valid() {
			return nil, "invalid calculation_type"
		}
		e.CalculationType = ct
	}
	if req.RepeatOption != nil && *req.RepeatOption != "" {
		ro := event.RepeatOption(*req.RepeatOption)
		if !ro.Valid() {
			return nil, "invalid repeat_option"
		}
		e.RepeatOption = ro
	}

	return e, ""
}

// buildUpdate validates the present fields of a partial edit.
func buildUpdate(req eventReq) (event.Update, string) {
	var upd event.Update

	if req.Title != nil {
		title, err := event.SanitizeTitle(*req.Title)
		if err != nil {
			return upd, titleError(err)
		}
		upd.Title = &title
	}
	if req.EventDate != nil {
		date, err := time.Parse(time.RFC3339, strings.TrimSpace(*req.EventDate))
		if err != nil {
			return upd, "invalid event_date (RFC3339)"
		}
		upd.EventDate = &date
	}
	if req.EventType != nil && strings.TrimSpace(*req.EventType) != "" {
		t := strings.TrimSpace(*req.EventType)
		upd.EventType = &t
	}
	if req.CalculationType != nil {
		ct := event.CalculationType(*req.CalculationType)
		if !ct.Valid() {
			return upd, "invalid calculation_type"
		}
		upd.CalculationType = &ct
	}
	if req.RepeatOption != nil {
		ro := event.RepeatOption(*req.RepeatOption)
		if !ro.Valid() {
			return upd, "invalid repeat_option"
		}
		upd.RepeatOption = &ro
	}
	upd.BackgroundImage = req.BackgroundImage

	return upd, ""
}

func titleError(err error) string {
	switch {
	case errors.Is(err, event.ErrTitleTooLong):
		return "title too long (max 100 characters)"
	default:
		return "title and event date are required"
	}
}

