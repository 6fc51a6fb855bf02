package handlers

import (
	"net/http"
	"strconv"

	"crowdfund/internal/domain"
	"crowdfund/internal/i18n"
)

const (
	defaultEventLimit = 100
	maxEventLimit     = 500
)

// EventsList pages through the notification log after ?since.
func (a *App) EventsList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var since uint64
	if v := q.Get("since"); v != "" {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			a.error(w, r, http.StatusBadRequest, i18n.CodeBadRequest)
			return
		}
		since = n
	}
	limit := defaultEventLimit
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			a.error(w, r, http.StatusBadRequest, i18n.CodeBadRequest)
			return
		}
		limit = min(n, maxEventLimit)
	}
	items := a.Log.Since(since, limit)
	if items == nil {
		items = []domain.Notification{}
	}
	a.json(w, http.StatusOK, map[string]any{
		"items":    items,
		"last_seq": a.Log.LastSeq(),
	})
}
