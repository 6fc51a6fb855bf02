package handlers

import (
	"net/http"
)

func (a *App) Health(w http.ResponseWriter, r *http.Request) {
	a.json(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"last_seq": a.Log.LastSeq(),
		"projects": len(a.Engine.Projects()),
	})
}
