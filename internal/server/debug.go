package server

import (
	"encoding/json"
	"net/http"

	"rogee/internal/network"
)

// DebugHandler отдает последние опубликованные данные движка.
type DebugHandler struct {
	Hub *network.Broadcaster
}

func NewDebugHandler(hub *network.Broadcaster) *DebugHandler {
	return &DebugHandler{Hub: hub}
}

// RegisterRoutes регистрирует debug-эндпоинты
func (h *DebugHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/debug/state", h.handleState)
	mux.HandleFunc("/debug/subscribers", h.handleSubscribers)
}

// /debug/state - последний снимок мира
func (h *DebugHandler) handleState(w http.ResponseWriter, _ *http.Request) {
	snap, ok := h.Hub.Latest()
	if !ok {
		http.Error(w, "no snapshot published yet", http.StatusNotFound)
		return
	}
	writeJSON(w, snap)
}

// /debug/subscribers - сколько зрителей подключено
func (h *DebugHandler) handleSubscribers(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, map[string]int{"subscribers": h.Hub.SubscriberCount()})
}

func writeJSON(w http.ResponseWriter, data interface{}) {
	// Разрешаем запросы с любого источника (нужно для локального debug-клиента)
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(data)
}
