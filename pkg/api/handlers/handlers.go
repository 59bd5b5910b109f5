package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/cask-games/marquee/pkg/content"
	"github.com/cask-games/marquee/pkg/log"
	"github.com/cask-games/marquee/pkg/shell"
	"github.com/cask-games/marquee/pkg/surface"
	"github.com/cask-games/marquee/pkg/theme"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
)

// Shell is the slice of the shell controller the HTTP handlers need.
type Shell interface {
	ToggleTheme() theme.Theme
	ConfirmStart()
	SelectVariant(variant content.Variant)
	Status() shell.Status
	ActivePayload() (*content.Payload, uuid.UUID)
	Attach(handleID uuid.UUID, conduit surface.Conduit) error
}

type ToggleThemeResponseBody struct {
	Theme string `json:"theme"`
}

func HandleToggleTheme(sh Shell) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		next := sh.ToggleTheme()
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(&ToggleThemeResponseBody{Theme: next.String()}); err != nil {
			log.Error("failed to encode toggle theme response: %v", err)
			http.Error(w, "Failed to encode response", http.StatusInternalServerError)
			return
		}
	}
}

func HandleConfirmOnboarding(sh Shell) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sh.ConfirmStart()
		w.WriteHeader(http.StatusNoContent)
	}
}

func HandleSelectVariant(sh Shell) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		variant := mux.Vars(r)["variant"]
		if variant == "" {
			http.Error(w, "Variant is required", http.StatusBadRequest)
			return
		}
		// Resolution is asynchronous; a failed fetch leaves the current
		// surface untouched.
		sh.SelectVariant(content.Variant(variant))
		w.WriteHeader(http.StatusAccepted)
	}
}

func HandleStatus(sh Shell) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(sh.Status()); err != nil {
			log.Error("failed to encode status: %v", err)
			http.Error(w, "Failed to encode status", http.StatusInternalServerError)
			return
		}
	}
}

const (
	// SurfaceHandleHeader carries the handle id the embedded surface must
	// present when opening its channel.
	SurfaceHandleHeader = "X-Surface-Handle"
)

func HandleSurface(sh Shell) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload, handleID := sh.ActivePayload()
		if payload == nil {
			http.Error(w, "No content mounted", http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Set(SurfaceHandleHeader, handleID.String())
		if _, err := w.Write(payload.Data); err != nil {
			log.Error("failed to write surface payload: %v", err)
		}
	}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// HandleSurfaceChannel upgrades the connection and attaches it as the
// surface's conduit. Traffic is strictly host to surface; inbound frames
// are read only to service the connection and then discarded.
func HandleSurfaceChannel(sh Shell) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		handleID, err := uuid.Parse(r.URL.Query().Get("handle"))
		if err != nil {
			http.Error(w, "Invalid surface handle", http.StatusBadRequest)
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Error("Failed to upgrade to WebSocket: %v", err)
			return
		}

		conduit := surface.NewWSConduit(conn)
		if err := sh.Attach(handleID, conduit); err != nil {
			staleErr := &shell.ErrStaleHandle{}
			if errors.As(err, &staleErr) {
				log.Debug("Refusing channel for stale surface handle %s", handleID)
			} else {
				log.Error("Failed to attach surface conduit: %v", err)
			}
			conduit.Close()
			return
		}

		go func() {
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					conduit.Close()
					return
				}
			}
		}()
	}
}
