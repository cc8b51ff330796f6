package monitor

import (
	"encoding/json"
	"log"
	"net/http"
	"os"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The monitor binds to localhost by default; origin checks belong to a
	// fronting proxy when it is exposed further.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// NewRouter builds the monitor HTTP surface.
func NewRouter(state *State, hub *Hub) *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/health", healthHandler).Methods("GET")
	r.HandleFunc("/status", statusHandler(state, hub)).Methods("GET")
	r.HandleFunc("/ws", wsHandler(hub))

	return r
}

func healthHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

func statusHandler(state *State, hub *Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		st := state.Snapshot()
		st.Clients = hub.ClientCount()
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(st)
	}
}

func wsHandler(hub *Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Printf("monitor: websocket upgrade: %v", err)
			return
		}
		c := &wsClient{hub: hub, conn: conn, send: make(chan []byte, clientQueueLen)}
		hub.register <- c
		go c.writePump()
		go c.readPump()
	}
}

// Serve runs the monitor HTTP server until the listener fails.
func Serve(addr string, state *State, hub *Hub) error {
	logged := handlers.LoggingHandler(os.Stdout, NewRouter(state, hub))
	log.Printf("monitor: listening on %s", addr)
	return http.ListenAndServe(addr, logged)
}
