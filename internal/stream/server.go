// Package stream pushes rendered game state to websocket clients and feeds
// their commands back into the session.
package stream

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/NUSSETO/Graduate-Survival/internal/session"
	"github.com/NUSSETO/Graduate-Survival/internal/view"

	"github.com/gorilla/websocket"
)

const (
	FrameState = "state"
	FrameError = "error"

	outQueue     = 16
	writeTimeout = 5 * time.Second
	pongWait     = 60 * time.Second
	pingPeriod   = pongWait / 2
)

type Frame struct {
	Type   string      `json:"type"`
	State  *view.Model `json:"state,omitempty"`
	Reason string      `json:"reason,omitempty"`
	Error  string      `json:"error,omitempty"`
}

type Server struct {
	session *session.Session
	log     *log.Logger

	upgrader websocket.Upgrader

	// A client that answers no ping within pongWait is dropped.
	pongWait   time.Duration
	pingPeriod time.Duration
}

func NewServer(s *session.Session, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		session: s,
		log:     logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4 * 1024,
			WriteBufferSize: 16 * 1024,
			CheckOrigin:     func(r *http.Request) bool { return true }, // dev default
		},
		pongWait:   pongWait,
		pingPeriod: pingPeriod,
	}
}

func (s *Server) Handler() http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		conn, err := s.upgrader.Upgrade(rw, r, nil)
		if err != nil {
			s.log.Printf("stream: upgrade failed: %v", err)
			return
		}
		defer conn.Close()

		ctx, cancel := context.WithCancel(r.Context())
		defer cancel()

		// Frames for a slow client are dropped, never waited on: the
		// publisher is the session's mutating goroutine.
		out := make(chan []byte, outQueue)
		enqueue := func(f Frame) {
			b, err := json.Marshal(f)
			if err != nil {
				return
			}
			select {
			case out <- b:
			default:
			}
		}

		snap := s.session.Snapshot()
		enqueue(Frame{Type: FrameState, State: &snap})
		unsubscribe := s.session.Subscribe(func(m view.Model) {
			enqueue(Frame{Type: FrameState, State: &m})
		})
		defer unsubscribe()

		// Writer goroutine. Pings go out from here too; browsers answer them
		// but never send their own.
		go func() {
			ping := time.NewTicker(s.pingPeriod)
			defer ping.Stop()
			for {
				select {
				case <-ctx.Done():
					return
				case <-ping.C:
					_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
					if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
						cancel()
						return
					}
				case b := <-out:
					_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
					if err := conn.WriteMessage(websocket.TextMessage, b); err != nil {
						cancel()
						return
					}
				}
			}
		}()

		// Reader loop.
		_ = conn.SetReadDeadline(time.Now().Add(s.pongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(s.pongWait))
		})
		for {
			_, msg, err := conn.ReadMessage()
			if err != nil {
				return
			}
			_ = conn.SetReadDeadline(time.Now().Add(s.pongWait))
			cmd, err := s.session.ParseCommand(msg)
			if err != nil {
				enqueue(Frame{Type: FrameError, Reason: session.Reason(err), Error: err.Error()})
				continue
			}
			m, err := s.session.Apply(cmd)
			if err != nil {
				enqueue(Frame{Type: FrameError, Reason: session.Reason(err), Error: err.Error(), State: &m})
			}
		}
	}
}
