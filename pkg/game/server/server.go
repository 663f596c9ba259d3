// Package server exposes a grid world to remote agents over websockets.
package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"neugym/pkg/engine/world"
	"neugym/pkg/game/gridworld"
)

const (
	readTimeout  = 5 * time.Minute
	writeTimeout = 5 * time.Second
)

// Server serializes every client call onto one shared World.
type Server struct {
	mu    sync.Mutex
	world *gridworld.World
	log   logrus.FieldLogger

	upgrader websocket.Upgrader
}

// New returns a server for w.
func New(w *gridworld.World, log logrus.FieldLogger) *Server {
	return &Server{
		world: w,
		log:   log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4 * 1024,
			WriteBufferSize: 4 * 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

// Handler upgrades the request and serves frames until the client leaves.
func (s *Server) Handler() http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		conn, err := s.upgrader.Upgrade(rw, r, nil)
		if err != nil {
			s.log.WithError(err).Warn("websocket upgrade failed")
			return
		}
		defer conn.Close()

		log := s.log.WithField("remote", r.RemoteAddr)
		log.Info("client connected")
		for {
			_ = conn.SetReadDeadline(time.Now().Add(readTimeout))
			_, msg, err := conn.ReadMessage()
			if err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
					log.WithError(err).Warn("read failed")
				}
				break
			}

			var resp Response
			var req Request
			if err := json.Unmarshal(msg, &req); err != nil {
				resp = errorResponse("", fmt.Errorf("%w: bad request: %w", world.ErrValidation, err))
			} else {
				resp = s.Handle(req)
			}
			if err := writeJSON(conn, resp); err != nil {
				log.WithError(err).Warn("write failed")
				break
			}
		}
		log.Info("client disconnected")
	}
}

// Handle runs one request against the world.
func (s *Server) Handle(req Request) Response {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch req.Op {
	case OpStep:
		if req.Action == nil {
			return errorResponse(req.Op, fmt.Errorf("%w: step requires an action", world.ErrValidation))
		}
		state, reward, done, err := s.world.Step(*req.Action)
		if err != nil {
			return errorResponse(req.Op, err)
		}
		return Response{Op: req.Op, State: &state, Reward: reward, Done: done, Time: s.world.Time()}
	case OpReset:
		if err := s.reset(); err != nil {
			return errorResponse(req.Op, err)
		}
		return s.observe(req.Op)
	case OpObserve:
		return s.observe(req.Op)
	case OpInfo:
		resp := s.observe(req.Op)
		resp.Info = s.world.String()
		return resp
	default:
		return errorResponse(req.Op, fmt.Errorf("%w: unknown op %q", world.ErrValidation, req.Op))
	}
}

// reset restores the checkpoint if one is set, otherwise it puts the agent
// back on its initial cell.
func (s *Server) reset() error {
	if s.world.HasResetCheckpoint() {
		return s.world.Reset()
	}
	a, ok := s.world.Agent()
	if !ok {
		return fmt.Errorf("%w: agent not initialised", world.ErrValidation)
	}
	return s.world.InitAgent(a.Init, true)
}

func (s *Server) observe(op string) Response {
	resp := Response{Op: op, Time: s.world.Time()}
	if a, ok := s.world.Agent(); ok {
		resp.State = &a.Current
	}
	return resp
}

func writeJSON(conn *websocket.Conn, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	return conn.WriteMessage(websocket.TextMessage, b)
}
