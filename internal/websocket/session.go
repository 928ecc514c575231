// Cinefolio - Movie and TV Discovery and Social Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinefolio

package websocket

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"

	"github.com/tomtom215/cinefolio/internal/discover"
	"github.com/tomtom215/cinefolio/internal/logging"
	"github.com/tomtom215/cinefolio/internal/validation"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 16 * 1024
	sendBuffer     = 16
)

var sessionIDCounter atomic.Uint64

// Runner executes a discover query.
type Runner interface {
	Run(ctx context.Context, q discover.Query) discover.Result
}

// Session is one live discover connection.
type Session struct {
	id      uint64
	hub     *Hub
	conn    *websocket.Conn
	runner  Runner
	tracker *discover.Tracker
	send    chan Outbound

	ctx    context.Context
	cancel context.CancelFunc

	closeOnce sync.Once
	done      chan struct{}
}

func newSession(hub *Hub, conn *websocket.Conn, runner Runner) *Session {
	ctx, cancel := context.WithCancel(context.Background())
	return &Session{
		id:      sessionIDCounter.Add(1),
		hub:     hub,
		conn:    conn,
		runner:  runner,
		tracker: discover.NewTracker(),
		send:    make(chan Outbound, sendBuffer),
		ctx:     ctx,
		cancel:  cancel,
		done:    make(chan struct{}),
	}
}

// ID returns the session's identifier.
func (s *Session) ID() uint64 {
	return s.id
}

// Start runs the read and write pumps.
func (s *Session) Start() {
	go s.writePump()
	go s.readPump()
}

// Close stops in-flight queries and ends both pumps. Safe to call repeatedly.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		s.tracker.Stop()
		s.cancel()
		close(s.done)
	})
}

// enqueue hands msg to the write pump without blocking. A full buffer means
// the client is not reading; the message is dropped.
func (s *Session) enqueue(msg Outbound) bool {
	select {
	case <-s.done:
		return false
	default:
	}
	select {
	case s.send <- msg:
		return true
	default:
		logging.Warn().Uint64("session", s.id).Str("type", msg.Type).Msg("websocket send buffer full, dropping message")
		return false
	}
}

func (s *Session) readPump() {
	defer func() {
		s.hub.unregister(s)
		s.Close()
		_ = s.conn.Close()
	}()

	s.conn.SetReadLimit(maxMessageSize)
	if err := s.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		logging.Error().Err(err).Msg("failed to set read deadline")
		return
	}
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logging.Error().Err(err).Msg("unexpected websocket close error")
			}
			return
		}

		var msg Inbound
		if err := json.Unmarshal(data, &msg); err != nil {
			s.enqueue(Outbound{Type: MessageTypeError, Data: ErrorData{Code: "INVALID_MESSAGE", Message: "Message is not valid JSON"}})
			continue
		}

		switch msg.Type {
		case MessageTypeQuery:
			s.handleQuery(msg.Data)
		case MessageTypePing:
			s.enqueue(Outbound{Type: MessageTypePong})
		default:
			s.enqueue(Outbound{Type: MessageTypeError, Data: ErrorData{Code: "UNKNOWN_TYPE", Message: "Unknown message type: " + msg.Type}})
		}
	}
}

// handleQuery starts a new generation and runs the query in the
// background. Only the latest generation's result is sent.
func (s *Session) handleQuery(data json.RawMessage) {
	q := discover.DefaultQuery()
	if len(data) > 0 {
		if err := json.Unmarshal(data, &q); err != nil {
			s.enqueue(Outbound{Type: MessageTypeError, Data: ErrorData{Code: "INVALID_QUERY", Message: "Query data is malformed"}})
			return
		}
	}
	if verr := validation.ValidateStruct(&q); verr != nil {
		apiErr := verr.ToAPIError()
		s.enqueue(Outbound{Type: MessageTypeError, Data: ErrorData{Code: apiErr.Code, Message: apiErr.Message, Details: apiErr.Details}})
		return
	}

	ctx, gen := s.tracker.Begin(s.ctx)
	go func() {
		result := s.runner.Run(ctx, q)
		s.tracker.Commit(gen, func() {
			s.enqueue(Outbound{Type: MessageTypeResults, Generation: gen, Data: result})
		})
	}()
}

func (s *Session) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = s.conn.Close()
	}()

	for {
		select {
		case <-s.done:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			_ = s.conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"))
			return

		case msg := <-s.send:
			payload, err := json.Marshal(msg)
			if err != nil {
				logging.Error().Err(err).Str("type", msg.Type).Msg("failed to encode websocket message")
				continue
			}
			if err := s.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				logging.Error().Err(err).Msg("failed to set write deadline")
				return
			}
			if err := s.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				logging.Debug().Err(err).Msg("failed to write websocket message")
				return
			}

		case <-ticker.C:
			if err := s.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				logging.Error().Err(err).Msg("failed to set write deadline for ping")
				return
			}
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
