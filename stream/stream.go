// Package stream serves a live particle field over WebSocket. Every
// connection gets its own scene; the server simulates it and sends one
// binary frame per tick while the browser reports pointer movement.
package stream

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"math/rand/v2"
	"net"
	"net/http"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/PedroHSSoares-Dev/portfolio/field"
	"github.com/PedroHSSoares-Dev/portfolio/prefs"
)

const (
	writeWait      = 2 * time.Second
	maxMessageSize = 1024
	inboxSize      = 16

	defaultWidth  = 1280
	defaultHeight = 720
	maxDimension  = 16384
)

type Config struct {
	Params     field.Params
	Camera     field.Camera
	FPS        int
	MaxClients int
}

// Session identifies who is watching.
type Session struct {
	VisitorID string
	Theme     prefs.Theme
}

type Server struct {
	cfg      Config
	logger   *zap.Logger
	upgrader websocket.Upgrader
	clients  atomic.Int64

	closing  context.Context
	closeAll context.CancelFunc
}

func New(cfg Config, logger *zap.Logger) *Server {
	if cfg.FPS <= 0 {
		cfg.FPS = 30
	}
	if cfg.Camera == (field.Camera{}) {
		cfg.Camera = field.DefaultCamera
	}
	closing, closeAll := context.WithCancel(context.Background())
	return &Server{
		cfg:      cfg,
		logger:   logger,
		closing:  closing,
		closeAll: closeAll,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
		},
	}
}

// Clients returns the number of open streams.
func (s *Server) Clients() int64 { return s.clients.Load() }

// Close ends every open stream with a going-away close frame. Streams are
// hijacked connections, so http.Server.Shutdown neither tracks nor drains
// them; register Close with RegisterOnShutdown.
func (s *Server) Close() { s.closeAll() }

// Seed derives the random source seed of a visitor, so the same visitor
// sees the same constellation after a reload.
func Seed(visitorID string) (uint64, uint64) {
	h := xxhash.Sum64String(visitorID)
	return h, xxhash.Sum64String(visitorID + "/field")
}

// NewScene builds the scene a visitor sees on a w×h screen.
func (s *Server) NewScene(visitorID string, w, h float64) *field.Scene {
	rng := rand.New(rand.NewPCG(Seed(visitorID)))
	return field.NewScene(field.New(s.cfg.Params, rng), s.cfg.Camera, w, h)
}

func dimension(r *http.Request, key string, def float64) float64 {
	v, err := strconv.ParseFloat(r.URL.Query().Get(key), 64)
	if err != nil || v <= 0 || v > maxDimension {
		return def
	}
	return v
}

// Serve upgrades the request and streams frames until either side goes
// away or the request context ends.
func (s *Server) Serve(w http.ResponseWriter, r *http.Request, sess Session) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	if n := s.clients.Add(1); s.cfg.MaxClients > 0 && n > int64(s.cfg.MaxClients) {
		s.clients.Add(-1)
		s.logger.Warn("stream refused, too many clients", zap.Int64("clients", n-1))
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseTryAgainLater, "busy"),
			time.Now().Add(writeWait))
		return
	}
	defer s.clients.Add(-1)

	logger := s.logger.With(zap.String("visitor", sess.VisitorID))
	scene := s.NewScene(sess.VisitorID, dimension(r, "w", defaultWidth), dimension(r, "h", defaultHeight))
	conn.SetReadLimit(maxMessageSize)

	conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := conn.WriteJSON(initMessage(scene.Field(), field.StyleFor(sess.Theme), s.cfg.FPS)); err != nil {
		logger.Debug("stream init failed", zap.Error(err))
		return
	}
	logger.Debug("stream opened", zap.Int("particles", scene.Field().Len()))

	streamCtx, cancel := context.WithCancel(r.Context())
	defer cancel()
	stop := context.AfterFunc(s.closing, cancel)
	defer stop()

	g, ctx := errgroup.WithContext(streamCtx)
	inbox := make(chan ClientMessage, inboxSize)

	g.Go(func() error { return readLoop(ctx, conn, inbox) })
	g.Go(func() error { return s.writeLoop(ctx, conn, scene, inbox) })
	g.Go(func() error {
		// unblocks the reader once the writer is done
		<-ctx.Done()
		if s.closing.Err() != nil {
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, "shutting down"),
				time.Now().Add(writeWait))
		}
		conn.Close()
		return nil
	})

	if err := g.Wait(); err != nil && !expectedClose(err) {
		logger.Warn("stream closed", zap.Error(err))
		return
	}
	logger.Debug("stream closed")
}

func expectedClose(err error) bool {
	return websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway, websocket.CloseNoStatusReceived) ||
		errors.Is(err, net.ErrClosed) ||
		errors.Is(err, context.Canceled)
}

// isDecodeError reports a malformed message, which is skipped rather than
// ending the stream.
func isDecodeError(err error) bool {
	var syntax *json.SyntaxError
	var typ *json.UnmarshalTypeError
	// an empty text frame decodes as io.ErrUnexpectedEOF
	return errors.As(err, &syntax) || errors.As(err, &typ) || errors.Is(err, io.ErrUnexpectedEOF)
}

// readLoop only forwards; the scene belongs to writeLoop.
func readLoop(ctx context.Context, conn *websocket.Conn, inbox chan<- ClientMessage) error {
	for {
		var msg ClientMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if isDecodeError(err) {
				continue
			}
			return err
		}
		select {
		case inbox <- msg:
		case <-ctx.Done():
			return nil
		}
	}
}

func (s *Server) writeLoop(ctx context.Context, conn *websocket.Conn, scene *field.Scene, inbox <-chan ClientMessage) error {
	ticker := time.NewTicker(time.Second / time.Duration(s.cfg.FPS))
	defer ticker.Stop()
	last := time.Now()

	for {
		select {
		case <-ctx.Done():
			return nil

		case msg := <-inbox:
			if err := apply(conn, scene, msg); err != nil {
				return err
			}

		case now := <-ticker.C:
			frame := scene.Advance(now.Sub(last))
			last = now
			data, err := frame.MarshalBinary()
			if err != nil {
				return err
			}
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.BinaryMessage, data); err != nil {
				return err
			}
		}
	}
}

// apply handles one client message on the goroutine that owns scene.
func apply(conn *websocket.Conn, scene *field.Scene, msg ClientMessage) error {
	switch msg.Type {
	case TypePointer:
		scene.PointerMoved(msg.X, msg.Y)
	case TypeLeave:
		scene.PointerLeft()
	case TypeResize:
		if msg.W > 0 && msg.H > 0 && msg.W <= maxDimension && msg.H <= maxDimension {
			scene.Resize(msg.W, msg.H)
		}
	case TypeTheme:
		conn.SetWriteDeadline(time.Now().Add(writeWait))
		return conn.WriteJSON(styleMessage(field.StyleFor(prefs.ParseTheme(msg.Theme))))
	}
	return nil
}
