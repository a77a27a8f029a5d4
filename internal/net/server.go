package net

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Server answers play and score requests over TCP. Each connection carries
// newline-delimited JSON: one ClientMessage in, one ServerMessage out, until
// the client closes it.
type Server struct {
	DecksFile string
	Port      string
	Logger    *zap.Logger
}

// Run listens on Port and serves until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", ":"+s.Port)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled. It closes ln.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	logger := s.logger()
	logger.Info("combat service listening", zap.String("addr", ln.Addr().String()))

	go func() {
		<-ctx.Done()
		ln.Close()
	}()

	var wg sync.WaitGroup
	defer wg.Wait()

	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("accept: %w", err)
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.handleConn(ctx, conn)
		}()
	}
}

// handleConn serves one client until EOF, a decode error or cancellation.
func (s *Server) handleConn(ctx context.Context, conn net.Conn) {
	defer conn.Close()

	connID := uuid.NewString()
	logger := s.logger().With(zap.String("conn", connID), zap.String("remote", conn.RemoteAddr().String()))
	logger.Debug("client connected")

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		<-ctx.Done()
		conn.Close()
	}()

	dec := json.NewDecoder(conn)
	enc := json.NewEncoder(conn)
	for {
		var msg ClientMessage
		if err := dec.Decode(&msg); err != nil {
			if !errors.Is(err, io.EOF) && ctx.Err() == nil {
				logger.Warn("read message", zap.Error(err))
				_ = enc.Encode(ServerMessage{Type: "error", Error: fmt.Sprintf("bad message: %v", err)})
			}
			return
		}

		reply := Handle(ctx, msg, s.DecksFile)
		if reply.Type == "error" {
			logger.Info("request failed", zap.String("type", msg.Type), zap.String("error", reply.Error))
		} else {
			logger.Debug("request served", zap.String("type", msg.Type))
		}
		if err := enc.Encode(reply); err != nil {
			logger.Warn("write reply", zap.Error(err))
			return
		}
	}
}

func (s *Server) logger() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}
