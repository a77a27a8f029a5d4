package net

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
)

// Query connects to a combat service, sends one message and returns the reply.
func Query(ctx context.Context, addr string, msg ClientMessage) (ServerMessage, error) {
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return ServerMessage{}, fmt.Errorf("connect: %w", err)
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		conn.SetDeadline(deadline)
	}
	return exchange(conn, msg)
}

// exchange writes msg and reads a single reply.
func exchange(conn net.Conn, msg ClientMessage) (ServerMessage, error) {
	if err := json.NewEncoder(conn).Encode(msg); err != nil {
		return ServerMessage{}, fmt.Errorf("send %s: %w", msg.Type, err)
	}
	var reply ServerMessage
	if err := json.NewDecoder(conn).Decode(&reply); err != nil {
		return ServerMessage{}, fmt.Errorf("read reply: %w", err)
	}
	return reply, nil
}
