package services

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
)

// Concurrent hub broadcasts and keepalive pings target the same socket;
// without write serialization gorilla/websocket panics on the second
// concurrent writer.
func TestRealtimeWritesAreSerialized(t *testing.T) {
	hub := NewRealtimeHub()
	registered := make(chan *WSClient, 1)

	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		cl := &WSClient{CoupleID: 1, Conn: conn}
		hub.Register(cl)
		registered <- cl
	}))
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	defer conn.Close()

	cl := <-registered

	// drain the client side so server writes never block on the socket
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	var wg sync.WaitGroup
	for i := 0; i < 3; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				hub.BroadcastActivity(1, map[string]string{"action": "create_todo"})
			}
		}()
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		for j := 0; j < 100; j++ {
			_ = cl.Send(websocket.PingMessage, nil)
		}
	}()
	wg.Wait()

	hub.Unregister(cl)
}
