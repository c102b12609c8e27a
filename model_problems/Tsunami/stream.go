package Tsunami

import (
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/notargets/gotsunami/patches"
)

// Frame is the JSON message sent to the stream clients, fields are row major without ghost cells
type Frame struct {
	Time    float64   `json:"time"`
	Step    int       `json:"step"`
	Nx      int       `json:"nx"`
	Ny      int       `json:"ny"`
	Dx      float32   `json:"dx"`
	Dy      float32   `json:"dy"`
	Height  []float32 `json:"height"`
	Surface []float32 `json:"surface"`
}

func NewFrame(time float64, step int, dx, dy Real, p patches.WavePropagation) (f *Frame) {
	var (
		nx, ny = p.GetCellsX(), p.GetCellsY()
		stride = p.GetStride()
		h, eta = p.GetHeight(), p.GetTotalHeight()
	)
	f = &Frame{
		Time: time, Step: step,
		Nx: nx, Ny: ny,
		Dx: dx, Dy: dy,
		Height:  make([]float32, 0, nx*ny),
		Surface: make([]float32, 0, nx*ny),
	}
	for iy := 0; iy < ny; iy++ {
		row := iy * stride
		f.Height = append(f.Height, h[row:row+nx]...)
		f.Surface = append(f.Surface, eta[row:row+nx]...)
	}
	return
}

const writeWait = time.Second

/*
Streamer serves the solution frames of a run over a websocket at /ws. A new
client first receives the latest frame, then every broadcast one. Clients that
can't keep up are dropped.
*/
type Streamer struct {
	upgrader websocket.Upgrader
	server   *http.Server
	listener net.Listener
	mu       sync.RWMutex
	clients  map[*websocket.Conn]*sync.Mutex
	last     *Frame
}

func NewStreamer(addr string) (s *Streamer, err error) {
	s = &Streamer{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		clients: make(map[*websocket.Conn]*sync.Mutex),
	}
	if s.listener, err = net.Listen("tcp", addr); err != nil {
		return nil, fmt.Errorf("unable to stream frames on %s: %w", addr, err)
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.ServeHTTP)
	s.server = &http.Server{Handler: mux}
	go func() {
		if err := s.server.Serve(s.listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Println("frame stream:", err)
		}
	}()
	return
}

func (s *Streamer) Addr() string { return s.listener.Addr().String() }

func (s *Streamer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("websocket upgrade:", err)
		return
	}
	connMutex := &sync.Mutex{}
	// hold the connection until the latest frame went out so broadcasts stay ordered
	connMutex.Lock()
	s.mu.Lock()
	s.clients[conn] = connMutex
	last := s.last
	s.mu.Unlock()
	if last != nil {
		conn.SetWriteDeadline(time.Now().Add(writeWait))
		err = conn.WriteJSON(last)
	}
	connMutex.Unlock()
	if err != nil {
		s.drop(conn)
		return
	}
	// Clients only listen, reading detects the close
	for {
		if _, _, err = conn.ReadMessage(); err != nil {
			break
		}
	}
	s.drop(conn)
}

func (s *Streamer) send(conn *websocket.Conn, connMutex *sync.Mutex, f *Frame) (err error) {
	connMutex.Lock()
	defer connMutex.Unlock()
	conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(f)
}

func (s *Streamer) drop(conn *websocket.Conn) {
	s.mu.Lock()
	if _, ok := s.clients[conn]; ok {
		delete(s.clients, conn)
		conn.Close()
	}
	s.mu.Unlock()
}

func (s *Streamer) Broadcast(f *Frame) {
	var failed []*websocket.Conn
	s.mu.Lock()
	s.last = f
	s.mu.Unlock()
	s.mu.RLock()
	for conn, connMutex := range s.clients {
		if err := s.send(conn, connMutex, f); err != nil {
			failed = append(failed, conn)
		}
	}
	s.mu.RUnlock()
	for _, conn := range failed {
		s.drop(conn)
	}
}

func (s *Streamer) Clients() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients)
}

func (s *Streamer) Close() error {
	s.mu.Lock()
	for conn := range s.clients {
		conn.Close()
	}
	clear(s.clients)
	s.mu.Unlock()
	return s.server.Close()
}
