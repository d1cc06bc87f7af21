package net

import (
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"DrawBoard/internal/input"
)

// PadPath is where the remote gamepad connects.
const PadPath = "/pad"

// Pad is a gamepad that streams its button state over a WebSocket. Only
// one pad can be connected at a time.
//
// As an input.Source it behaves like a wireless controller: until the pad
// connects, and whenever no new sample has arrived since the last poll,
// Poll reports input.ErrNoSamples. Once a connected pad goes away every
// later poll reports input.ErrDisconnected.
type Pad struct {
	upgrader websocket.Upgrader

	mu        sync.Mutex
	pending   bool
	hold      input.Buttons
	trigger   input.Buttons
	connected bool
	lost      bool
	onHome    func()
}

func NewPad() *Pad {
	return &Pad{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  512,
			WriteBufferSize: 512,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}
}

// ServeHTTP upgrades the request and reads samples until the pad leaves.
func (p *Pad) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	p.mu.Lock()
	if p.connected || p.lost {
		p.mu.Unlock()
		http.Error(w, "a gamepad is already paired", http.StatusConflict)
		return
	}
	p.connected = true
	p.mu.Unlock()

	conn, err := p.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[PAD] Upgrade from %s failed: %v", r.RemoteAddr, err)
		p.mu.Lock()
		p.connected = false
		p.mu.Unlock()
		return
	}
	log.Printf("[PAD] Gamepad connected from %s", conn.RemoteAddr())
	p.readLoop(conn)
}

func (p *Pad) readLoop(conn *websocket.Conn) {
	defer conn.Close()
	defer func() {
		p.mu.Lock()
		p.connected = false
		p.lost = true
		p.mu.Unlock()
	}()

	conn.SetReadLimit(512)
	conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		var s input.Sample
		if err := conn.ReadJSON(&s); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("[PAD] Read error: %v", err)
			}
			log.Printf("[PAD] Gamepad %s left", conn.RemoteAddr())
			return
		}
		conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		if home := p.push(s); home != nil {
			home()
		}
	}
}

// push stores a sample and returns the HOME callback if it should run.
func (p *Pad) push(s input.Sample) func() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.hold = s.Hold
	p.trigger |= s.Trigger
	p.pending = true
	if s.Trigger.Has(input.ButtonHome) {
		return p.onHome
	}
	return nil
}

// OnHome registers fn to run, on the connection goroutine, whenever HOME
// is pressed on the pad.
func (p *Pad) OnHome(fn func()) {
	p.mu.Lock()
	p.onHome = fn
	p.mu.Unlock()
}

// Poll returns the newest held state and every trigger since the last
// poll.
func (p *Pad) Poll() (input.Sample, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.pending {
		s := input.Sample{Hold: p.hold, Trigger: p.trigger}
		p.pending = false
		p.trigger = 0
		return s, nil
	}
	if p.lost {
		return input.Sample{}, input.ErrDisconnected
	}
	return input.Sample{}, input.ErrNoSamples
}

// Connected reports whether a pad is paired right now.
func (p *Pad) Connected() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.connected
}

// PadClient is the sending end, used by the remotepad tool.
type PadClient struct {
	conn *websocket.Conn
}

// DialPad connects to a board listening on addr (host:port).
func DialPad(addr string) (*PadClient, error) {
	u := fmt.Sprintf("ws://%s%s", addr, PadPath)
	conn, _, err := websocket.DefaultDialer.Dial(u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to board: %w", err)
	}
	return &PadClient{conn: conn}, nil
}

func (c *PadClient) Send(s input.Sample) error {
	c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
	return c.conn.WriteJSON(s)
}

// Close says goodbye to the board and closes the connection.
func (c *PadClient) Close() error {
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "bye")
	c.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))
	return c.conn.Close()
}
