// Command remotepad turns a terminal into a wireless gamepad for a board
// running with the remote pad enabled.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"DrawBoard/internal/input"
	"DrawBoard/internal/net"
	"DrawBoard/internal/term"
)

func main() {
	addr := flag.String("addr", "", "board address (host:port); found via mDNS when empty")
	browse := flag.Duration("browse", 3*time.Second, "how long to look for boards")
	rate := flag.Duration("rate", 16*time.Millisecond, "sample interval")
	flag.Parse()

	if *addr == "" {
		log.Println("[PAD] Looking for boards on the local network...")
		found, err := net.Browse(*browse)
		if err != nil {
			log.Printf("[PAD] %v", err)
		}
		if len(found) == 0 {
			log.Println("[PAD] No board found, pass -addr.")
			os.Exit(1)
		}
		*addr = found[0]
	}

	client, err := net.DialPad(*addr)
	if err != nil {
		log.Printf("[PAD] %v", err)
		os.Exit(1)
	}
	log.Printf("[PAD] Connected to %s", *addr)

	screen, err := tcell.NewScreen()
	if err != nil {
		client.Close()
		log.Fatalf("[PAD] %v", err)
	}
	if err := screen.Init(); err != nil {
		client.Close()
		log.Fatalf("[PAD] %v", err)
	}

	keys := input.NewKeyPad(term.HoldTimeout)
	quit := make(chan struct{})
	go readKeys(screen, keys, quit)

	ticker := time.NewTicker(*rate)
	defer ticker.Stop()

loop:
	for {
		select {
		case <-quit:
			break loop
		case <-ticker.C:
		}
		s, err := keys.Poll()
		if err != nil {
			break loop
		}
		if err := client.Send(s); err != nil {
			screen.Fini()
			log.Fatalf("[PAD] Board went away: %v", err)
		}
		drawStatus(screen, *addr, s)
	}

	screen.Fini()
	client.Close()
	log.Println("[PAD] Bye.")
}

func readKeys(screen tcell.Screen, keys *input.KeyPad, quit chan<- struct{}) {
	for {
		switch ev := screen.PollEvent().(type) {
		case nil:
			return
		case *tcell.EventKey:
			switch {
			case ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC:
				close(quit)
				return
			case ev.Key() == tcell.KeyHome || (ev.Key() == tcell.KeyRune && ev.Rune() == 'h'):
				keys.Press(input.ButtonHome)
			default:
				if b, ok := term.ButtonForKey(ev); ok {
					keys.Press(b)
				}
			}
		case *tcell.EventResize:
			screen.Sync()
		}
	}
}

func drawStatus(screen tcell.Screen, addr string, s input.Sample) {
	lines := []string{
		"DrawBoard remote pad - " + addr,
		"",
		"Arrows: d-pad   A/Space/Enter: A   H/Home: HOME   ESC: leave",
		"",
		fmt.Sprintf("Held: %-24s", names(s.Hold)),
	}
	screen.Clear()
	for y, line := range lines {
		for x, r := range line {
			screen.SetContent(x, y, r, nil, tcell.StyleDefault)
		}
	}
	screen.Show()
}

func names(b input.Buttons) string {
	out := ""
	for _, n := range []struct {
		b    input.Buttons
		name string
	}{
		{input.ButtonUp, "UP"},
		{input.ButtonDown, "DOWN"},
		{input.ButtonLeft, "LEFT"},
		{input.ButtonRight, "RIGHT"},
		{input.ButtonA, "A"},
		{input.ButtonHome, "HOME"},
	} {
		if b.Has(n.b) {
			out += n.name + " "
		}
	}
	return out
}
