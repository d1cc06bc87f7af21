package net

import (
	"net/http"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"DrawBoard/internal/input"
)

func startPad(t *testing.T) (*Pad, *Server) {
	t.Helper()
	pad := NewPad()
	srv, err := Serve("127.0.0.1:0", pad)
	require.NoError(t, err)
	t.Cleanup(func() { srv.Close() })
	return pad, srv
}

func pollUntil(t *testing.T, pad *Pad, want error) input.Sample {
	t.Helper()
	var got input.Sample
	require.Eventually(t, func() bool {
		s, err := pad.Poll()
		if err == want {
			got = s
			return true
		}
		return false
	}, 2*time.Second, 5*time.Millisecond)
	return got
}

func TestPadNoSamplesBeforeConnect(t *testing.T) {
	pad, _ := startPad(t)
	_, err := pad.Poll()
	assert.ErrorIs(t, err, input.ErrNoSamples)
	assert.False(t, pad.Connected())
}

func TestPadMergesSamplesBetweenPolls(t *testing.T) {
	pad, srv := startPad(t)
	client, err := DialPad(srv.Addr())
	require.NoError(t, err)
	defer client.Close()

	require.NoError(t, client.Send(input.Sample{Hold: input.ButtonA, Trigger: input.ButtonA}))
	require.NoError(t, client.Send(input.Sample{Hold: input.ButtonUp}))

	var merged input.Sample
	require.Eventually(t, func() bool {
		s, err := pad.Poll()
		if err != nil {
			return false
		}
		merged.Hold = s.Hold
		merged.Trigger |= s.Trigger
		return s.Hold == input.ButtonUp
	}, 2*time.Second, 5*time.Millisecond)

	assert.Equal(t, input.Sample{Hold: input.ButtonUp, Trigger: input.ButtonA}, merged)
	assert.True(t, pad.Connected())

	_, err = pad.Poll()
	assert.ErrorIs(t, err, input.ErrNoSamples)
}

func TestPadRejectsSecondController(t *testing.T) {
	pad, srv := startPad(t)
	first, err := DialPad(srv.Addr())
	require.NoError(t, err)
	defer first.Close()
	require.Eventually(t, pad.Connected, 2*time.Second, 5*time.Millisecond)

	_, resp, err := websocket.DefaultDialer.Dial("ws://"+srv.Addr()+PadPath, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestPadDisconnectIsFatal(t *testing.T) {
	pad, srv := startPad(t)
	client, err := DialPad(srv.Addr())
	require.NoError(t, err)
	require.NoError(t, client.Send(input.Sample{Hold: input.ButtonDown}))
	require.NoError(t, client.Close())

	pollUntil(t, pad, input.ErrDisconnected)
	_, err = pad.Poll()
	assert.ErrorIs(t, err, input.ErrDisconnected)
}

func TestPadHomeButton(t *testing.T) {
	pad, srv := startPad(t)
	home := make(chan struct{}, 1)
	pad.OnHome(func() { home <- struct{}{} })

	client, err := DialPad(srv.Addr())
	require.NoError(t, err)
	defer client.Close()
	require.NoError(t, client.Send(input.Sample{Hold: input.ButtonHome, Trigger: input.ButtonHome}))

	select {
	case <-home:
	case <-time.After(2 * time.Second):
		t.Fatal("HOME was not reported")
	}
}

func TestPadURL(t *testing.T) {
	assert.Equal(t, "ws://10.0.0.2:8888/pad", PadURL("10.0.0.2", 8888))
}
