package ui

import (
	"context"
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"

	"DrawBoard/internal/display"
	"DrawBoard/internal/frame"
	"DrawBoard/internal/input"
	"DrawBoard/internal/state"
)

// App is the desktop frontend: one window per screen, keyboard as pad.
type App struct {
	app     fyne.App
	windows []fyne.Window
	bar     *PaletteBar
	keys    *input.KeyPad
	quit    func()
}

// NewApp builds the windows. quit is called when the user asks to leave.
func NewApp(tv, pad *display.Framebuffer, palette state.Palette, keys *input.KeyPad, scale int, quit func()) *App {
	a := &App{
		app:  app.New(),
		bar:  NewPaletteBar(palette),
		keys: keys,
		quit: quit,
	}

	tvWin := a.app.NewWindow("DrawBoard - " + tv.Name())
	tvWin.SetContent(NewScreenWidget(tv, scale))

	padWin := a.app.NewWindow("DrawBoard - " + pad.Name())
	padWin.SetContent(container.NewBorder(a.bar.Object(), nil, nil, nil, NewScreenWidget(pad, scale)))

	a.windows = []fyne.Window{tvWin, padWin}
	for _, w := range a.windows {
		a.bindKeys(w)
		w.SetOnClosed(quit)
	}
	return a
}

func (a *App) bindKeys(w fyne.Window) {
	dc, ok := w.Canvas().(desktop.Canvas)
	if !ok {
		return
	}
	dc.SetOnKeyDown(func(ev *fyne.KeyEvent) {
		if isQuitKey(ev.Name) {
			a.quit()
			return
		}
		if b, ok := ButtonForKey(ev.Name); ok {
			a.keys.Press(b)
		}
	})
	dc.SetOnKeyUp(func(ev *fyne.KeyEvent) {
		if b, ok := ButtonForKey(ev.Name); ok {
			a.keys.Release(b)
		}
	})
}

// OnFrame is meant for frame.Driver.OnFrame; it may be called from any
// goroutine.
func (a *App) OnFrame(f frame.Frame) {
	fyne.Do(func() {
		a.bar.Update(f.Color, f.Points, f.Capacity)
	})
}

// Run shows the windows and blocks until the UI is gone and loop has
// returned. loop runs on its own goroutine and must stop once ctx is done.
func (a *App) Run(ctx context.Context, loop func(ctx context.Context) error) error {
	done := make(chan error, 1)
	go func() {
		err := loop(ctx)
		done <- err
		fyne.Do(a.app.Quit)
	}()

	for _, w := range a.windows {
		w.Show()
	}
	a.app.Run()

	// The UI can go away first, e.g. when the last window is closed.
	a.quit()
	if err := <-done; err != nil {
		return fmt.Errorf("ui: %w", err)
	}
	return nil
}

// ButtonForKey maps the keyboard onto the pad: arrows are the d-pad and
// A, Space or Return is the action button.
func ButtonForKey(k fyne.KeyName) (input.Buttons, bool) {
	switch k {
	case fyne.KeyUp:
		return input.ButtonUp, true
	case fyne.KeyDown:
		return input.ButtonDown, true
	case fyne.KeyLeft:
		return input.ButtonLeft, true
	case fyne.KeyRight:
		return input.ButtonRight, true
	case fyne.KeyA, fyne.KeySpace, fyne.KeyReturn, fyne.KeyEnter:
		return input.ButtonA, true
	}
	return 0, false
}

func isQuitKey(k fyne.KeyName) bool {
	return k == fyne.KeyEscape || k == fyne.KeyHome
}
