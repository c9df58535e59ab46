//go:build windows

package iodriver

import (
	"syscall"
	"time"
	"unsafe"

	"github.com/flightsim-go/simconnect/pkg/connection"
)

var (
	user32          = syscall.NewLazyDLL("user32.dll")
	procPeekMessage = user32.NewProc("PeekMessageW")
	procTranslateMsg = user32.NewProc("TranslateMessage")
	procDispatchMsg  = user32.NewProc("DispatchMessageW")
)

const pmRemove = 0x0001

// win32Msg mirrors the Win32 MSG struct layout.
type win32Msg struct {
	hwnd    uintptr
	message uint32
	wParam  uintptr
	lParam  uintptr
	time    uint32
	pt      struct{ x, y int32 }
}

// WindowedDriver pumps the Win32 message queue for a window the host was
// told to post a user-defined message to per incoming frame batch. Every
// message matching userMessage triggers a dispatcher drain; every other
// message is translated and dispatched as usual so the host window
// remains responsive.
type WindowedDriver struct {
	conn        *connection.Connection
	windowHandle uintptr
	userMessage  uint32
	autoClosing  bool
}

// NewWindowedDriver returns a driver pumping windowHandle's queue,
// draining the dispatcher on userMessage.
func NewWindowedDriver(conn *connection.Connection, windowHandle uintptr, userMessage uint32, autoClosing bool) *WindowedDriver {
	return &WindowedDriver{conn: conn, windowHandle: windowHandle, userMessage: userMessage, autoClosing: autoClosing}
}

// HandleFor pumps the window's message queue until budget has elapsed,
// draining the dispatcher whenever the host's user message arrives.
func (d *WindowedDriver) HandleFor(budget time.Duration) error {
	deadline := time.Now().Add(budget)

	for time.Now().Before(deadline) && d.conn.IsOpen() {
		var msg win32Msg
		got, _, _ := procPeekMessage.Call(
			uintptr(unsafe.Pointer(&msg)), d.windowHandle, 0, 0, pmRemove)
		if got == 0 {
			time.Sleep(time.Millisecond)
			continue
		}

		if msg.message == d.userMessage {
			if err := d.drainOnce(); err != nil {
				return err
			}
			continue
		}

		procTranslateMsg.Call(uintptr(unsafe.Pointer(&msg)))
		procDispatchMsg.Call(uintptr(unsafe.Pointer(&msg)))
	}
	return nil
}

func (d *WindowedDriver) drainOnce() error {
	for {
		if !d.conn.IsOpen() {
			return nil
		}
		delivered, err := drainFrame(d.conn, d.autoClosing)
		if err != nil {
			return err
		}
		if !delivered {
			return nil
		}
	}
}
