// Package x11 implements window.Detector against the X server directly
// over the wire protocol, with no external tool dependencies.
package x11

import (
	"encoding/binary"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/screensaver"
	"github.com/jezek/xgb/xproto"

	"github.com/focuslog/focuslog/pkg/window"
)

var atomNames = []string{
	"_NET_ACTIVE_WINDOW",
	"_NET_WM_NAME",
	"WM_NAME",
	"WM_CLASS",
	"UTF8_STRING",
}

// Detector queries the focused window and idle time over an X connection.
type Detector struct {
	conn           *xgb.Conn
	root           xproto.Window
	atoms          map[string]xproto.Atom
	hasScreenSaver bool
}

// NewDetector connects to the X server and interns the atoms it needs.
func NewDetector() (*Detector, error) {
	conn, err := xgb.NewConn()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to X server: %w", err)
	}

	setup := xproto.Setup(conn)
	root := setup.DefaultScreen(conn).Root

	d := &Detector{
		conn:  conn,
		root:  root,
		atoms: make(map[string]xproto.Atom),
	}

	for _, name := range atomNames {
		reply, err := xproto.InternAtom(conn, false, uint16(len(name)), name).Reply()
		if err != nil {
			conn.Close()
			return nil, fmt.Errorf("failed to intern atom %s: %w", name, err)
		}
		d.atoms[name] = reply.Atom
	}

	// Idle time comes from the ScreenSaver extension when the server has it
	if err := screensaver.Init(conn); err == nil {
		d.hasScreenSaver = true
	}

	return d, nil
}

// IsAvailable checks if X11 detection can work in this session
func (d *Detector) IsAvailable() bool {
	return os.Getenv("DISPLAY") != "" || os.Getenv("XDG_SESSION_TYPE") == "x11"
}

// GetDisplayServer returns "x11"
func (d *Detector) GetDisplayServer() string {
	return "x11"
}

// GetFocusedWindow returns the focused window identity, or an error when
// no window can be resolved this tick.
func (d *Detector) GetFocusedWindow() (*window.Snapshot, error) {
	win, err := d.activeWindow()
	if err != nil {
		return nil, err
	}

	title := d.windowName(win)
	app := d.windowClass(win)
	if app == "" {
		app = appNameFromTitle(title)
	}
	if app == "" {
		return nil, fmt.Errorf("focused window has no resolvable identity")
	}

	return &window.Snapshot{
		Application: app,
		Title:       title,
	}, nil
}

// activeWindow prefers _NET_ACTIVE_WINDOW and falls back to walking up
// from the input focus, since some window managers don't set the property.
func (d *Detector) activeWindow() (xproto.Window, error) {
	if win := d.activeWindowFromProperty(); win != 0 && d.hasName(win) {
		return win, nil
	}

	win := d.activeWindowFromInputFocus()
	if win != 0 && win != d.root {
		top := d.topLevelParent(win)
		if top != 0 && d.hasName(top) {
			return top, nil
		}
	}

	return 0, fmt.Errorf("no active window found")
}

func (d *Detector) activeWindowFromProperty() xproto.Window {
	data, err := d.property(d.root, d.atoms["_NET_ACTIVE_WINDOW"], xproto.AtomWindow, 1)
	if err != nil || len(data) < 4 {
		return 0
	}
	return xproto.Window(binary.LittleEndian.Uint32(data))
}

func (d *Detector) activeWindowFromInputFocus() xproto.Window {
	reply, err := xproto.GetInputFocus(d.conn).Reply()
	if err != nil {
		return 0
	}
	return reply.Focus
}

func (d *Detector) topLevelParent(win xproto.Window) xproto.Window {
	for {
		reply, err := xproto.QueryTree(d.conn, win).Reply()
		if err != nil || reply.Parent == d.root || reply.Parent == 0 {
			return win
		}
		win = reply.Parent
	}
}

func (d *Detector) property(win xproto.Window, atom, atomType xproto.Atom, length uint32) ([]byte, error) {
	reply, err := xproto.GetProperty(d.conn, false, win, atom, atomType, 0, length).Reply()
	if err != nil {
		return nil, err
	}
	return reply.Value, nil
}

func (d *Detector) hasName(win xproto.Window) bool {
	data, _ := d.property(win, d.atoms["_NET_WM_NAME"], d.atoms["UTF8_STRING"], 1)
	if len(data) > 0 {
		return true
	}
	data, _ = d.property(win, d.atoms["WM_NAME"], xproto.AtomString, 1)
	return len(data) > 0
}

func (d *Detector) windowName(win xproto.Window) string {
	data, err := d.property(win, d.atoms["_NET_WM_NAME"], d.atoms["UTF8_STRING"], 256)
	if err == nil && len(data) > 0 {
		return strings.TrimRight(string(data), "\x00")
	}

	data, err = d.property(win, d.atoms["WM_NAME"], xproto.AtomString, 256)
	if err == nil && len(data) > 0 {
		return strings.TrimRight(string(data), "\x00")
	}

	return ""
}

// windowClass returns the class member of WM_CLASS, falling back to the
// instance member.
func (d *Detector) windowClass(win xproto.Window) string {
	data, err := d.property(win, d.atoms["WM_CLASS"], xproto.AtomString, 256)
	if err != nil || len(data) == 0 {
		return ""
	}
	return parseWMClass(data)
}

// parseWMClass extracts an application name from raw WM_CLASS bytes,
// which hold instance and class as NUL-terminated strings.
func parseWMClass(data []byte) string {
	parts := strings.Split(strings.TrimRight(string(data), "\x00"), "\x00")
	if len(parts) >= 2 && parts[1] != "" {
		return parts[1]
	}
	if len(parts) >= 1 {
		return parts[0]
	}
	return ""
}

// appNameFromTitle estimates an application name from the window title:
// many applications suffix their name after the last " - " separator.
func appNameFromTitle(title string) string {
	parts := strings.Split(title, " - ")
	if len(parts) > 1 {
		return strings.TrimSpace(parts[len(parts)-1])
	}
	return strings.TrimSpace(title)
}

// GetIdleInfo returns system idle/lock information
func (d *Detector) GetIdleInfo() (*window.IdleInfo, error) {
	idleTime, err := d.idleTime()
	if err != nil {
		return nil, err
	}

	return &window.IdleInfo{
		IsIdle:   false, // threshold comparison is the idle monitor's job
		IsLocked: d.isScreenLocked(),
		IdleTime: idleTime,
	}, nil
}

// idleTime returns seconds since the last input event, 0 when the
// ScreenSaver extension is missing.
func (d *Detector) idleTime() (int64, error) {
	if !d.hasScreenSaver {
		return 0, nil
	}

	reply, err := screensaver.QueryInfo(d.conn, xproto.Drawable(d.root)).Reply()
	if err != nil {
		return 0, fmt.Errorf("failed to query screensaver info: %w", err)
	}

	return int64(reply.MsSinceUserInput) / 1000, nil
}

// isScreenLocked checks if a known screenlocker process is running
func (d *Detector) isScreenLocked() bool {
	lockers := []string{
		"gnome-screensaver-dialog",
		"kscreenlocker",
		"i3lock",
		"slock",
		"xscreensaver",
		"xsecurelock",
	}

	for _, locker := range lockers {
		cmd := exec.Command("pgrep", "-x", locker)
		if err := cmd.Run(); err == nil {
			return true
		}
	}

	return false
}

// Close shuts down the X connection
func (d *Detector) Close() error {
	d.conn.Close()
	return nil
}
