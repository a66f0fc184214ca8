package detector

import (
	"fmt"
	"os"

	"github.com/focuslog/focuslog/pkg/integrations/x11"
	"github.com/focuslog/focuslog/pkg/window"
)

// New returns a detector for the current session. Only X11 capture is
// implemented; anything else is reported, not guessed at.
func New() (window.Detector, error) {
	server := DetectDisplayServer()
	if server != "x11" {
		return nil, fmt.Errorf("unsupported display server: %s (x11 required)", server)
	}

	return x11.NewDetector()
}

func DetectDisplayServer() string {
	sessionType := os.Getenv("XDG_SESSION_TYPE")
	waylandDisplay := os.Getenv("WAYLAND_DISPLAY")
	x11Display := os.Getenv("DISPLAY")

	if sessionType == "wayland" || waylandDisplay != "" {
		return "wayland"
	}

	if sessionType == "x11" || x11Display != "" {
		return "x11"
	}

	return "unknown"
}
