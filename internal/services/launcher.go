package services

import (
	"os/exec"
	"runtime"

	"github.com/julianstephens/dawnlock/internal/logger"
)

// Launcher opens an external application, best-effort. Opening an app never
// marks anything complete; completion is always a separate explicit act.
type Launcher interface {
	Open() bool
}

// URLLauncher hands a URL or scheme to the platform opener and reports
// whether the handoff started. It is fire-and-forget: the launched process
// is not waited on.
type URLLauncher struct {
	target string
}

func NewCalendarLauncher() *URLLauncher { return &URLLauncher{target: "webcal://"} }

func (l *URLLauncher) Open() bool {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", l.target)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", l.target)
	default:
		cmd = exec.Command("xdg-open", l.target)
	}
	if err := cmd.Start(); err != nil {
		logger.Warn("Failed to launch external app", "target", l.target, "error", err)
		return false
	}
	return true
}
