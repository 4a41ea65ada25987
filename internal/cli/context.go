package cli

import (
	"path/filepath"

	"github.com/julianstephens/dawnlock/internal/app"
	"github.com/julianstephens/dawnlock/internal/storage"
)

// Context carries the wired application into every command.
type Context struct {
	Store storage.Provider
	App   *app.App
	Debug bool
}

// ConfigDir returns the directory holding the store, logs, and photo markers.
func (c *Context) ConfigDir() string {
	return filepath.Dir(c.Store.GetConfigPath())
}
