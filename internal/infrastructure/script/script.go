// Package script selects a script engine for a user script and provides a
// recording host used to dry-run scripts.
package script

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/bnema/sleepwatcher/internal/application/port"
	"github.com/bnema/sleepwatcher/internal/infrastructure/script/js"
	"github.com/bnema/sleepwatcher/internal/infrastructure/script/lua"
)

// NewEngine returns the engine matching the extension of path: .lua for
// Lua, .js or .mjs for JavaScript.
func NewEngine(path string) (port.ScriptEngine, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".lua":
		return lua.NewEngine(), nil
	case ".js", ".mjs":
		return js.NewEngine(), nil
	default:
		return nil, fmt.Errorf("unsupported script type %q for %s", ext, path)
	}
}
