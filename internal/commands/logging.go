package commands

import (
	"strings"

	"github.com/goliatone/go-sitecms/internal/logging"
	"github.com/goliatone/go-sitecms/pkg/interfaces"
)

// CommandLogger returns a logger for the command handlers of module.
func CommandLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	name := strings.TrimSpace(module)
	if name == "" {
		name = "core"
	}
	return logging.WithFields(logging.CommandsLogger(provider, name), map[string]any{
		"component":      "command",
		"command_module": name,
	})
}
