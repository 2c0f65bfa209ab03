package main

import (
	"sync"

	"github.com/spf13/cobra"
)

type commandExecutionContext struct {
	CommandPath       string
	UsesStructuredLog bool
}

var (
	commandContextMu sync.RWMutex
	commandContext   commandExecutionContext
)

func setCommandExecutionContext(ctx commandExecutionContext) {
	commandContextMu.Lock()
	defer commandContextMu.Unlock()
	commandContext = ctx
}

func resetCommandExecutionContext() {
	setCommandExecutionContext(commandExecutionContext{})
}

func currentCommandExecutionContext() commandExecutionContext {
	commandContextMu.RLock()
	defer commandContextMu.RUnlock()
	return commandContext
}

// structuredLogCommands run unattended and log JSON by default. Interactive
// commands print plain text.
var structuredLogCommands = map[string]bool{
	"serve":   true,
	"migrate": true,
}

func commandUsesStructuredLogging(cmd *cobra.Command) bool {
	if cmd == nil {
		return false
	}
	return structuredLogCommands[cmd.Name()] && cmd.Parent() == rootCmd
}
