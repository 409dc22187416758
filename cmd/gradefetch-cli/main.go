package main

import (
	"gradefetch-backend/cmd/gradefetch-cli/commands"
	"gradefetch-backend/lib/serviceutil"
)

func main() {
	ctx := serviceutil.SignalContext()
	commands.ExecuteContext(ctx)
}
