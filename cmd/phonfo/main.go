// cmd/phonfo/main.go
package main

import (
	"github.com/bstardust/phonfo/internal/logger"
	"github.com/bstardust/phonfo/pkg/cli"
)

func main() {
	// Initialize logger
	logger.Init()

	// Execute CLI
	cli.Execute()
}
