// Command reportctl renders back-office reports from a seed dataset
// without starting the HTTP server.
package main

import (
	"os"

	"delizzia_backoffice/pkg/utils"
)

func main() {
	utils.InitLogger(utils.LoggerConfig{Level: utils.Getenv("LOG_LEVEL", "warn")})
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
