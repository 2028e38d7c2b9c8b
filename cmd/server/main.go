package main

import (
	"github.com/vigie-app/vigie/backend/internal/server"
	"github.com/vigie-app/vigie/backend/internal/util"
	"github.com/vigie-app/vigie/backend/pkg/logger"
	"github.com/vigie-app/vigie/backend/pkg/logger/console"
)

func main() {
	util.LoadEnv()

	consoleLogger := console.NewConsoleLogger(console.ConsoleLoggerParams{
		Level: util.GetEnvString("LOG_LEVEL", "info"),
	})
	logger.Init(consoleLogger)

	server.Init()
}
