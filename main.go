package main

import (
	"os"

	"github.com/ChuanqiXu9/AIDiganosticConsumer/cmd"
	"github.com/ChuanqiXu9/AIDiganosticConsumer/logger"
)

func main() {
	err := cmd.Execute()
	logger.Sync()
	if err != nil {
		os.Exit(cmd.ExitCode(err))
	}
}
