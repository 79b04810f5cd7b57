package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/stockpro/stockpro-cli/internal/cmd"
	"github.com/stockpro/stockpro-cli/internal/config"
)

var (
	executeCmd  = cmd.Execute
	mapExitCode = cmd.ExitCode
	loadEnv     = config.LoadDotEnv
	terminate   = os.Exit
)

func run(args []string) int {
	if err := loadEnv(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, "Warning:", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := executeCmd(ctx, args); err != nil {
		return mapExitCode(err)
	}
	return 0
}

func main() {
	terminate(run(os.Args[1:]))
}
