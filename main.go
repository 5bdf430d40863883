package main

import (
	"fmt"
	"os"
	"strings"

	"yatube/app/config"
	"yatube/app/logger"
	"yatube/service"
)

const CliVersion = "1.0.0"

// exit is replaced in tests.
var exit = os.Exit

func main() {
	RealMain()
}

// RealMain dispatches os.Args to the subcommands.
func RealMain() {
	if len(os.Args) < 2 {
		printHelp()
		exit(1)
		return
	}

	cmd := strings.ToLower(os.Args[1])
	switch cmd {
	case "help", "-h", "--help":
		printHelp()
	case "version":
		fmt.Printf("yatube version %s\n", CliVersion)
	default:
		cfg := config.Load()
		logger.Setup(cfg.LogLevel, cfg.LogFormat, cfg.Debug)
		service.SetConfig(cfg)
		if code := service.HandleCommand(os.Args[1:]); code != 0 {
			exit(code)
		}
	}
}

func printHelp() {
	service.PrintHelp()
}
