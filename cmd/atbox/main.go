package main

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/sevein/atbox/cmd/atbox/cli"
)

var version = "dev"

func main() {
	// Replaced once the environment, including --env-file, has been read.
	_, _ = cli.NewLogger(zapcore.WarnLevel)

	cli.Version = version
	if err := cli.NewRootCmd(cli.DefaultOptions()).Execute(); err != nil {
		zap.L().Fatal(err.Error())
	}
}
