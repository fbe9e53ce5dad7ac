package main

import (
	"context"
	"log"
	"os"

	"github.com/hygieia-health/hygieia-cli/internal/buildinfo"
	"github.com/hygieia-health/hygieia-cli/internal/cli"
	"github.com/hygieia-health/hygieia-cli/internal/config"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := cli.NewApp(cfg)

	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run(ctx)

}
