package main

import (
	"context"
	"log"
	"os"

	"github.com/quitvault/quitvault/internal/buildinfo"
	"github.com/quitvault/quitvault/internal/cli"
	"github.com/quitvault/quitvault/internal/config"
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
