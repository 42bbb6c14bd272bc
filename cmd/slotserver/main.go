package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/dmitrijs2005/walletcore/internal/buildinfo"
	"github.com/dmitrijs2005/walletcore/internal/flagx"
	"github.com/dmitrijs2005/walletcore/internal/server"
	"github.com/dmitrijs2005/walletcore/internal/server/config"
)

// mintUser returns the user named by -mint, if any.
func mintUser() string {
	var user string
	fs := flag.NewFlagSet("mint", flag.ContinueOnError)
	fs.StringVar(&user, "mint", "", "print an access token for the user and exit")
	if err := fs.Parse(flagx.FilterArgs(os.Args[1:], []string{"-mint"})); err != nil {
		log.Fatalf("%v", err)
	}
	return user
}

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := server.NewApp(ctx, cfg)

	if err != nil {
		log.Fatalf("%v", err)
	}

	if user := mintUser(); user != "" {
		token, err := app.MintToken(user)
		if err != nil {
			log.Fatalf("%v", err)
		}
		fmt.Println(token)
		return
	}

	buildinfo.PrintBuildData(os.Stdout)
	app.Run(ctx)

}
