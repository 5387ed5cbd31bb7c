package main

import (
	"log"
	"net/http"
	"os"

	"github.com/user/seo-report/cmd/seoreport/app"
)

func main() {
	if err := app.Run(os.Args, os.Stdout, os.Stderr, &http.Client{}); err != nil {
		log.Print(err)
		os.Exit(1)
	}
}
