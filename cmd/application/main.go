package main

import (
	"log"
	"os"

	"printshop_api/internal/app"
)

func main() {
	server := app.NewServer(os.Stdout)
	if err := server.Run(os.Args[1:]); err != nil {
		log.Fatalf("printshop: %v", err)
	}
}
