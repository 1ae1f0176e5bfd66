package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/mww/fantasy_basketball/cli"
)

func main() {
	err := godotenv.Load()
	if err != nil && !os.IsNotExist(err) {
		log.Fatalf("Error loading .env file: %v", err)
	}

	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
