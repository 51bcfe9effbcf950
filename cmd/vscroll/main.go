package main

import (
	"log"
)

var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

func main() {
	if err := New().Execute(); err != nil {
		log.Fatalf("error during command execution: %v", err)
	}
}
