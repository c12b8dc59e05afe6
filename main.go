/*
Copyright © 2025 mohamadmonzer-a
*/
package main

import (
	"github.com/joho/godotenv"
	"github.com/mohamadmonzer-a/railwayBackend/cmd"
)

func main() {
	cmd.Execute()
}

func init() {
	// Deployments inject the environment directly; .env is for local runs
	_ = godotenv.Load()
}
