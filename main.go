package main

import (
	_ "github.com/joho/godotenv/autoload"

	"github.com/Boredoom17/portfolio/internal/cli"
)

func main() {
	cli.Execute()
}
