package main

import (
	"github.com/eruditgame/erudit-server/internal/cli"
)

func main() {
	cli.Execute()
}
