package main

import (
	"gf-data-miner/cli"
)

func main() {
	cli.Start()
}
