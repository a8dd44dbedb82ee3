package main

import "bond-sale-alerts/internal/cli"

func main() {
	cli.Execute()
}
