package main

import "github.com/redsoxbot/soxbot/internal/cli"

func main() {
	cli.Execute()
}
