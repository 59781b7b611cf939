package main

import "github.com/luckyjian/my/internal/cli"

func main() {
	cli.Execute()
}
