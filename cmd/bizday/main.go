package main

import "github.com/vietddude/bizday/internal/cli"

func main() {
	cli.Execute()
}
