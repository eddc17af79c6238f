package main

import "github.com/mvp-joe/layerlint/internal/cli"

func main() {
	cli.Execute()
}
