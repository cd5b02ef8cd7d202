package main

import "github.com/selimozcann/RedirectToolkit/cmd"

func main() {
	cmd.Execute()
}
