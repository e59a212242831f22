package main

import "github.com/alazi900-coder/zelda-arabic-magic-sub002/cmd/bdat/cmd"

func main() {
	cmd.Execute()
}
