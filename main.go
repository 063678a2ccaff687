package main

import "github.com/truemediaorg/igfetch/cmd"

func main() {
	cmd.Execute()
}
