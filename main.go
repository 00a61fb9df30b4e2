package main

import "github.com/mouse-blink/hendrix/cmd"

func main() {
	cmd.Execute()
}
