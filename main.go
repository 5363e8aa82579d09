package main

import "github.com/meyerstk/stormfetch/cmd"

func main() {
	cmd.Execute()
}
