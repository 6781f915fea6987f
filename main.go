package main

import "github.com/doughepi/grain/cmd"

func main() {
	cmd.Execute()
}
