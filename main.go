package main

import "ai-multi/cmd"

func main() {
	cmd.Execute()
}
