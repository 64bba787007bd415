package main

import "ark/cmd"

func main() {
	cmd.Execute()
}
