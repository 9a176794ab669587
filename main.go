package main

import "wallshift/cmd"

func main() {
	cmd.Execute()
}
