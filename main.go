package main

import "source-manager/cmd"

func main() {
	cmd.Execute()
}
