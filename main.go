package main

import "contacthub/cmd"

func main() {
	cmd.Execute()
}
