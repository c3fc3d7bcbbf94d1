package main

import "github.com/isomerpages/teambot/cmd"

func main() {
	cmd.Execute()
}
