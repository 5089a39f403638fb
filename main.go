package main

import "github.com/rutushah/To-do-application/cmd"

func main() {
	cmd.Execute()
}
