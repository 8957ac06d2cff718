package main

import "github.com/quentinv/jobpipe/cmd"

func main() {
	cmd.Execute()
}
