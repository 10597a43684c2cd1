package main

import "github.com/jakubvalenta/github-metrics/cmd"

func main() {
	cmd.Execute()
}
