package main

import "grail-monitor/cmd"

func main() {
	cmd.Execute()
}
