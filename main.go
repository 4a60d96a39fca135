package main

import "hood-sync/cmd"

func main() {
	cmd.Execute()
}
