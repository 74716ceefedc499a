package main

import "shopdesk/internal/cmd"

func main() {
	cmd.Execute()
}
