package main

import "mailkeeper/cmd/server/cmd"

func main() {
	cmd.Execute()
}
