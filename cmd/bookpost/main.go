package main

import "github.com/emrgen/bookpost/cmd"

func main() {
	cmd.Execute()
}
