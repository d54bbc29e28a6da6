package main

import "github.com/Rorical/coldmail/cmd"

func main() {
	cmd.Execute()
}
