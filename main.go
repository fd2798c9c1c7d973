package main

import "github.com/modsect/modsect/cmd"

func main() {
	cmd.Execute()
}
