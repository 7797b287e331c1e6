package main

import "github.com/pyrite-lang/pyrite/cmd"

var version = "v0.1.0"

func main() {
	cmd.Execute(version)
}
