package main

import "github.com/oshokin/daylight/cmd/daylight/cmd"

func main() {
	cmd.Execute()
}
