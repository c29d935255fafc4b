package main

import "github.com/oshokin/daylight/cmd/daylight-server/cmd"

func main() {
	cmd.Execute()
}
