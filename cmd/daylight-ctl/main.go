package main

import "github.com/oshokin/daylight/cmd/daylight-ctl/cmd"

func main() {
	cmd.Execute()
}
