package main

import "github.com/paydesk/paydesk/cmd/paydesk/cmd"

func main() {
	cmd.Execute()
}
