package main

import "merchantdesk/internal/cli"

func main() {
	cli.Execute()
}
