package main

import "github.com/xlaunch/xlaunch/cmd"

func main() {
	cmd.Execute()
}
