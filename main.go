package main

import "tag-manager/cmd"

func main() {
	cmd.Execute()
}
