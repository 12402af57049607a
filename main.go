package main

import "golang-ddnsd/cmd"

func main() {
	cmd.Execute()
}
