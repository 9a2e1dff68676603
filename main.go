package main

import "github.com/ShreyashPatil123/Panther-update-sub001/cmd"

func main() {
	cmd.Execute()
}
