package main

import "github.com/inovacc/ghprofile/cmd"

func main() {
	cmd.Execute()
}
