package main

import "github.com/hcmteam/personnel-management/cmd"

func main() {
	cmd.Execute()
}
