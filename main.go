package main

import "github.com/ivanschuetz/capi-core-sub000/cmd"

func main() {
	cmd.Execute()
}
