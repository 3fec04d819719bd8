package main

import "geohash-kit/cmd"

var Version = "development"

func main() {
	cmd.Execute(Version)
}
