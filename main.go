package main

import "github.com/podcastpixels/podcastpixels/internal/cli"

func main() {
	cli.Main()
}
