package main

import "lifeplanner/cmd/lp/root"

func main() {
	root.Execute()
}
