package main

import "github.com/Asjdnnc/hackzilla/internal/initializers"

func main() {
	initializers.RunServer()
}
