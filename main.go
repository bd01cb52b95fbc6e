package main

import "messenger-api/config"

func main() {
	config.RunServer()
}
