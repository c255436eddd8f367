package main

import "bonsai-auction-api/app"

func main() {
	app.Run()
}
