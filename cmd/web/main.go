package main

import "trainertrust_backend/internal/app"

func main() {
	app.Run()
}
