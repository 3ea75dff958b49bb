package main

import "benchracers_backend/internal/app"

func main() {
	app.Run()
}
