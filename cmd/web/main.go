package main

import "instalab_backend/internal/app"

func main() {
	app.Run()
}
