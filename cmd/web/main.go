package main

import "unifit_backend/internal/app"

func main() {
	app.Run()
}
