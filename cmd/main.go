package main

import "github.com/Keerti2504/todo-simple/internal/app"

func main() {
	app.InitDefaultLogger()
	app.MustReadEnv()
	app.MustInitApplicationLogger()

	app.MustOpenStorage()

	app.MustListenAndServeHTTP()
}
