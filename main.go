package main

import (
	"xuanxin.dev/backend-next/cmd/app"
)

func main() {
	app.Run()
}
