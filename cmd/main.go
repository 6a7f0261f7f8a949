package main

import (
	"github.com/corray333/digital-store/internal/app"
	"github.com/corray333/digital-store/internal/config"
)

func main() {
	config.MustInit()
	app.MustNewApp().Run()
}
