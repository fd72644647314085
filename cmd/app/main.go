package main

import (
	"github.com/humanbelnik/moviematch/internal/app"
	"github.com/humanbelnik/moviematch/internal/config"
)

// @title MovieMatch API
// @version 1.0
// @description Групповой выбор фильмов: комнаты, свайпы и матчи
// @BasePath /api/v1
func main() {
	app.Go(config.Load())
}
