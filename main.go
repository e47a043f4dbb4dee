package main

import (
	"log"

	"tracker/config"
	"tracker/database"
	"tracker/middleware"
	v1 "tracker/routes/v1"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title Orac Progress Tracker API
// @version 1.0
// @description Tracks problem-solving progress scraped from the orac training site: per-user problem lists, solver statistics, pairwise comparisons and an activity feed.
// @BasePath /api/v1
// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
func main() {
	config.LoadConfig()
	database.InitDB()
	database.InitRedis()

	r := gin.Default()
	v1.Register(r)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	middleware.UpdateSystemMetrics()

	log.Fatal(r.Run(":" + config.ServerPort))
}
