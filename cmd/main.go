package main

import (
	"fmt"
	"os"

	"github.com/devfolio/devfolio-backend/internal/app"
)

func main() {
	application, err := app.New()
	if err != nil {
		fmt.Printf("Failed to init app: %v\n", err)
		os.Exit(1)
	}
	defer application.Close()

	application.Start()

	port := application.Cfg.Port
	fmt.Printf("Server listening on :%s\n", port)
	if err := application.Run(":" + port); err != nil {
		application.Log.Error("Server failed", "error", err)
	}
}
