// filepath: cmd/cbbmodel/main.go
package main

import (
	"embed"

	"github.com/noahchrist/myCbbModel/internal/cli"

	// Import docs for Swagger
	_ "github.com/noahchrist/myCbbModel/docs"
)

//go:embed all:frontend_embed/browser
var frontendFS embed.FS

// @title myCbbModel-API
// @version 0.1.0
// @description Backend for the myCbbModel web interface and game data collection.
// @contact.name Noah Christ
// @contact.url https://github.com/noahchrist/myCbbModel
// @BasePath /
// @schemes http

func main() {
	// Delegate all execution to the CLI package
	cli.Execute(frontendFS)
}
