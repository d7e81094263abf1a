package cryptolens

import (
	"log"
	"os"

	"github.com/GoogleCloudPlatform/functions-framework-go/functions"

	"github.com/cryptolens/cryptolens/internal/server"
)

func init() {
	functionTarget := os.Getenv("FUNCTION_TARGET")
	if functionTarget == "" {
		log.Fatal("❌ Error: FUNCTION_TARGET environment variable is not set")
	}

	log.Printf("✅ Registering function: %s", functionTarget)

	functions.HTTP(functionTarget, server.HandleRequest)
}
