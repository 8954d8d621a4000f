package main

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/ironsheep/border-crop-mcp/internal/config"
	"github.com/ironsheep/border-crop-mcp/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Handle --version and -v flags
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("border-crop-mcp %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			fmt.Println("border-crop-mcp - MCP server for uniform border removal")
			fmt.Println()
			fmt.Println("Usage: border-crop-mcp [options]")
			fmt.Println()
			fmt.Println("Options:")
			fmt.Println("  --version, -v    Print version information")
			fmt.Println("  --help, -h       Print this help message")
			fmt.Println()
			fmt.Println("Environment variables:")
			fmt.Println("  BORDER_MCP_CONFIG=path         YAML config file with detection defaults")
			fmt.Println("  BORDER_MCP_TOLERANCE=0.02      Default border tolerance [0.01, 0.5]")
			fmt.Println("  BORDER_MCP_MIN_CROP_SIZE=10    Minimum crop height/width in pixels")
			fmt.Println("  BORDER_MCP_LENIENT=true        Return the original image on unexpected failures")
			fmt.Println("  BORDER_MCP_LOG_LEVEL=debug     Enable debug logging")
			fmt.Println()
			fmt.Println("This server communicates via MCP protocol over stdin/stdout.")
			fmt.Println("Configure it in your MCP client (e.g., Claude Desktop).")
			return
		}
	}

	// Configure logging to stderr (stdout is for MCP protocol)
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	// Optional .env alongside the binary; absence is not an error.
	_ = godotenv.Load()

	cfg, err := config.Load(os.Getenv("BORDER_MCP_CONFIG"))
	if err != nil {
		log.Fatalf("Config error: %v", err)
	}

	if cfg.LogLevel == "debug" {
		log.Printf("Border Crop MCP Server v%s (built %s, commit %s)", Version, BuildTime, GitCommit)
		log.Printf("Defaults: tolerance=%.3f min_crop_size=%d corner_patch=%d lenient=%v",
			cfg.Tolerance, cfg.MinCropSize, cfg.CornerPatchSize, cfg.LenientFallback)
	}

	srv := server.New(cfg)
	if err := srv.Run(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
