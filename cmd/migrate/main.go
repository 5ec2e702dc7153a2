package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"tailorpos/internal/config"
	"tailorpos/internal/store"
)

// ANSI color codes for terminal output
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
	colorBold   = "\033[1m"
)

var (
	customersCount = flag.Int("customers", 12, "Number of customers to create (seed)")
	clearData      = flag.Bool("clear", false, "Empty orders and customers before seeding (seed)")
	seedValue      = flag.Int64("seed", 1, "Random seed for generated data (seed)")
)

func main() {
	flag.Usage = printUsage
	flag.Parse()

	// Load .env file (ignore error if not present)
	_ = godotenv.Load()

	printInfo("=== Tailor POS Store Tool ===\n")

	command := flag.Arg(0)
	switch command {
	case "up", "status", "seed":
	case "import":
		if flag.NArg() < 2 {
			printError("import needs a dump file")
			printUsage()
			os.Exit(1)
		}
	case "", "help":
		printUsage()
		os.Exit(0)
	default:
		printUsage()
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		printError(fmt.Sprintf("Failed to load configuration: %v", err))
		os.Exit(1)
	}

	printInfo(fmt.Sprintf("Opening %s store...", cfg.Store.Driver))
	ctx := context.Background()
	kv, err := store.Open(ctx, cfg.StoreOptions(), zap.NewNop())
	if err != nil {
		printError(fmt.Sprintf("Failed to open store: %v", err))
		os.Exit(1)
	}
	defer kv.Close()
	printSuccess("✓ Store ready\n")

	switch command {
	case "up":
		err = runUp(ctx, kv)
	case "status":
		err = showStatus(ctx, kv)
	case "import":
		err = runImport(ctx, kv, flag.Arg(1))
	case "seed":
		err = runSeed(ctx, kv, *customersCount, *clearData, *seedValue)
	}
	if err != nil {
		printError(fmt.Sprintf("%s failed: %v", command, err))
		os.Exit(1)
	}

	printInfo("\n✨ Operation completed successfully!")
}

func printSuccess(msg string) {
	fmt.Printf("%s%s%s\n", colorGreen, msg, colorReset)
}

func printError(msg string) {
	fmt.Fprintf(os.Stderr, "%s%s%s\n", colorRed, msg, colorReset)
}

func printInfo(msg string) {
	fmt.Printf("%s%s%s\n", colorCyan, msg, colorReset)
}

func printWarning(msg string) {
	fmt.Printf("%s%s%s\n", colorYellow, msg, colorReset)
}

func printUsage() {
	fmt.Println("Usage: migrate [flags] <command> [args]")
	fmt.Println("\nCommands:")
	fmt.Println("  up             - Create the schema and rewrite stored collections in the current format")
	fmt.Println("  status         - Show stored keys, formats and record counts")
	fmt.Println("  import <file>  - Load a JSON dump of the browser storage keys")
	fmt.Println("  seed           - Insert generated customers and orders")
	fmt.Println("\nFlags:")
	flag.PrintDefaults()
	fmt.Println("\nThe store is selected with STORE_DRIVER (sqlite, postgres, redis, memory).")
}
