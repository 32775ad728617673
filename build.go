//go:build ignore

package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
)

// BuildTarget represents a buildable binary target
type BuildTarget struct {
	Name        string
	SourcePath  string
	Description string
}

// Available build targets
var buildTargets = map[string]BuildTarget{
	"server": {
		Name:        "server",
		SourcePath:  "./cmd/server",
		Description: "HTTP API for pages, the schedule board and preferences",
	},
	"worker": {
		Name:        "worker",
		SourcePath:  "./cmd/worker",
		Description: "Redis worker running reminders and the periodic live check",
	},
	"watchreminders": {
		Name:        "watchreminders",
		SourcePath:  "./cmd/watchreminders",
		Description: "Cloud Functions target for Cloud Tasks reminder jobs",
	},
	"schedulereminders": {
		Name:        "schedulereminders",
		SourcePath:  "./cmd/schedulereminders",
		Description: "One-shot job enqueuing a reminder per scheduled release",
	},
	"enqueue": {
		Name:        "enqueue",
		SourcePath:  "./cmd/enqueue",
		Description: "Enqueue a single reminder onto Redis",
	},
	"mockapi": {
		Name:        "mockapi",
		SourcePath:  "./cmd/mockapi",
		Description: "Fake upstream API for local runs",
	},
}

func main() {
	var (
		target = flag.String("target", "", "Target to build (see -list)")
		list   = flag.Bool("list", false, "List available build targets")
		all    = flag.Bool("all", false, "Build all available targets")
	)
	flag.Parse()

	if len(os.Args) == 1 {
		showUsage()
		return
	}

	if *list {
		listTargets()
		return
	}

	binDir := "./bin"
	if err := os.MkdirAll(binDir, 0755); err != nil {
		log.Fatalf("Failed to create bin directory: %v", err)
	}

	if *all {
		buildAllTargets(binDir)
		return
	}

	if *target == "" {
		fmt.Println("Error: target flag is required")
		showUsage()
		os.Exit(1)
	}

	if !buildTarget(*target, binDir) {
		os.Exit(1)
	}
}

func showUsage() {
	fmt.Println("Build system for animeschedule")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  go run build.go -target <target>  Build specific target")
	fmt.Println("  go run build.go -all              Build all targets")
	fmt.Println("  go run build.go -list             List available targets")
	fmt.Println()
	fmt.Println("All binaries are saved to ./bin/")
}

func targetNames() []string {
	names := make([]string, 0, len(buildTargets))
	for name := range buildTargets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func listTargets() {
	fmt.Println("Available build targets:")
	fmt.Println()
	for _, name := range targetNames() {
		target := buildTargets[name]
		fmt.Printf("  %-18s %s\n", name, target.Description)
		fmt.Printf("  %-18s Source: %s\n", "", target.SourcePath)
	}
}

func buildAllTargets(binDir string) {
	success := 0
	names := targetNames()
	for _, name := range names {
		if buildTarget(name, binDir) {
			success++
		}
	}
	fmt.Printf("Build complete: %d/%d targets built successfully\n", success, len(names))
}

func buildTarget(targetName, binDir string) bool {
	target, exists := buildTargets[targetName]
	if !exists {
		fmt.Printf("Error: Unknown target '%s'\n", targetName)
		fmt.Println("Use -list to see available targets")
		return false
	}

	if _, err := os.Stat(target.SourcePath); os.IsNotExist(err) {
		fmt.Printf("Error: Source path does not exist: %s\n", target.SourcePath)
		return false
	}

	absOutputPath, err := filepath.Abs(filepath.Join(binDir, target.Name))
	if err != nil {
		fmt.Printf("Error getting absolute output path: %v\n", err)
		return false
	}

	fmt.Printf("Building %s...\n", target.Name)
	cmd := exec.Command("go", "build", "-o", absOutputPath, target.SourcePath)
	cmd.Env = append(os.Environ(), "CGO_ENABLED=0")

	output, err := cmd.CombinedOutput()
	if err != nil {
		fmt.Printf("Error building %s: %v\n", target.Name, err)
		if len(output) > 0 {
			fmt.Printf("Build output:\n%s\n", string(output))
		}
		return false
	}

	fmt.Printf("Built %s -> %s\n", target.Name, absOutputPath)
	return true
}
