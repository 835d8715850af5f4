package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/devfolio/devfolio-backend/internal/app"
)

// Recomputes the full similarity graph once and exits. Meant for cron or
// ad-hoc runs; the server offers the same rebuild behind the admin endpoint.
func main() {
	var timeout time.Duration
	flag.DurationVar(&timeout, "timeout", 0, "abort the rebuild after this duration (0 = no timeout)")
	flag.Parse()

	application, err := app.New()
	if err != nil {
		fmt.Printf("init app: %v\n", err)
		os.Exit(1)
	}
	defer application.Close()

	ctx := context.Background()
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	stats, err := application.Services.SimilarityUpdate.UpdateAll(ctx)
	if err != nil {
		fmt.Printf("update similarities: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("users scanned:    %d\n", stats.UsersScanned)
	fmt.Printf("projects scanned: %d\n", stats.ProjectsScanned)
	fmt.Printf("user edges:       %d\n", stats.UserEdges)
	fmt.Printf("project edges:    %d\n", stats.ProjectEdges)
	fmt.Printf("failures:         %d\n", stats.Failures)
	fmt.Printf("elapsed:          %s\n", stats.Elapsed)
}
