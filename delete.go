package main

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/oversightlabs/approval-service/internal/workflow"
)

// DeleteMode runs the project deletion CLI tool against the Redis backend.
func DeleteMode(client *redis.Client, patterns []string) error {
	ctx := context.Background()
	store := workflow.NewRedisStore(client)

	log.Printf("Connected to Redis at %s", client.Options().Addr)
	log.Printf("Deletion patterns: %v", patterns)

	projects, err := store.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch projects: %w", err)
	}

	log.Printf("Found %d total projects", len(projects))
	if len(projects) == 0 {
		log.Println("No projects found in database")
		return nil
	}

	matchingIDs := []string{}
	for _, p := range projects {
		if matchesAnyPattern(p.ID, patterns) {
			matchingIDs = append(matchingIDs, p.ID)
		}
	}

	if len(matchingIDs) == 0 {
		log.Printf("No projects matched the patterns: %v", patterns)
		return nil
	}

	log.Printf("Found %d projects matching deletion patterns", len(matchingIDs))

	fmt.Printf("\nWARNING: About to delete %d project(s):\n", len(matchingIDs))
	if len(matchingIDs) <= 10 {
		for _, id := range matchingIDs {
			fmt.Printf("  - %s\n", id)
		}
	} else {
		for i := 0; i < 5; i++ {
			fmt.Printf("  - %s\n", matchingIDs[i])
		}
		fmt.Printf("  ... and %d more\n", len(matchingIDs)-5)
	}
	fmt.Printf("\nThis action CANNOT be undone.\n")
	fmt.Printf("Type 'yes' to confirm deletion: ")

	var confirmation string
	_, _ = fmt.Scanln(&confirmation)

	if confirmation != "yes" {
		log.Println("Deletion cancelled by user")
		return nil
	}

	deletedCount := 0
	for _, id := range matchingIDs {
		if err := store.Delete(ctx, id); err != nil {
			log.Printf("Error deleting project %s: %v", id, err)
			continue
		}
		deletedCount++
	}

	log.Printf("Successfully deleted %d out of %d projects", deletedCount, len(matchingIDs))
	return nil
}

// ListProjects prints every stored project with its stage and status.
func ListProjects(client *redis.Client) error {
	ctx := context.Background()
	store := workflow.NewRedisStore(client)

	projects, err := store.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch projects: %w", err)
	}

	if len(projects) == 0 {
		fmt.Println("No projects found in database")
		return nil
	}

	fmt.Printf("Found %d project(s):\n\n", len(projects))
	for i, p := range projects {
		fmt.Printf("%4d. %s  [%s / %s]  %s\n", i+1, p.ID, p.Status, p.Stage, p.Name)
	}

	return nil
}

func matchesAnyPattern(id string, patterns []string) bool {
	for _, pattern := range patterns {
		if matchesPattern(id, pattern) {
			return true
		}
	}
	return false
}

// matchesPattern converts glob-style pattern to regex and matches.
// * becomes .* and ? becomes a single character.
func matchesPattern(id, pattern string) bool {
	escaped := regexp.QuoteMeta(pattern)
	escaped = strings.ReplaceAll(escaped, `\*`, ".*")
	escaped = strings.ReplaceAll(escaped, `\?`, ".")

	matched, err := regexp.MatchString("^"+escaped+"$", id)
	if err != nil {
		return false
	}
	return matched
}
