package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/rpg-sheet/internal/entities/pf2e"
)

const (
	characterPattern  = "character:*"
	playerIndexPrefix = "character:player:"
)

// versionProbe reads just enough of a record to tell its schema
type versionProbe struct {
	SchemaVersion int `json:"schema_version"`
}

func main() {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://localhost:6379"
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Fatal("Failed to parse Redis URL:", err)
	}

	client := redis.NewClient(opt)
	ctx := context.Background()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}

	fmt.Println("Connected to Redis:", redisURL)
	fmt.Println("Scanning for character sheets on an older schema...")

	iter := client.Scan(ctx, 0, characterPattern, 0).Iterator()

	upgrades := make(map[string][]byte)
	var malformedKeys []string
	var checkedCount int

	for iter.Next(ctx) {
		key := iter.Val()
		if strings.HasPrefix(key, playerIndexPrefix) {
			continue
		}
		checkedCount++

		data, err := client.Get(ctx, key).Bytes()
		if err != nil {
			fmt.Printf("Error reading %s: %v\n", key, err)
			continue
		}

		var probe versionProbe
		if err := json.Unmarshal(data, &probe); err != nil {
			fmt.Printf("✗ Corrupted JSON in %s\n", key)
			malformedKeys = append(malformedKeys, key)
			continue
		}
		if probe.SchemaVersion == pf2e.CurrentSchemaVersion {
			continue
		}

		record, err := pf2e.DecodeSimpleCharacter(data)
		if err == nil {
			_, err = pf2e.ToCharacter(record)
		}
		if err != nil {
			fmt.Printf("✗ Cannot upgrade %s: %v\n", key, err)
			malformedKeys = append(malformedKeys, key)
			continue
		}

		upgraded, err := json.Marshal(record)
		if err != nil {
			fmt.Printf("✗ Cannot encode %s: %v\n", key, err)
			continue
		}
		fmt.Printf("↑ %s: schema %d -> %d\n", key, probe.SchemaVersion, pf2e.CurrentSchemaVersion)
		upgrades[key] = upgraded
	}

	if err := iter.Err(); err != nil {
		log.Fatal("Error during scan:", err)
	}

	fmt.Printf("\nChecked %d sheets, %d to upgrade, %d malformed\n", checkedCount, len(upgrades), len(malformedKeys))

	if len(malformedKeys) > 0 {
		fmt.Println("\nMalformed keys (left untouched):")
		for _, key := range malformedKeys {
			fmt.Printf("  - %s\n", key)
		}
	}

	if len(upgrades) == 0 {
		fmt.Println("Nothing to upgrade!")
		return
	}

	fmt.Print("\nDo you want to REWRITE these sheets on the current schema? (yes/no): ")
	var response string
	_, _ = fmt.Scanln(&response)

	if response != "yes" {
		fmt.Println("Aborted - no changes made")
		return
	}

	for key, data := range upgrades {
		if err := client.Set(ctx, key, data, 0).Err(); err != nil {
			fmt.Printf("Failed to rewrite %s: %v\n", key, err)
		} else {
			fmt.Printf("Rewrote %s\n", key)
		}
	}
	fmt.Println("\nUpgrade complete!")
}
