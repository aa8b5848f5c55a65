// Command main runs the database seeder for NestLink.
package main

import (
	"flag"
	"log"

	"nestlink/internal/config"
	"nestlink/internal/database"
	"nestlink/internal/seed"
)

func main() {
	// Parse command line flags
	numParents := flag.Int("parents", 40, "Number of parent accounts to create")
	numNannies := flag.Int("nannies", 10, "Number of nanny accounts to create")
	numPosts := flag.Int("posts", 60, "Number of board posts to create")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	skipBcrypt := flag.Bool("skip-bcrypt", false, "Store plaintext passwords (dev fast mode)")
	flag.Parse()

	log.Println("🌱 Database Seeder")
	log.Println("==================")
	log.Printf("Target: %d parents, %d nannies, %d posts, clean=%v\n",
		*numParents, *numNannies, *numPosts, *shouldClean)

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	if _, err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	err = seed.Seed(database.DB, seed.Options{
		NumParents:  *numParents,
		NumNannies:  *numNannies,
		NumPosts:    *numPosts,
		ShouldClean: *shouldClean,
		SkipBcrypt:  *skipBcrypt,
	})
	if err != nil {
		log.Fatalf("❌ Seeding failed: %v", err)
	}

	log.Println("✨ All done! Your database is now populated with test data.")
	log.Println("📧 All test users have the password: password123")
}
