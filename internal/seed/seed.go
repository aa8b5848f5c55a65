// Package seed provides database seeding utilities for development and testing.
package seed

import (
	"fmt"
	"log"

	"nestlink/internal/models"

	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumParents  int
	NumNannies  int
	NumPosts    int
	ShouldClean bool
	SkipBcrypt  bool
}

// Seed populates the database with test data
func Seed(db *gorm.DB, opts Options) error {
	log.Printf("🌱 Starting database seeding with %d parents, %d nannies and %d posts...",
		opts.NumParents, opts.NumNannies, opts.NumPosts)

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			log.Println("⚠️  Warning: Could not clear all existing data, but continuing anyway...")
		}
	}

	f := NewFactory(db, opts)

	parents, nannies, err := createAccounts(f, opts)
	if err != nil {
		return fmt.Errorf("failed to create accounts: %w", err)
	}
	log.Printf("✓ %d parents and %d nannies created", len(parents), len(nannies))

	matches, err := createSocialMesh(f, parents)
	if err != nil {
		return fmt.Errorf("failed to create reactions and matches: %w", err)
	}
	log.Printf("✓ %d matches created", len(matches))

	messageCount, err := createConversations(f, matches, parents)
	if err != nil {
		return fmt.Errorf("failed to create messages: %w", err)
	}
	log.Printf("✓ %d messages created", messageCount)

	posts, err := createBoard(f, parents, nannies, opts.NumPosts)
	if err != nil {
		return fmt.Errorf("failed to create board posts: %w", err)
	}
	log.Printf("✓ %d board posts created", len(posts))

	if err := createReputation(f, parents, nannies); err != nil {
		return fmt.Errorf("failed to create reviews and bookings: %w", err)
	}
	log.Println("✓ reviews and bookings created")

	log.Println("🎉 Database seeding completed successfully!")
	return nil
}

func clearData(db *gorm.DB) error {
	log.Println("🗑️  Clearing existing data...")
	sql := `TRUNCATE TABLE bookings, reviews, saved_posts, board_responses, board_posts,
		message_reactions, messages, matches, user_reactions, nanny_profiles, users
		RESTART IDENTITY CASCADE;`
	return db.Exec(sql).Error
}

func createAccounts(f *Factory, opts Options) (parents, nannies []*models.User, err error) {
	for i := 0; i < opts.NumParents; i++ {
		user, err := f.CreateUser()
		if err != nil {
			return nil, nil, err
		}
		parents = append(parents, user)
	}
	for i := 0; i < opts.NumNannies; i++ {
		user, err := f.CreateNanny()
		if err != nil {
			return nil, nil, err
		}
		nannies = append(nannies, user)
	}
	return parents, nannies, nil
}

// createSocialMesh wires like/block edges between parents. Consecutive pairs
// like each other mutually, so those pairs also get a match; every third
// parent additionally likes (unreciprocated) the parent two ahead.
func createSocialMesh(f *Factory, parents []*models.User) ([]*models.Match, error) {
	var matches []*models.Match

	for i := 0; i+1 < len(parents); i += 2 {
		a, b := parents[i], parents[i+1]
		if err := f.CreateReaction(a, b, models.ReactionLike); err != nil {
			return nil, err
		}
		if err := f.CreateReaction(b, a, models.ReactionLike); err != nil {
			return nil, err
		}
		match, err := f.CreateMatch(a, b)
		if err != nil {
			return nil, err
		}
		matches = append(matches, match)
	}

	for i := 0; i+2 < len(parents); i += 3 {
		if err := f.CreateReaction(parents[i], parents[i+2], models.ReactionLike); err != nil {
			return nil, err
		}
	}

	return matches, nil
}

func createConversations(f *Factory, matches []*models.Match, parents []*models.User) (int, error) {
	byID := make(map[uint]*models.User, len(parents))
	for _, p := range parents {
		byID[p.ID] = p
	}

	count := 0
	for _, match := range matches {
		a, b := byID[match.User1ID], byID[match.User2ID]
		if a == nil || b == nil {
			continue
		}
		// a short exchange; the last message stays unread
		for i := 0; i < f.rng.Intn(4)+2; i++ {
			sender := a
			if i%2 == 1 {
				sender = b
			}
			if _, err := f.CreateMessage(match, sender, func(m *models.Message) {
				m.Read = true
			}); err != nil {
				return count, err
			}
			count++
		}
		if _, err := f.CreateMessage(match, a); err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}

func createBoard(f *Factory, parents, nannies []*models.User, numPosts int) ([]*models.BoardPost, error) {
	authors := append(append([]*models.User{}, parents...), nannies...)
	if len(authors) == 0 {
		return nil, nil
	}

	var posts []*models.BoardPost
	for i := 0; i < numPosts; i++ {
		author := authors[f.rng.Intn(len(authors))]
		post, err := f.CreateBoardPost(author)
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)

		// a couple of responses from other accounts
		for j := 0; j < f.rng.Intn(3); j++ {
			responder := authors[f.rng.Intn(len(authors))]
			if responder.ID == author.ID {
				continue
			}
			if _, err := f.CreateBoardResponse(post, responder); err != nil {
				// duplicate (post, responder) pairs are expected here
				continue
			}
		}
	}
	return posts, nil
}

func createReputation(f *Factory, parents, nannies []*models.User) error {
	for _, nanny := range nannies {
		total := 0
		n := f.rng.Intn(3) + 1
		for i := 0; i < n && i < len(parents); i++ {
			review, err := f.CreateReview(nanny, parents[(i*7)%len(parents)])
			if err != nil {
				return err
			}
			total += review.Rating
		}
		if n > 0 {
			avg := float64(total) / float64(n)
			if err := f.db.Model(&models.User{}).Where("id = ?", nanny.ID).
				Update("rating", avg).Error; err != nil {
				return err
			}
		}

		if len(parents) > 0 {
			client := parents[f.rng.Intn(len(parents))]
			statuses := []models.BookingStatus{
				models.BookingActive, models.BookingCompleted, models.BookingCancelled,
			}
			if _, err := f.CreateBooking(client, nanny, statuses[f.rng.Intn(len(statuses))]); err != nil {
				return err
			}
		}
	}
	return nil
}
