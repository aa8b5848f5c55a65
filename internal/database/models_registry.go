package database

import "nestlink/internal/models"

// AllModels returns every model participating in schema migration.
// Keep this list in sync when adding a model; tests assert registration.
func AllModels() []interface{} {
	return []interface{}{
		&models.User{},
		&models.NannyProfile{},
		&models.UserReaction{},
		&models.Match{},
		&models.Message{},
		&models.MessageReaction{},
		&models.BoardPost{},
		&models.BoardResponse{},
		&models.SavedPost{},
		&models.Review{},
		&models.Booking{},
	}
}
