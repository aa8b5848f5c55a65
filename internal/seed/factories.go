// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"math/rand"
	"time"

	"nestlink/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Factory builds domain entities and persists them to the database.
// It is a thin helper used by the seeder and tests.
type Factory struct {
	db   *gorm.DB
	opts Options
	rng  *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB, opts Options) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	//nolint:gosec // Weak random number generator is fine for seeding
	return &Factory{db: db, opts: opts, rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

var (
	cities = []string{
		"Springfield", "Riverton", "Lakewood", "Fairview", "Maplewood",
		"Oakdale", "Brookside", "Cedarville", "Elmhurst", "Westfield",
	}

	districts = []string{
		"Downtown", "Old Town", "Northside", "Southside", "Riverside",
		"Hillcrest", "Parkside", "Eastgate", "Westend", "Harbor",
	}

	parentInterests = []string{
		"playdates", "outdoor activities", "arts and crafts", "swimming",
		"music classes", "reading", "cooking", "museums", "hiking", "board games",
	}

	nannySpecializations = []string{
		"newborn care", "special needs", "homework help", "early education",
		"bilingual care", "sleep training", "meal preparation", "first aid",
	}

	languages = []string{"English", "Spanish", "French", "German", "Mandarin", "Portuguese"}

	messageSamples = []string{
		"Hi! Are you free this weekend?",
		"Our kids had so much fun at the park yesterday.",
		"Would Tuesday afternoon work for a playdate?",
		"Thanks again for the recommendation!",
		"What time works best for you?",
		"We're near the playground on the corner, come join us!",
	}

	reviewComments = []string{
		"Wonderful with the kids, highly recommend.",
		"Always on time and very reliable.",
		"The children ask for her every week.",
		"Great communication and very patient.",
		"Went above and beyond, we felt completely at ease.",
	}
)

// CreateUser constructs and persists a sample parent account.
// Optional override functions may modify the generated user before saving.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	now := time.Now().Add(-time.Duration(f.rng.Intn(72)) * time.Hour)
	kids := models.JSONKidList{}
	for i := 0; i < f.rng.Intn(3)+1; i++ {
		kids = append(kids, models.Kid{
			Name:   gofakeit.FirstName(),
			Age:    f.rng.Intn(10) + 1,
			Gender: []string{"girl", "boy"}[f.rng.Intn(2)],
		})
	}

	user := &models.User{
		Email:        gofakeit.Email(),
		Name:         gofakeit.Name(),
		Phone:        gofakeit.Phone(),
		PhotoURL:     fmt.Sprintf("https://i.pravatar.cc/150?u=%s", gofakeit.UUID()),
		Bio:          gofakeit.Sentence(10),
		Location:     cities[f.rng.Intn(len(cities))],
		Role:         models.RoleParent,
		Interests:    f.pickStrings(parentInterests, 3),
		Kids:         kids,
		Friends:      models.JSONStringList{},
		Online:       f.rng.Intn(3) == 0,
		LastActiveAt: &now,
	}
	user.Avatar = user.DisplayAvatar()

	// Password handling: allow skipping bcrypt in dev fast mode
	if f.opts.SkipBcrypt {
		user.Password = "password123"
	} else {
		hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
		user.Password = string(hashedPassword)
	}

	for _, override := range overrides {
		override(user)
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// CreateNanny constructs and persists a nanny account with a professional
// profile record.
func (f *Factory) CreateNanny(overrides ...func(*models.User)) (*models.User, error) {
	user, err := f.CreateUser(func(u *models.User) {
		u.Role = models.RoleNanny
		u.Kids = models.JSONKidList{}
		u.Avatar = ""
		for _, override := range overrides {
			override(u)
		}
		if u.Avatar == "" {
			u.Avatar = u.DisplayAvatar()
		}
	})
	if err != nil {
		return nil, err
	}

	profile := &models.NannyProfile{
		UserID:          user.ID,
		HourlyRate:      float64(f.rng.Intn(30) + 15),
		ExperienceYears: f.rng.Intn(15) + 1,
		Education:       gofakeit.Sentence(4),
		Specializations: f.pickStrings(nannySpecializations, 3),
		Certifications:  models.JSONStringList{"CPR certified"},
		Languages:       f.pickStrings(languages, 2),
		AvailableHours:  "Mon-Fri 8:00-18:00",
	}
	if err := f.db.Create(profile).Error; err != nil {
		return nil, err
	}
	user.NannyProfile = profile
	return user, nil
}

// CreateReaction persists a like/block decision from one user to another.
func (f *Factory) CreateReaction(from, to *models.User, reactionType models.ReactionType) error {
	reaction := &models.UserReaction{
		FromUserID: from.ID,
		ToUserID:   to.ID,
		Type:       reactionType,
	}
	return f.db.Create(reaction).Error
}

// CreateMatch persists a match between two users, normalizing the pair.
func (f *Factory) CreateMatch(a, b *models.User) (*models.Match, error) {
	match := &models.Match{User1ID: a.ID, User2ID: b.ID, Active: true}
	if err := f.db.Create(match).Error; err != nil {
		return nil, err
	}
	return match, nil
}

// CreateMessage constructs and persists a message in the given match.
func (f *Factory) CreateMessage(match *models.Match, sender *models.User, overrides ...func(*models.Message)) (*models.Message, error) {
	message := &models.Message{
		MatchID:    match.ID,
		SenderID:   sender.ID,
		ReceiverID: match.OtherUserID(sender.ID),
		Content:    messageSamples[f.rng.Intn(len(messageSamples))],
	}

	for _, override := range overrides {
		override(message)
	}

	if err := f.db.Create(message).Error; err != nil {
		return nil, err
	}
	return message, nil
}

// CreateBoardPost constructs and persists a classified post by the given author.
func (f *Factory) CreateBoardPost(author *models.User, overrides ...func(*models.BoardPost)) (*models.BoardPost, error) {
	postTypes := []models.BoardPostType{
		models.BoardPostNeedNanny, models.BoardPostCanBabysit,
		models.BoardPostPlaydate, models.BoardPostAdvice,
	}
	from := time.Now().Add(time.Duration(f.rng.Intn(14)) * 24 * time.Hour)
	until := from.Add(time.Duration(f.rng.Intn(6)+2) * time.Hour)

	post := &models.BoardPost{
		AuthorID:    author.ID,
		Type:        postTypes[f.rng.Intn(len(postTypes))],
		Description: gofakeit.Paragraph(1, 2, 8, " "),
		City:        cities[f.rng.Intn(len(cities))],
		District:    districts[f.rng.Intn(len(districts))],
		DateFrom:    &from,
		DateUntil:   &until,
		Status:      models.BoardPostActive,
	}

	// realistic created_at spread
	daysBack := f.rng.Intn(30)
	post.CreatedAt = time.Now().Add(-time.Duration(daysBack)*24*time.Hour - time.Duration(f.rng.Intn(24))*time.Hour)

	for _, override := range overrides {
		override(post)
	}

	if err := f.db.Create(post).Error; err != nil {
		return nil, err
	}
	return post, nil
}

// CreateBoardResponse persists a reply from `responder` on `post`.
func (f *Factory) CreateBoardResponse(post *models.BoardPost, responder *models.User) (*models.BoardResponse, error) {
	response := &models.BoardResponse{
		PostID:      post.ID,
		ResponderID: responder.ID,
		Message:     gofakeit.Sentence(8),
	}
	if err := f.db.Create(response).Error; err != nil {
		return nil, err
	}
	return response, nil
}

// CreateReview persists a review of `nanny` by `author`.
func (f *Factory) CreateReview(nanny, author *models.User) (*models.Review, error) {
	review := &models.Review{
		NannyID:      nanny.ID,
		FromUserID:   author.ID,
		FromUserName: author.Name,
		Rating:       f.rng.Intn(3) + 3, // seeded nannies skew positive
		Comment:      reviewComments[f.rng.Intn(len(reviewComments))],
	}
	if err := f.db.Create(review).Error; err != nil {
		return nil, err
	}
	return review, nil
}

// CreateBooking persists a booking between `client` and `nanny`.
func (f *Factory) CreateBooking(client, nanny *models.User, status models.BookingStatus) (*models.Booking, error) {
	date := time.Now().Add(time.Duration(f.rng.Intn(28)-14) * 24 * time.Hour)
	booking := &models.Booking{
		ClientID: client.ID,
		NannyID:  nanny.ID,
		Date:     date,
		Status:   status,
	}
	if err := f.db.Create(booking).Error; err != nil {
		return nil, err
	}
	return booking, nil
}

func (f *Factory) pickStrings(pool []string, max int) models.JSONStringList {
	n := f.rng.Intn(max) + 1
	picked := models.JSONStringList{}
	seen := map[string]bool{}
	for len(picked) < n {
		s := pool[f.rng.Intn(len(pool))]
		if !seen[s] {
			seen[s] = true
			picked = append(picked, s)
		}
	}
	return picked
}
