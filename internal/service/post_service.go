package service

import (
	"context"
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand"
	"strings"

	"stride/internal/models"
	"stride/internal/repository"
)

// anonymousNouns is the fixed pool of whimsical display names for anonymous
// posts. A random 0-999 suffix is appended; collisions are fine, the name is
// cosmetic and carries no identity.
var anonymousNouns = []string{
	"TrailPup", "SunriseRunner", "GymHero", "DawnStrider", "NightJogger",
	"YogaCat", "LapFish", "SpinFox", "SummitTiger", "RopeRabbit",
	"SquatBear", "PushupOwl", "StretchMonkey", "ZenCrane", "SteadyTurtle",
}

// AnonymousName derives a display name from seed. Deterministic for a given
// seed so tests can pin the output; production callers pass a random seed.
func AnonymousName(seed int64) string {
	r := rand.New(rand.NewSource(seed))
	noun := anonymousNouns[r.Intn(len(anonymousNouns))]
	return fmt.Sprintf("%s%d", noun, r.Intn(1000))
}

// randomSeed draws a seed from the OS entropy pool.
func randomSeed() int64 {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		// Extremely unlikely; a zero seed still produces a valid name.
		return 0
	}
	return int64(binary.LittleEndian.Uint64(b[:]))
}

// PostService handles the anonymous feed.
type PostService struct {
	postRepo repository.PostRepository
	seedFn   func() int64
}

// CreatePostInput carries a new feed entry.
type CreatePostInput struct {
	UserID    uint
	Content   string
	ImageURLs []string
}

// NewPostService returns a new PostService.
func NewPostService(postRepo repository.PostRepository) *PostService {
	return &PostService{
		postRepo: postRepo,
		seedFn:   randomSeed,
	}
}

func (s *PostService) ListPosts(ctx context.Context, limit, offset int) ([]models.Post, error) {
	return s.postRepo.List(ctx, limit, offset)
}

// CreatePost validates the content, assigns a random anonymous display name
// and stores the post. Nothing is written when validation fails.
func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	const maxContentLen = 2000
	const maxImages = 9

	if strings.TrimSpace(in.Content) == "" {
		return nil, models.NewValidationError("Content is required")
	}
	if len(in.Content) > maxContentLen {
		return nil, models.NewValidationError("Content too long (max 2000 characters)")
	}
	if len(in.ImageURLs) > maxImages {
		return nil, models.NewValidationError("Too many images (max 9)")
	}

	images := in.ImageURLs
	if images == nil {
		images = []string{}
	}

	post := &models.Post{
		UserID:        in.UserID,
		Content:       in.Content,
		ImageURLs:     images,
		AnonymousName: AnonymousName(s.seedFn()),
	}

	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// DeletePost removes the post only when userID authored it. Non-owners get
// the same not-found answer as a missing post, so ownership probing reveals
// nothing.
func (s *PostService) DeletePost(ctx context.Context, postID, userID uint) error {
	deleted, err := s.postRepo.DeleteOwned(ctx, postID, userID)
	if err != nil {
		return err
	}
	if !deleted {
		return models.NewNotFoundError("Post", postID)
	}
	return nil
}
