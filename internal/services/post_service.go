package services

import (
	"context"
	"fmt"

	"github.com/rdityo/nearbox/internal/models"
)

type PostService struct {
	postRepo models.PostRepo
}

func NewPostService(postRepo models.PostRepo) *PostService {
	return &PostService{
		postRepo: postRepo,
	}
}

// PostInput is the caller-supplied part of a new listing; everything else is
// snapshotted from the owner.
type PostInput struct {
	Title       string           `json:"title"`
	Description string           `json:"description"`
	MainPicture *models.Picture  `json:"main_picture"`
	Pictures    []models.Picture `json:"pictures"`
	Qty         int              `json:"qty"`
	Price       float64          `json:"price"`
}

// CreatePost builds a listing owned by the given user, denormalizing the
// owner's fields and location as they stand right now.
func (ps *PostService) CreatePost(ctx context.Context, owner *models.User, input PostInput) (*models.Post, error) {
	post := &models.Post{
		Title:       input.Title,
		Description: input.Description,
		Pictures:    input.Pictures,
		Qty:         input.Qty,
		Price:       input.Price,
	}
	if input.MainPicture != nil {
		post.MainPicture = *input.MainPicture
	}
	post.Snapshot(owner)

	if err := models.Validate.Struct(post); err != nil {
		return nil, err
	}

	return ps.postRepo.CreatePost(ctx, post)
}

// NearbyPosts runs the proximity search from the caller's stored location.
func (ps *PostService) NearbyPosts(ctx context.Context, near models.GeoPoint, minDist, maxDist float64, skip int64) ([]*models.NearbyPost, error) {
	if maxDist < minDist {
		return nil, models.NewFieldError("Maximum distance must not be less than minimum distance.")
	}
	if skip < 0 {
		skip = 0
	}

	q := models.NearbyQuery{
		Near:        near,
		MinDistance: minDist,
		MaxDistance: maxDist,
		Skip:        skip,
	}
	posts, err := ps.postRepo.NearbyPosts(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("nearby post query failed: %w", err)
	}
	return posts, nil
}
