package api

import (
	"context"
	"fmt"
	"net/url"

	"cinevers-client/internal/dto/request"
	"cinevers-client/internal/dto/response"
	"cinevers-client/pkg/utils"

	"go.uber.org/zap"
)

type MovieService struct {
	c   *Client
	log *zap.Logger
}

func NewMovieService(c *Client, log *zap.Logger) *MovieService {
	return &MovieService{
		c:   c,
		log: log.With(zap.String("service", "movie")),
	}
}

// Movies lists the catalog, optionally filtered (public).
func (s *MovieService) Movies(ctx context.Context, filter request.MovieFilter) ([]response.Movie, error) {
	params := url.Values{}
	if filter.Genre != "" {
		params.Set("genre", filter.Genre)
	}
	if filter.Classification != "" {
		params.Set("classification", filter.Classification)
	}
	if filter.Status != "" {
		params.Set("status", filter.Status)
	}

	path := "/movies"
	if len(params) > 0 {
		path += "?" + params.Encode()
	}

	var movies []response.Movie
	if err := s.c.get(ctx, path, &movies); err != nil {
		return nil, fmt.Errorf("get movies: %w", err)
	}
	return movies, nil
}

func (s *MovieService) Movie(ctx context.Context, id string) (*response.Movie, error) {
	if id == "" {
		return nil, fmt.Errorf("movie ID is required")
	}

	var movie response.Movie
	if err := s.c.get(ctx, "/movies/"+id, &movie); err != nil {
		return nil, fmt.Errorf("get movie %s: %w", id, err)
	}
	return &movie, nil
}

// ==================== ADMIN METHODS (gerente only) ====================

func (s *MovieService) Create(ctx context.Context, req *request.MovieRequest) (*response.Movie, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	var movie response.Movie
	if err := s.c.post(ctx, "/movies", req, &movie); err != nil {
		return nil, fmt.Errorf("create movie: %w", err)
	}

	s.log.Info("Movie created", zap.String("movie_id", movie.ID), zap.String("title", movie.Title))
	return &movie, nil
}

func (s *MovieService) Update(ctx context.Context, id string, req *request.MovieUpdateRequest) (*response.Movie, error) {
	if id == "" {
		return nil, fmt.Errorf("movie ID is required")
	}
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	var movie response.Movie
	if err := s.c.put(ctx, "/movies/"+id, req, &movie); err != nil {
		return nil, fmt.Errorf("update movie %s: %w", id, err)
	}
	return &movie, nil
}

func (s *MovieService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("movie ID is required")
	}

	if err := s.c.delete(ctx, "/movies/"+id, nil); err != nil {
		return fmt.Errorf("delete movie %s: %w", id, err)
	}
	return nil
}
