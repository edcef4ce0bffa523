package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"cinevers-client/internal/dto/request"
	"cinevers-client/internal/dto/response"

	"go.uber.org/zap"
)

// ReportService wraps the back-office sales reporting endpoints.
// Report generation itself is backend-owned.
type ReportService struct {
	c   *Client
	log *zap.Logger
}

func NewReportService(c *Client, log *zap.Logger) *ReportService {
	return &ReportService{
		c:   c,
		log: log.With(zap.String("service", "report")),
	}
}

func (s *ReportService) SalesSummary(ctx context.Context, filter request.ReportFilter) (*response.SalesSummary, error) {
	params := url.Values{}
	if filter.StartDate != "" {
		params.Set("startDate", filter.StartDate)
	}
	if filter.EndDate != "" {
		params.Set("endDate", filter.EndDate)
	}
	if filter.Type != "" {
		params.Set("type", filter.Type)
	}

	path := "/reports/sales"
	if len(params) > 0 {
		path += "?" + params.Encode()
	}

	var summary response.SalesSummary
	if err := s.c.get(ctx, path, &summary); err != nil {
		return nil, fmt.Errorf("get sales summary: %w", err)
	}
	return &summary, nil
}

func (s *ReportService) Generate(ctx context.Context, filter request.ReportFilter) ([]response.SalesLine, error) {
	params := url.Values{}
	if filter.StartDate != "" {
		params.Set("startDate", filter.StartDate)
	}
	if filter.EndDate != "" {
		params.Set("endDate", filter.EndDate)
	}
	if filter.Movie != "" {
		params.Set("movie", filter.Movie)
	}

	path := "/reports/generate"
	if len(params) > 0 {
		path += "?" + params.Encode()
	}

	var lines []response.SalesLine
	if err := s.c.get(ctx, path, &lines); err != nil {
		return nil, fmt.Errorf("generate report: %w", err)
	}
	return lines, nil
}

func (s *ReportService) TopMovies(ctx context.Context, limit int) ([]response.TopMovie, error) {
	if limit <= 0 {
		limit = 10
	}

	var top []response.TopMovie
	if err := s.c.get(ctx, "/reports/top-movies?limit="+strconv.Itoa(limit), &top); err != nil {
		return nil, fmt.Errorf("get top movies: %w", err)
	}
	return top, nil
}
