package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"cinevers-client/internal/dto/request"
	"cinevers-client/internal/dto/response"
	"cinevers-client/pkg/utils"

	"go.uber.org/zap"
)

type RoomService struct {
	c   *Client
	log *zap.Logger
}

func NewRoomService(c *Client, log *zap.Logger) *RoomService {
	return &RoomService{
		c:   c,
		log: log.With(zap.String("service", "room")),
	}
}

func (s *RoomService) Rooms(ctx context.Context, filter request.RoomFilter) ([]response.Room, error) {
	params := url.Values{}
	if filter.Type != "" {
		params.Set("type", filter.Type)
	}
	if filter.Status != "" {
		params.Set("status", filter.Status)
	}
	if filter.Page > 0 {
		params.Set("page", strconv.Itoa(filter.Page))
	}
	if filter.Limit > 0 {
		params.Set("limit", strconv.Itoa(filter.Limit))
	}

	path := "/rooms"
	if len(params) > 0 {
		path += "?" + params.Encode()
	}

	var rooms []response.Room
	if err := s.c.get(ctx, path, &rooms); err != nil {
		return nil, fmt.Errorf("get rooms: %w", err)
	}
	return rooms, nil
}

func (s *RoomService) Room(ctx context.Context, id string) (*response.Room, error) {
	if id == "" {
		return nil, fmt.Errorf("room ID is required")
	}

	var room response.Room
	if err := s.c.get(ctx, "/rooms/"+id, &room); err != nil {
		return nil, fmt.Errorf("get room %s: %w", id, err)
	}
	return &room, nil
}

func (s *RoomService) Create(ctx context.Context, req *request.RoomRequest) (*response.Room, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	var room response.Room
	if err := s.c.post(ctx, "/rooms", req, &room); err != nil {
		return nil, fmt.Errorf("create room: %w", err)
	}

	s.log.Info("Room created", zap.String("room_id", room.ID), zap.String("name", room.Name))
	return &room, nil
}

func (s *RoomService) Update(ctx context.Context, id string, req *request.RoomUpdateRequest) (*response.Room, error) {
	if id == "" {
		return nil, fmt.Errorf("room ID is required")
	}
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	var room response.Room
	if err := s.c.put(ctx, "/rooms/"+id, req, &room); err != nil {
		return nil, fmt.Errorf("update room %s: %w", id, err)
	}
	return &room, nil
}

func (s *RoomService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("room ID is required")
	}

	if err := s.c.delete(ctx, "/rooms/"+id, nil); err != nil {
		return fmt.Errorf("delete room %s: %w", id, err)
	}
	return nil
}

// Reactivate puts an inactive room back in service.
func (s *RoomService) Reactivate(ctx context.Context, id string) (*response.Room, error) {
	if id == "" {
		return nil, fmt.Errorf("room ID is required")
	}

	var room response.Room
	if err := s.c.post(ctx, "/rooms/"+id+"/reactivate", nil, &room); err != nil {
		return nil, fmt.Errorf("reactivate room %s: %w", id, err)
	}
	return &room, nil
}
