package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/pkrylov/shareit-service/internal/errs"
	"github.com/pkrylov/shareit-service/internal/model"
	"github.com/pkrylov/shareit-service/internal/repository"
)

type RequestService struct {
	log      *zap.Logger
	requests repository.Requests
	items    repository.Items
	users    repository.Users
	now      func() time.Time
}

func NewRequestService(requests repository.Requests, items repository.Items, users repository.Users, log *zap.Logger) *RequestService {
	return &RequestService{
		log:      log,
		requests: requests,
		items:    items,
		users:    users,
		now:      time.Now,
	}
}

func (s *RequestService) Create(ctx context.Context, requesterID int64, req model.CreateRequestRequest) (model.ItemRequest, error) {
	if err := s.checkUser(ctx, requesterID); err != nil {
		return model.ItemRequest{}, err
	}
	return s.requests.Create(ctx, model.ItemRequest{
		Description: req.Description,
		RequesterID: requesterID,
		Created:     model.NewDateTime(s.now()),
	})
}

// ListOwn returns the caller's own requests, newest first.
func (s *RequestService) ListOwn(ctx context.Context, requesterID int64, from, size int) ([]model.ItemRequestView, error) {
	if err := s.checkUser(ctx, requesterID); err != nil {
		return nil, err
	}
	requests, err := s.requests.ListByRequester(ctx, requesterID, from, size)
	if err != nil {
		return nil, err
	}
	return s.attachItems(ctx, requests)
}

// ListOthers returns everyone else's requests, for browsing what to offer.
func (s *RequestService) ListOthers(ctx context.Context, requesterID int64, from, size int) ([]model.ItemRequestView, error) {
	if err := s.checkUser(ctx, requesterID); err != nil {
		return nil, err
	}
	requests, err := s.requests.ListOthers(ctx, requesterID, from, size)
	if err != nil {
		return nil, err
	}
	return s.attachItems(ctx, requests)
}

func (s *RequestService) GetByID(ctx context.Context, userID, requestID int64) (model.ItemRequestView, error) {
	if err := s.checkUser(ctx, userID); err != nil {
		return model.ItemRequestView{}, err
	}
	request, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		return model.ItemRequestView{}, err
	}
	views, err := s.attachItems(ctx, []model.ItemRequest{request})
	if err != nil {
		return model.ItemRequestView{}, err
	}
	return views[0], nil
}

func (s *RequestService) checkUser(ctx context.Context, userID int64) error {
	ok, err := s.users.Exists(ctx, userID)
	if err != nil {
		return err
	}
	if !ok {
		return errs.ErrUserNotFound
	}
	return nil
}

// attachItems resolves the items offered against each request in one query.
func (s *RequestService) attachItems(ctx context.Context, requests []model.ItemRequest) ([]model.ItemRequestView, error) {
	ids := make([]int64, 0, len(requests))
	for _, r := range requests {
		ids = append(ids, r.ID)
	}
	items, err := s.items.ListByRequestIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byRequest := make(map[int64][]model.Item, len(requests))
	for _, item := range items {
		if item.RequestID == nil {
			continue
		}
		byRequest[*item.RequestID] = append(byRequest[*item.RequestID], item)
	}
	views := make([]model.ItemRequestView, 0, len(requests))
	for _, r := range requests {
		view := model.ItemRequestView{ItemRequest: r, Items: byRequest[r.ID]}
		if view.Items == nil {
			view.Items = []model.Item{}
		}
		views = append(views, view)
	}
	return views, nil
}
