package service

import (
	"context"
	"strings"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/pkrylov/shareit-service/internal/errs"
	"github.com/pkrylov/shareit-service/internal/model"
	"github.com/pkrylov/shareit-service/internal/repository"
)

type ItemService struct {
	log      *zap.Logger
	items    repository.Items
	users    repository.Users
	bookings repository.Bookings
	requests repository.Requests
	now      func() time.Time
}

func NewItemService(items repository.Items, users repository.Users, bookings repository.Bookings, requests repository.Requests, log *zap.Logger) *ItemService {
	return &ItemService{
		log:      log,
		items:    items,
		users:    users,
		bookings: bookings,
		requests: requests,
		now:      time.Now,
	}
}

func (s *ItemService) Create(ctx context.Context, ownerID int64, req model.CreateItemRequest) (model.Item, error) {
	ok, err := s.users.Exists(ctx, ownerID)
	if err != nil {
		return model.Item{}, err
	}
	if !ok {
		return model.Item{}, errs.ErrUserNotFound
	}
	if req.RequestID != nil {
		if _, err := s.requests.GetByID(ctx, *req.RequestID); err != nil {
			return model.Item{}, err
		}
	}
	return s.items.Create(ctx, model.Item{
		Name:        req.Name,
		Description: req.Description,
		Available:   *req.Available,
		OwnerID:     ownerID,
		RequestID:   req.RequestID,
	})
}

func (s *ItemService) Update(ctx context.Context, ownerID, itemID int64, req model.UpdateItemRequest) (model.Item, error) {
	ok, err := s.users.Exists(ctx, ownerID)
	if err != nil {
		return model.Item{}, err
	}
	if !ok {
		return model.Item{}, errs.ErrUserNotFound
	}
	item, err := s.items.GetByID(ctx, itemID)
	if err != nil {
		return model.Item{}, err
	}
	if item.OwnerID != ownerID {
		return model.Item{}, errors.Wrapf(errs.ErrItemNotFound, "item %d does not belong to user %d", itemID, ownerID)
	}
	if req.Name != nil {
		item.Name = *req.Name
	}
	if req.Description != nil {
		item.Description = *req.Description
	}
	if req.Available != nil {
		item.Available = *req.Available
	}
	return s.items.Update(ctx, item)
}

func (s *ItemService) Delete(ctx context.Context, itemID int64) error {
	return s.items.Delete(ctx, itemID)
}

// GetByID projects last/next approved bookings for the owner only;
// other viewers get bare item data plus comments.
func (s *ItemService) GetByID(ctx context.Context, viewerID, itemID int64) (model.ItemView, error) {
	item, err := s.items.GetByID(ctx, itemID)
	if err != nil {
		return model.ItemView{}, err
	}
	ok, err := s.users.Exists(ctx, viewerID)
	if err != nil {
		return model.ItemView{}, err
	}
	if !ok {
		return model.ItemView{}, errs.ErrUserNotFound
	}

	view := model.ItemView{Item: item, Comments: []model.Comment{}}
	if item.OwnerID == viewerID {
		now := s.now()
		if view.LastBooking, err = s.bookings.LastForItem(ctx, item.ID, now); err != nil {
			return model.ItemView{}, err
		}
		if view.NextBooking, err = s.bookings.NextForItem(ctx, item.ID, now); err != nil {
			return model.ItemView{}, err
		}
	}
	comments, err := s.items.CommentsForItem(ctx, item.ID)
	if err != nil {
		return model.ItemView{}, err
	}
	view.Comments = comments
	return view, nil
}

// ListByOwner fetches the owner's bookings and comments in two batch scans
// and partitions them by item in memory, instead of querying per item.
func (s *ItemService) ListByOwner(ctx context.Context, ownerID int64, from, size int) ([]model.ItemView, error) {
	ok, err := s.users.Exists(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errs.ErrUserNotFound
	}
	items, err := s.items.ListByOwner(ctx, ownerID, from, size)
	if err != nil {
		return nil, err
	}

	var (
		bookings []model.BookingShort
		comments []model.Comment
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		bookings, err = s.bookings.ApprovedForOwner(gctx, ownerID)
		return err
	})
	g.Go(func() error {
		var err error
		comments, err = s.items.CommentsForOwner(gctx, ownerID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	now := s.now()
	views := make([]model.ItemView, 0, len(items))
	for _, item := range items {
		view := model.ItemView{Item: item, Comments: []model.Comment{}}
		// bookings come ordered ascending by start: the last match before
		// now is lastBooking, the first match after now is nextBooking.
		for i := range bookings {
			b := bookings[i]
			if b.ItemID != item.ID {
				continue
			}
			switch {
			case b.Start.Time.Before(now):
				view.LastBooking = &bookings[i]
			case view.NextBooking == nil && b.Start.Time.After(now):
				view.NextBooking = &bookings[i]
			}
		}
		for _, c := range comments {
			if c.ItemID == item.ID {
				view.Comments = append(view.Comments, c)
			}
		}
		views = append(views, view)
	}
	return views, nil
}

// Search returns nothing for blank text rather than everything.
func (s *ItemService) Search(ctx context.Context, text string, from, size int) ([]model.Item, error) {
	if strings.TrimSpace(text) == "" {
		return []model.Item{}, nil
	}
	return s.items.Search(ctx, text, from, size)
}

// AddComment admits only authors with a completed booking on the item,
// whatever its status.
func (s *ItemService) AddComment(ctx context.Context, authorID, itemID int64, text string) (model.Comment, error) {
	if strings.TrimSpace(text) == "" {
		return model.Comment{}, errors.Wrap(errs.ErrValidation, "empty comment")
	}
	author, err := s.users.GetByID(ctx, authorID)
	if err != nil {
		return model.Comment{}, err
	}
	item, err := s.items.GetByID(ctx, itemID)
	if err != nil {
		return model.Comment{}, err
	}
	completed, err := s.bookings.HasCompleted(ctx, author.ID, item.ID, s.now())
	if err != nil {
		return model.Comment{}, err
	}
	if !completed {
		return model.Comment{}, errors.Wrapf(errs.ErrInvalidState, "user %d has not completed a booking for item %d", authorID, itemID)
	}
	return s.items.CreateComment(ctx, model.Comment{
		Text:       text,
		AuthorName: author.Name,
		Created:    model.NewDateTime(s.now()),
		ItemID:     item.ID,
	}, author.ID)
}
