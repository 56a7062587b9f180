package handler

import (
	"context"

	"github.com/pkrylov/shareit-service/internal/model"
	"github.com/pkrylov/shareit-service/internal/service"
)

//go:generate go run github.com/golang/mock/mockgen -source=service.go -destination=mocks/mock.go

type BookingService interface {
	Create(ctx context.Context, bookerID int64, req model.CreateBookingRequest) (model.Booking, error)
	SetApproval(ctx context.Context, ownerID, bookingID int64, approved bool) (model.Booking, error)
	Get(ctx context.Context, userID, bookingID int64) (model.Booking, error)
	ListByBooker(ctx context.Context, bookerID int64, state string, from, size int) ([]model.Booking, error)
	ListByOwner(ctx context.Context, ownerID int64, state string, from, size int) ([]model.Booking, error)
}

type ItemService interface {
	Create(ctx context.Context, ownerID int64, req model.CreateItemRequest) (model.Item, error)
	Update(ctx context.Context, ownerID, itemID int64, req model.UpdateItemRequest) (model.Item, error)
	Delete(ctx context.Context, itemID int64) error
	GetByID(ctx context.Context, viewerID, itemID int64) (model.ItemView, error)
	ListByOwner(ctx context.Context, ownerID int64, from, size int) ([]model.ItemView, error)
	Search(ctx context.Context, text string, from, size int) ([]model.Item, error)
	AddComment(ctx context.Context, authorID, itemID int64, text string) (model.Comment, error)
}

type UserService interface {
	Create(ctx context.Context, req model.CreateUserRequest) (model.User, error)
	Update(ctx context.Context, userID int64, req model.UpdateUserRequest) (model.User, error)
	Delete(ctx context.Context, userID int64) error
	GetByID(ctx context.Context, userID int64) (model.User, error)
	List(ctx context.Context) ([]model.User, error)
}

type RequestService interface {
	Create(ctx context.Context, requesterID int64, req model.CreateRequestRequest) (model.ItemRequest, error)
	ListOwn(ctx context.Context, requesterID int64, from, size int) ([]model.ItemRequestView, error)
	ListOthers(ctx context.Context, requesterID int64, from, size int) ([]model.ItemRequestView, error)
	GetByID(ctx context.Context, userID, requestID int64) (model.ItemRequestView, error)
}

var (
	_ BookingService = (*service.BookingService)(nil)
	_ ItemService    = (*service.ItemService)(nil)
	_ UserService    = (*service.UserService)(nil)
	_ RequestService = (*service.RequestService)(nil)
)
