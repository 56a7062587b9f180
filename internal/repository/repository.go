package repository

import (
	sq "github.com/Masterminds/squirrel"
)

const (
	usersTable    = `users`
	itemsTable    = `items`
	bookingsTable = `bookings`
	commentsTable = `comments`
	requestsTable = `requests`
)

var qb = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
