package model

type User struct {
	ID    int64  `json:"id" db:"id"`
	Name  string `json:"name" db:"name"`
	Email string `json:"email" db:"email"`
}

type Item struct {
	ID          int64  `json:"id" db:"id"`
	Name        string `json:"name" db:"name"`
	Description string `json:"description" db:"description"`
	Available   bool   `json:"available" db:"available"`
	OwnerID     int64  `json:"-" db:"owner_id"`
	RequestID   *int64 `json:"requestId,omitempty" db:"request_id"`
}

// Booking is the expanded view returned by the engine: item and booker are
// embedded, never bare foreign keys.
type Booking struct {
	ID     int64    `json:"id" db:"id"`
	Start  DateTime `json:"start" db:"start_date"`
	End    DateTime `json:"end" db:"end_date"`
	Status Status   `json:"status" db:"status"`
	Item   Item     `json:"item" db:"item"`
	Booker User     `json:"booker" db:"booker"`
}

// BookingShort is the projection attached to an owner's item view.
type BookingShort struct {
	ID       int64    `json:"id" db:"id"`
	BookerID int64    `json:"bookerId" db:"booker_id"`
	Start    DateTime `json:"start" db:"start_date"`
	End      DateTime `json:"end" db:"end_date"`
	ItemID   int64    `json:"-" db:"item_id"`
}

type Comment struct {
	ID         int64    `json:"id" db:"id"`
	Text       string   `json:"text" db:"text"`
	AuthorName string   `json:"authorName" db:"author_name"`
	Created    DateTime `json:"created" db:"created"`
	ItemID     int64    `json:"-" db:"item_id"`
}

// ItemView is a read-time projection; lastBooking/nextBooking are computed
// per request and only visible to the item's owner.
type ItemView struct {
	Item
	LastBooking *BookingShort `json:"lastBooking"`
	NextBooking *BookingShort `json:"nextBooking"`
	Comments    []Comment     `json:"comments"`
}

type ItemRequest struct {
	ID          int64    `json:"id" db:"id"`
	Description string   `json:"description" db:"description"`
	RequesterID int64    `json:"-" db:"requester_id"`
	Created     DateTime `json:"created" db:"created"`
}

type ItemRequestView struct {
	ItemRequest
	Items []Item `json:"items"`
}
