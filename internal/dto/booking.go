package dto

import (
	"time"

	"github.com/joshua-takyi/carnivalxperience/internal/models"
)

type CreateBookingRequest struct {
	HotelID         string `json:"hotelId" binding:"required"`
	CheckIn         string `json:"checkIn" binding:"required"`
	CheckOut        string `json:"checkOut" binding:"required"`
	Rooms           int    `json:"rooms"`
	Guests          int    `json:"guests"`
	RoomType        string `json:"roomType"`
	GuestName       string `json:"guestName" binding:"required"`
	GuestEmail      string `json:"guestEmail" binding:"required,email"`
	GuestPhone      string `json:"guestPhone"`
	SpecialRequests string `json:"specialRequests"`
}

type BookingResponse struct {
	ID               string     `json:"id"`
	HotelID          string     `json:"hotelId"`
	BookingReference string     `json:"bookingReference"`
	CheckIn          string     `json:"checkIn"`
	CheckOut         string     `json:"checkOut"`
	Nights           int        `json:"nights"`
	Rooms            int        `json:"rooms"`
	Guests           int        `json:"guests"`
	RoomType         string     `json:"roomType"`
	RatePerNight     float64    `json:"ratePerNight"`
	TotalAmount      float64    `json:"totalAmount"`
	Currency         string     `json:"currency"`
	GuestName        string     `json:"guestName"`
	GuestEmail       string     `json:"guestEmail"`
	GuestPhone       string     `json:"guestPhone"`
	SpecialRequests  string     `json:"specialRequests"`
	Status           string     `json:"status"`
	PaymentStatus    string     `json:"paymentStatus"`
	PaidAt           *time.Time `json:"paidAt"`
	CreatedAt        time.Time  `json:"createdAt"`
	PaymentURL       string     `json:"paymentUrl,omitempty"`
}

func ToBookingResponse(b *models.HotelBooking) BookingResponse {
	return BookingResponse{
		ID:               b.ID.String(),
		HotelID:          b.HotelID.String(),
		BookingReference: b.BookingReference,
		CheckIn:          b.CheckIn,
		CheckOut:         b.CheckOut,
		Nights:           b.Nights,
		Rooms:            b.Rooms,
		Guests:           b.Guests,
		RoomType:         b.RoomType,
		RatePerNight:     b.RatePerNight,
		TotalAmount:      b.TotalAmount,
		Currency:         b.Currency,
		GuestName:        b.GuestName,
		GuestEmail:       b.GuestEmail,
		GuestPhone:       b.GuestPhone,
		SpecialRequests:  b.SpecialRequests,
		Status:           string(b.Status),
		PaymentStatus:    string(b.PaymentStatus),
		PaidAt:           b.PaidAt,
		CreatedAt:        b.CreatedAt,
	}
}
