package models

import (
	"time"

	"github.com/google/uuid"
)

// SeedCarnival loads a small Calabar programme so the memory backend is
// usable without a database.
func (m *MemoryRepo) SeedCarnival(now time.Time) {
	year := now.Year()
	day := time.Date(year, time.December, 26, 10, 0, 0, 0, time.UTC)

	events := []*Event{
		{Title: "Carnival Calabar Grand Parade", Category: "parade", Venue: "Millennium Park", Latitude: 4.9757, Longitude: 8.3417, StartTime: day.Add(2 * time.Hour), EndTime: day.Add(10 * time.Hour), Capacity: 50000, IsFeatured: true, IsTrending: true, Tags: []string{"parade", "costume"}},
		{Title: "Children's Carnival", Category: "cultural", Venue: "U.J. Esuene Stadium", Latitude: 4.9589, Longitude: 8.3269, StartTime: day.Add(-72 * time.Hour), EndTime: day.Add(-66 * time.Hour), Capacity: 15000, Tags: []string{"family"}},
		{Title: "Calabar Street Food Festival", Category: "food", Venue: "Marian Road", Latitude: 4.9660, Longitude: 8.3400, StartTime: day.Add(-24 * time.Hour), EndTime: day.Add(-14 * time.Hour), Capacity: 8000, Price: 2000, IsTrending: true, Tags: []string{"food"}},
		{Title: "Carnival Night Concert", Category: "concert", Venue: "Cultural Centre", Latitude: 4.9525, Longitude: 8.3220, StartTime: day.Add(34 * time.Hour), EndTime: day.Add(40 * time.Hour), Capacity: 20000, Price: 5000, IsFeatured: true, Tags: []string{"music"}},
	}
	for _, e := range events {
		e.ID = uuid.New()
		e.CreatedAt, e.UpdatedAt = now, now
		m.PutEvent(e)
	}

	hotels := []*Hotel{
		{
			Name: "Transcorp Hotels Calabar", Address: "Murtala Mohammed Highway, Calabar", Latitude: 4.9813, Longitude: 8.3403,
			PriceMin: 65000, PriceMax: 180000, Rating: 4.6, Amenities: []string{"wifi", "pool", "gym", "restaurant"},
			RoomTypes: []RoomType{
				{Type: "standard", PricePerNight: 65000, Capacity: 2, Available: 20},
				{Type: "deluxe", PricePerNight: 95000, Capacity: 2, Available: 10},
				{Type: "suite", PricePerNight: 180000, Capacity: 4, Available: 3},
			},
		},
		{
			Name: "Channel View Hotel", Address: "Atimbo Road, Calabar", Latitude: 4.9950, Longitude: 8.3560,
			PriceMin: 30000, PriceMax: 55000, Rating: 4.1, Amenities: []string{"wifi", "restaurant"},
			RoomTypes: []RoomType{
				{Type: "standard", PricePerNight: 30000, Capacity: 2, Available: 15},
				{Type: "executive", PricePerNight: 55000, Capacity: 3, Available: 5},
			},
		},
	}
	for _, h := range hotels {
		h.ID = uuid.New()
		h.CreatedAt, h.UpdatedAt = now, now
		m.PutHotel(h)
	}

	for _, name := range []string{"Seagull Band", "Masta Blasta Band", "Bayside Band", "Passion 4 Band", "Freedom Band"} {
		m.PutBand(&Band{ID: uuid.New(), Name: name, Year: year, CreatedAt: now, UpdatedAt: now})
	}
}
