// Package seed holds the static sample data the record store starts from.
// Every accessor returns fresh copies so callers can never mutate the originals.
package seed

import (
	"echocity/models"
	"time"
)

// Data is the initial content handed to a record store at construction
type Data struct {
	Categories []models.Category
	Profiles   []models.Profile
	Complaints []models.Complaint
}

// Default returns the sample data shipped with EchoCity
func Default() Data {
	return Data{
		Categories: Categories(),
		Profiles:   Profiles(),
		Complaints: Complaints(),
	}
}

// Clone returns a deep copy of d
func (d Data) Clone() Data {
	out := Data{
		Categories: append([]models.Category(nil), d.Categories...),
		Profiles:   append([]models.Profile(nil), d.Profiles...),
		Complaints: make([]models.Complaint, 0, len(d.Complaints)),
	}
	for _, c := range d.Complaints {
		out.Complaints = append(out.Complaints, copyComplaint(c))
	}
	return out
}

// Categories returns the fixed complaint taxonomy
func Categories() []models.Category {
	return []models.Category{
		{ID: "1", Name: "Roads & Infrastructure", Icon: "construction", Color: "#ef4444"},
		{ID: "2", Name: "Water Supply", Icon: "droplet", Color: "#3b82f6"},
		{ID: "3", Name: "Electricity", Icon: "zap", Color: "#eab308"},
		{ID: "4", Name: "Waste Management", Icon: "trash-2", Color: "#22c55e"},
		{ID: "5", Name: "Public Safety", Icon: "shield-alert", Color: "#f97316"},
		{ID: "6", Name: "Street Lights", Icon: "lightbulb", Color: "#a855f7"},
		{ID: "7", Name: "Parks & Recreation", Icon: "trees", Color: "#10b981"},
		{ID: "8", Name: "Traffic & Parking", Icon: "traffic-cone", Color: "#ec4899"},
	}
}

// Profiles returns the pre-registered accounts, including the single admin
func Profiles() []models.Profile {
	return []models.Profile{
		{ID: "1", Email: "admin@echocity.com", FullName: "Admin User", Role: models.RoleAdmin},
		{ID: "2", Email: "john@example.com", FullName: "John Doe", Role: models.RoleCitizen},
		{ID: "3", Email: "jane@example.com", FullName: "Jane Smith", Role: models.RoleCitizen},
		{ID: "4", Email: "bob@example.com", FullName: "Bob Johnson", Role: models.RoleCitizen},
	}
}

// Complaints returns the sample complaints in stored (oldest-appended-first) order
func Complaints() []models.Complaint {
	return []models.Complaint{
		{
			ID:          "1",
			UserID:      "2",
			CategoryID:  "1",
			Title:       "Large pothole on Main Street",
			Description: "There is a dangerous pothole near the intersection of Main St and 5th Avenue that needs immediate attention.",
			Latitude:    float(40.7128),
			Longitude:   float(-74.0060),
			Status:      models.StatusPending,
			CreatedAt:   at("2025-10-20T10:30:00Z"),
		},
		{
			ID:          "2",
			UserID:      "3",
			CategoryID:  "6",
			Title:       "Street light not working",
			Description: "The street light outside 123 Oak Avenue has been out for three days.",
			Latitude:    float(40.7580),
			Longitude:   float(-73.9855),
			Status:      models.StatusInProgress,
			CreatedAt:   at("2025-10-19T14:20:00Z"),
		},
		{
			ID:          "3",
			UserID:      "4",
			CategoryID:  "4",
			Title:       "Overflowing trash bins",
			Description: "Multiple trash bins at Central Park entrance are overflowing and attracting pests.",
			Latitude:    float(40.7829),
			Longitude:   float(-73.9654),
			Status:      models.StatusResolved,
			CreatedAt:   at("2025-10-18T09:15:00Z"),
		},
		{
			ID:          "4",
			UserID:      "2",
			CategoryID:  "2",
			Title:       "Water leak on Elm Street",
			Description: "Continuous water leak from underground pipe causing street flooding.",
			Latitude:    float(40.7489),
			Longitude:   float(-73.9680),
			Status:      models.StatusInProgress,
			CreatedAt:   at("2025-10-21T11:45:00Z"),
		},
		{
			ID:          "5",
			UserID:      "3",
			CategoryID:  "3",
			Title:       "Power outage in residential area",
			Description: "Frequent power outages in the downtown residential district affecting 20+ homes.",
			Latitude:    float(40.7614),
			Longitude:   float(-73.9776),
			Status:      models.StatusPending,
			CreatedAt:   at("2025-10-22T08:00:00Z"),
		},
		{
			ID:          "6",
			UserID:      "4",
			CategoryID:  "8",
			Title:       "Broken traffic signal",
			Description: "Traffic signal at Broadway and 42nd is stuck on red, causing major delays.",
			Latitude:    float(40.7590),
			Longitude:   float(-73.9845),
			Status:      models.StatusPending,
			CreatedAt:   at("2025-10-22T13:30:00Z"),
		},
	}
}

func copyComplaint(c models.Complaint) models.Complaint {
	if c.Latitude != nil {
		c.Latitude = float(*c.Latitude)
	}
	if c.Longitude != nil {
		c.Longitude = float(*c.Longitude)
	}
	if c.Profile != nil {
		p := *c.Profile
		c.Profile = &p
	}
	if c.Category != nil {
		cat := *c.Category
		c.Category = &cat
	}
	return c
}

func float(v float64) *float64 {
	return &v
}

func at(value string) time.Time {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		panic("seed: bad timestamp " + value)
	}
	return t
}
