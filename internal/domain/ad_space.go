package domain

import (
	"time"

	"gopkg.in/guregu/null.v4"
)

type AvailabilityStatus string

const (
	SpaceAvailable   AvailabilityStatus = "available"
	SpaceBooked      AvailabilityStatus = "booked"
	SpaceUnavailable AvailabilityStatus = "unavailable"
)

type DisplayType string

const (
	DisplayBillboard     DisplayType = "billboard"
	DisplayDigitalScreen DisplayType = "digital_screen"
	DisplayTransit       DisplayType = "transit"
	DisplayAutoRickshaw  DisplayType = "auto_rickshaw"
	DisplayBus           DisplayType = "bus"
	DisplayCab           DisplayType = "cab"
)

// IsMovable reports whether the display type is a roaming unit defined by a
// coverage route instead of fixed coordinates.
func (d DisplayType) IsMovable() bool {
	switch d {
	case DisplayAutoRickshaw, DisplayBus, DisplayCab:
		return true
	}
	return false
}

type Dimensions struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// RouteInfo describes the coverage of a movable ad space: a circle around a
// center point, with an optional paid extension beyond the base radius.
type RouteInfo struct {
	CenterLat            float64 `json:"center_lat"`
	CenterLng            float64 `json:"center_lng"`
	BaseCoverageKm       float64 `json:"base_coverage_km"`
	AdditionalCoverageKm float64 `json:"additional_coverage_km,omitempty"`
	VehicleCount         int     `json:"vehicle_count,omitempty"`
	Description          string  `json:"description,omitempty"`
}

type TrafficData struct {
	TrafficLevel     string   `json:"traffic_level,omitempty"` // "low", "medium", "high"
	NearbyPlaces     int      `json:"nearby_places,omitempty"`
	AvgDailyVisitors int      `json:"avg_daily_visitors,omitempty"`
	PeakHours        []string `json:"peak_hours,omitempty"`
}

type AdSpace struct {
	ID                 int                `json:"id"`
	Title              string             `json:"title"`
	Description        string             `json:"description"`
	CategoryID         null.Int           `json:"category_id"`
	LocationID         null.Int           `json:"location_id"` // null for movable spaces
	PublisherID        null.Int           `json:"publisher_id"`
	DisplayType        DisplayType        `json:"display_type"`
	PricePerDay        float64            `json:"price_per_day"`
	PricePerMonth      null.Float         `json:"price_per_month"`
	DailyImpressions   int                `json:"daily_impressions"`
	MonthlyFootfall    int                `json:"monthly_footfall"`
	Latitude           null.Float         `json:"latitude"`
	Longitude          null.Float         `json:"longitude"`
	AvailabilityStatus AvailabilityStatus `json:"availability_status"`
	Images             []string           `json:"images"`
	Dimensions         *Dimensions        `json:"dimensions,omitempty"`
	TargetAudience     string             `json:"target_audience,omitempty"`
	Route              *RouteInfo         `json:"route,omitempty"`
	TrafficData        *TrafficData       `json:"traffic_data,omitempty"`
	CreatedAt          time.Time          `json:"created_at"`
	UpdatedAt          time.Time          `json:"updated_at"`

	Category  *Category  `json:"category,omitempty"`
	Location  *Location  `json:"location,omitempty"`
	Publisher *Publisher `json:"publisher,omitempty"`
}

type AdSpaceDTO struct {
	Title            string       `json:"title" binding:"required"`
	Description      string       `json:"description" binding:"required"`
	CategoryID       int          `json:"category_id" binding:"required"`
	LocationID       *int         `json:"location_id"`
	PublisherID      *int         `json:"publisher_id"`
	DisplayType      string       `json:"display_type" binding:"required"`
	PricePerDay      float64      `json:"price_per_day" binding:"required,gt=0"`
	PricePerMonth    *float64     `json:"price_per_month"`
	DailyImpressions int          `json:"daily_impressions"`
	MonthlyFootfall  int          `json:"monthly_footfall"`
	Latitude         *float64     `json:"latitude"`
	Longitude        *float64     `json:"longitude"`
	Availability     string       `json:"availability_status"`
	Images           []string     `json:"images"`
	Dimensions       *Dimensions  `json:"dimensions"`
	TargetAudience   string       `json:"target_audience"`
	Route            *RouteInfo   `json:"route"`
	TrafficData      *TrafficData `json:"traffic_data"`
}

// AdSpaceFilterDTO carries the fully resolved filter the repository applies.
// Category precedence (ID list vs parent name vs single name) is resolved by
// the service before this reaches the repository; CategoryIDs is the final
// expanded set.
type AdSpaceFilterDTO struct {
	CategoryIDs        []int
	PublisherIDs       []int
	City               string
	DisplayType        string
	MinPrice           *float64
	MaxPrice           *float64
	MinFootfall        *int
	MaxFootfall        *int
	SearchQuery        string
	AvailabilityStatus string
	Limit              int
}
