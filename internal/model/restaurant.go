package model

// RestaurantRecord is one scraped restaurant in the catalog, keyed by
// BusinessID. Written once by the offline scraper and read-only afterwards.
// Rating and coordinates are exact decimals from the upstream API, carried as
// strings so no float rounding leaks into stored values or rendered emails.
type RestaurantRecord struct {
	BusinessID          string      `json:"businessId" validate:"required"`
	Name                string      `json:"name" validate:"required"`
	Address             string      `json:"address"`
	Coordinates         Coordinates `json:"coordinates"`
	NumberOfReviews     int         `json:"numberOfReviews" validate:"gte=0"`
	Rating              string      `json:"rating"`
	ZipCode             string      `json:"zipCode"`
	InsertedAtTimestamp string      `json:"insertedAtTimestamp"`
}

type Coordinates struct {
	Latitude  string `json:"latitude"`
	Longitude string `json:"longitude"`
}
