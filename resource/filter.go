package resource

import (
	"net/url"
	"strconv"
)

// Filter holds the list query parameters the catalog understands. Zero values
// are omitted.
type Filter struct {
	CountryID     uint
	HotelTypeID   uint
	HolidayTypeID uint
	PackageID     uint
	IsActive      *bool
	StartDate     string
	EndDate       string
	Query         string
	Skip          int
	Limit         int
}

func (f Filter) Values() url.Values {
	v := url.Values{}
	setID := func(key string, id uint) {
		if id != 0 {
			v.Set(key, strconv.FormatUint(uint64(id), 10))
		}
	}
	setID("country_id", f.CountryID)
	setID("hotel_type_id", f.HotelTypeID)
	setID("holiday_type_id", f.HolidayTypeID)
	setID("package_id", f.PackageID)
	if f.IsActive != nil {
		v.Set("is_active", strconv.FormatBool(*f.IsActive))
	}
	if f.StartDate != "" {
		v.Set("start_date", f.StartDate)
	}
	if f.EndDate != "" {
		v.Set("end_date", f.EndDate)
	}
	if f.Query != "" {
		v.Set("q", f.Query)
	}
	if f.Skip > 0 {
		v.Set("skip", strconv.Itoa(f.Skip))
	}
	if f.Limit > 0 {
		v.Set("limit", strconv.Itoa(f.Limit))
	}
	return v
}

// Encode is the canonical query string; url.Values sorts by key.
func (f Filter) Encode() string {
	return f.Values().Encode()
}
