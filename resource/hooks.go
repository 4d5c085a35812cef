package resource

import (
	"travelcms/client"
	"travelcms/models"
)

// Hooks wires one resource per entity kind over a single client and cache.
type Hooks struct {
	Cache *QueryCache

	Hotels       *Linked[models.Hotel]
	Attractions  *Linked[models.Attraction]
	GroupTrips   *Resource[models.GroupTrip]
	Packages     *Resource[models.Package]
	HolidayTypes *Resource[models.HolidayType]
	HotelTypes   *Resource[models.HotelType]
	Inclusions   *Resource[models.Inclusion]
	Exclusions   *Resource[models.Exclusion]
	Users        *Resource[models.User]
}

func NewHooks(c *client.Client) *Hooks {
	cache := NewQueryCache()
	cfg := func(kind models.Kind) Config {
		return Config{Kind: kind, Cache: cache}
	}
	return &Hooks{
		Cache:        cache,
		Hotels:       NewLinked[models.Hotel](c, cfg(models.KindHotel)),
		Attractions:  NewLinked[models.Attraction](c, cfg(models.KindAttraction)),
		GroupTrips:   New[models.GroupTrip](c, cfg(models.KindGroupTrip)),
		Packages:     New[models.Package](c, cfg(models.KindPackage)),
		HolidayTypes: New[models.HolidayType](c, cfg(models.KindHolidayType)),
		HotelTypes:   New[models.HotelType](c, cfg(models.KindHotelType)),
		Inclusions:   New[models.Inclusion](c, cfg(models.KindInclusion)),
		Exclusions:   New[models.Exclusion](c, cfg(models.KindExclusion)),
		Users:        New[models.User](c, cfg(models.KindUser)),
	}
}

// InvalidateEntity marks the cached lists, detail and slug lookups of one
// entity stale. Writes made outside the resources, such as gallery cover
// changes, report through it.
func (h *Hooks) InvalidateEntity(kind models.Kind, id uint) {
	invalidateEntity(h.Cache, kind, id)
}
