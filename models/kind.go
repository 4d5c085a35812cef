package models

import "strings"

// Kind names an entity kind. Media rows and relationship tuples store it.
type Kind string

const (
	KindHotel       Kind = "hotel"
	KindAttraction  Kind = "attraction"
	KindGroupTrip   Kind = "group_trip"
	KindPackage     Kind = "package"
	KindHolidayType Kind = "holiday_type"
	KindHotelType   Kind = "hotel_type"
	KindInclusion   Kind = "inclusion"
	KindExclusion   Kind = "exclusion"
	KindUser        Kind = "user"
)

var kindPaths = map[Kind]string{
	KindHotel:       "hotels",
	KindAttraction:  "attractions",
	KindGroupTrip:   "group-trips",
	KindPackage:     "packages",
	KindHolidayType: "holiday-types",
	KindHotelType:   "hotel-types",
	KindInclusion:   "inclusions",
	KindExclusion:   "exclusions",
	KindUser:        "users",
}

// Kinds lists every kind in a stable order.
func Kinds() []Kind {
	return []Kind{
		KindHotel, KindAttraction, KindGroupTrip, KindPackage, KindHolidayType,
		KindHotelType, KindInclusion, KindExclusion, KindUser,
	}
}

// Path is the URL segment of the kind's collection.
func (k Kind) Path() string {
	return kindPaths[k]
}

func (k Kind) Valid() bool {
	_, ok := kindPaths[k]
	return ok
}

// HasCover reports whether entities of this kind carry a cover_image_id.
func (k Kind) HasCover() bool {
	switch k {
	case KindHotel, KindAttraction, KindGroupTrip, KindPackage, KindHolidayType:
		return true
	}
	return false
}

// HasRelationships reports whether the kind owns package and group trip links.
func (k Kind) HasRelationships() bool {
	return k == KindHotel || k == KindAttraction
}

// ParseKind accepts a kind name ("group_trip") or its path ("group-trips").
func ParseKind(s string) (Kind, bool) {
	s = strings.Trim(strings.ToLower(s), "/ ")
	if k := Kind(s); k.Valid() {
		return k, true
	}
	for k, p := range kindPaths {
		if p == s {
			return k, true
		}
	}
	return "", false
}

// New returns a pointer to a zero model of the kind, for use with gorm's Model.
func New(k Kind) any {
	switch k {
	case KindHotel:
		return &Hotel{}
	case KindAttraction:
		return &Attraction{}
	case KindGroupTrip:
		return &GroupTrip{}
	case KindPackage:
		return &Package{}
	case KindHolidayType:
		return &HolidayType{}
	case KindHotelType:
		return &HotelType{}
	case KindInclusion:
		return &Inclusion{}
	case KindExclusion:
		return &Exclusion{}
	case KindUser:
		return &User{}
	}
	return nil
}

// All returns a zero model of every kind plus the join and media tables, in
// migration order.
func All() []any {
	out := make([]any, 0, 11)
	for _, k := range Kinds() {
		out = append(out, New(k))
	}
	return append(out, &Media{}, &Relationship{})
}

// Label is the human readable singular name ("Group trip").
func (k Kind) Label() string {
	s := strings.ReplaceAll(string(k), "_", " ")
	if s == "" {
		return "Entity"
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
