package domain

// ServiceCategory represents a salon service category
type ServiceCategory string

const (
	CategoryFacial   ServiceCategory = "facial"
	CategoryBody     ServiceCategory = "body"
	CategoryManicure ServiceCategory = "manicure"
	CategoryPedicure ServiceCategory = "pedicure"
	CategoryLashes   ServiceCategory = "lashes"
	CategoryWaxing   ServiceCategory = "waxing"
)

// AllCategories lists every known service category
var AllCategories = []ServiceCategory{
	CategoryFacial,
	CategoryBody,
	CategoryManicure,
	CategoryPedicure,
	CategoryLashes,
	CategoryWaxing,
}

// Service represents a bookable salon service, owned by the catalog collaborator
// and immutable from this module's perspective
type Service struct {
	ID              string
	Name            string
	Category        ServiceCategory
	Description     *string
	Price           float64
	DurationMinutes int
	IsActive        bool
}

// IsBookable returns true if the service can be selected in the booking wizard
func (s *Service) IsBookable() bool {
	return s.IsActive && s.DurationMinutes > 0 && s.Price >= 0
}
