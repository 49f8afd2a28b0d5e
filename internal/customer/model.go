package customer

type Customer struct {
	ID        int64  `json:"customerId"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone,omitempty"`
	Address   string `json:"address,omitempty"`
}

// Input carries the fields for Create and Update. A nil required field
// reaches the store as NULL and is rejected there; a nil phone or address
// clears it.
type Input struct {
	Email     *string `json:"email"`
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Phone     *string `json:"phone,omitempty"`
	Address   *string `json:"address,omitempty"`
}
