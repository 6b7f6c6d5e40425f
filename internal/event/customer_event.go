package event

import "time"

type CustomerEventPayload struct {
	CustomerID     int64     `json:"customerId"`
	NationalID     string    `json:"nationalId"`
	Name           string    `json:"name"`
	Income         float64   `json:"income"`
	Liabilities    float64   `json:"liabilities"`
	Age            int       `json:"age"`
	EmploymentType string    `json:"employmentType"`
	CreditHistory  string    `json:"creditHistory"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

type CustomerCreatedEvent struct {
	Timestamp time.Time            `json:"timestamp"`
	Payload   CustomerEventPayload `json:"payload"`
}

type CustomerUpdatedEvent struct {
	Timestamp time.Time            `json:"timestamp"`
	Payload   CustomerEventPayload `json:"payload"`
}
