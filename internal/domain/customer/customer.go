package customer

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type EmploymentType string

const (
	EmploymentPermanentContract EmploymentType = "permanent-contract"
	EmploymentTaskContract      EmploymentType = "task-contract"
	EmploymentBusinessContract  EmploymentType = "business-contract"
)

type CreditHistory string

const (
	CreditHistoryGood    CreditHistory = "good"
	CreditHistoryAverage CreditHistory = "average"
	CreditHistoryPoor    CreditHistory = "poor"
	CreditHistoryNone    CreditHistory = "none"
)

var (
	EmploymentTypes = []EmploymentType{EmploymentPermanentContract, EmploymentTaskContract, EmploymentBusinessContract}
	CreditHistories = []CreditHistory{CreditHistoryGood, CreditHistoryAverage, CreditHistoryPoor, CreditHistoryNone}
)

// Categories reports which labels the scoring model can encode. The default set
// is the built-in list above; a configured encoding may extend or replace it.
type Categories interface {
	KnowsEmploymentType(label string) bool
	KnowsCreditHistory(label string) bool
}

type builtinCategories struct{}

func (builtinCategories) KnowsEmploymentType(label string) bool {
	return EmploymentType(label).Valid()
}

func (builtinCategories) KnowsCreditHistory(label string) bool {
	return CreditHistory(label).Valid()
}

func (e EmploymentType) Valid() bool {
	for _, v := range EmploymentTypes {
		if e == v {
			return true
		}
	}
	return false
}

func (c CreditHistory) Valid() bool {
	for _, v := range CreditHistories {
		if c == v {
			return true
		}
	}
	return false
}

// Customer is one row of the customers table. NationalID is the natural key;
// ID is assigned by the store and never edited.
type Customer struct {
	ID             int64          `json:"id"`
	Name           string         `json:"name"`
	NationalID     string         `json:"nationalId"`
	Income         float64        `json:"income"`
	Liabilities    float64        `json:"liabilities"`
	Age            int            `json:"age"`
	EmploymentType EmploymentType `json:"employmentType"`
	CreditHistory  CreditHistory  `json:"creditHistory"`
	CreatedAt      time.Time      `json:"createdAt"`
	UpdatedAt      time.Time      `json:"updatedAt"`
}

// Details is the replaceable part of a record.
type Details struct {
	Name           string
	Income         float64
	Liabilities    float64
	Age            int
	EmploymentType EmploymentType
	CreditHistory  CreditHistory
}

type NewCustomerInput struct {
	NationalID string
	Details
}

type SearchCriteria struct {
	NationalID  string
	NamePattern string
}

func (c SearchCriteria) Normalize() SearchCriteria {
	return SearchCriteria{
		NationalID:  strings.TrimSpace(c.NationalID),
		NamePattern: strings.TrimSpace(c.NamePattern),
	}
}

func (c SearchCriteria) IsEmpty() bool {
	n := c.Normalize()
	return n.NationalID == "" && n.NamePattern == ""
}

func NewCustomer(input NewCustomerInput) *Customer {
	c := &Customer{NationalID: strings.TrimSpace(input.NationalID)}
	c.Apply(input.Details)
	c.CreatedAt = c.UpdatedAt
	return c
}

func (c *Customer) Apply(d Details) {
	c.Name = strings.TrimSpace(d.Name)
	c.Income = d.Income
	c.Liabilities = d.Liabilities
	c.Age = d.Age
	c.EmploymentType = d.EmploymentType
	c.CreditHistory = d.CreditHistory
	c.UpdatedAt = time.Now()
}

func (c *Customer) Details() Details {
	return Details{
		Name:           c.Name,
		Income:         c.Income,
		Liabilities:    c.Liabilities,
		Age:            c.Age,
		EmploymentType: c.EmploymentType,
		CreditHistory:  c.CreditHistory,
	}
}

// Snapshot renders the record as the plain-text block stored with audit exports.
func (c *Customer) Snapshot() string {
	var b strings.Builder
	fmt.Fprintf(&b, "id: %d\n", c.ID)
	fmt.Fprintf(&b, "name: %s\n", c.Name)
	fmt.Fprintf(&b, "nationalId: %s\n", c.NationalID)
	fmt.Fprintf(&b, "income: %s\n", decimal.NewFromFloat(c.Income).StringFixed(2))
	fmt.Fprintf(&b, "liabilities: %s\n", decimal.NewFromFloat(c.Liabilities).StringFixed(2))
	fmt.Fprintf(&b, "age: %d\n", c.Age)
	fmt.Fprintf(&b, "employmentType: %s\n", c.EmploymentType)
	fmt.Fprintf(&b, "creditHistory: %s\n", c.CreditHistory)
	return b.String()
}
