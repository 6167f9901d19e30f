package model

import (
	"fmt"
	"strings"
	"time"
)

type Order struct {
	ID          int64     `json:"id"`
	Ingredients string    `json:"ingredients"`
	NameOnOrder string    `json:"name_on_order"`
	OrderFilled bool      `json:"order_filled"`
	OrderedAt   time.Time `json:"ordered_at"`
}

// NamePolicy decides whether an order may be submitted without a customer name.
type NamePolicy string

const (
	NamePolicyStrict  NamePolicy = "strict"
	NamePolicyLenient NamePolicy = "lenient"
)

func ParseNamePolicy(s string) (NamePolicy, error) {
	switch p := NamePolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case NamePolicyStrict, NamePolicyLenient:
		return p, nil
	default:
		return "", fmt.Errorf("unknown name policy %q (want strict or lenient)", s)
	}
}

// Confirmation is the message shown once the order row is written.
func (o Order) Confirmation() string {
	if o.NameOnOrder == "" {
		return "Your Smoothie is ordered!"
	}
	return fmt.Sprintf("Your Smoothie is ordered, %s!", o.NameOnOrder)
}
