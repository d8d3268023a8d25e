package domain

type Email struct {
	To       string
	ToName   string
	Subject  string
	HTMLBody string
	TextBody string
}

// Delivery is the outcome of one send attempt as reported to callers.
type Delivery struct {
	ID     string `json:"id,omitempty"`
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

const (
	DeliverySent   = "sent"
	DeliveryFailed = "failed"
)
