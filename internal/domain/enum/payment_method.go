package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// PaymentMethod represents how an invoice was settled
type PaymentMethod int

const (
	PaymentMethodPending  PaymentMethod = 0
	PaymentMethodCash     PaymentMethod = 1
	PaymentMethodTransfer PaymentMethod = 2
	PaymentMethodCheck    PaymentMethod = 3
)

func (m PaymentMethod) String() string {
	names := [...]string{"Pending", "Cash", "Transfer", "Check"}
	if int(m) < 0 || int(m) >= len(names) {
		return "Pending"
	}
	return names[m]
}

func (m PaymentMethod) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

func (m *PaymentMethod) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*m = PaymentMethod(i)
		return nil
	}
	switch str {
	case "Pending":
		*m = PaymentMethodPending
	case "Cash":
		*m = PaymentMethodCash
	case "Transfer":
		*m = PaymentMethodTransfer
	case "Check":
		*m = PaymentMethodCheck
	}
	return nil
}

func (m PaymentMethod) Value() (driver.Value, error) {
	return int64(m), nil
}

func (m *PaymentMethod) Scan(value interface{}) error {
	if value == nil {
		*m = PaymentMethodPending
		return nil
	}
	switch v := value.(type) {
	case int64:
		*m = PaymentMethod(v)
	case int:
		*m = PaymentMethod(v)
	}
	return nil
}
