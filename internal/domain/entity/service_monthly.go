package entity

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// MonthKey is the only column every ServiceMonthlyCost row is guaranteed to carry.
const MonthKey = "month"

// ServiceAmount is one sparse service column of a monthly row.
type ServiceAmount struct {
	Service string  `json:"service"`
	Cost    float64 `json:"cost"`
}

// ServiceMonthlyCost is a row {month, [service]: cost}. Service columns keep the order in
// which they were first set, like the keys of the JSON object they come from.
type ServiceMonthlyCost struct {
	Month    string
	Services []ServiceAmount
}

// NewServiceMonthlyCost creates an empty row for month.
func NewServiceMonthlyCost(month string) *ServiceMonthlyCost {
	return &ServiceMonthlyCost{Month: month}
}

// Set writes cost into the service column. An existing column is overwritten in place.
func (r *ServiceMonthlyCost) Set(service string, cost float64) {
	for i := range r.Services {
		if r.Services[i].Service == service {
			r.Services[i].Cost = cost
			return
		}
	}
	r.Services = append(r.Services, ServiceAmount{Service: service, Cost: cost})
}

// Get returns the cost of service and whether the column is present.
func (r ServiceMonthlyCost) Get(service string) (float64, bool) {
	for _, s := range r.Services {
		if s.Service == service {
			return s.Cost, true
		}
	}
	return 0, false
}

// UnmarshalJSON reads a flat object. Key order is preserved; numeric strings are parsed.
func (r *ServiceMonthlyCost) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("service monthly cost: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("service monthly cost: expected object, got %v", tok)
	}

	row := ServiceMonthlyCost{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("service monthly cost: %w", err)
		}
		key, _ := keyTok.(string)

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("service monthly cost: value of %q: %w", key, err)
		}

		if key == MonthKey {
			if err := json.Unmarshal(raw, &row.Month); err != nil {
				row.Month = string(bytes.Trim(raw, `"`))
			}
			continue
		}
		row.Set(key, numberFromJSON(raw))
	}

	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("service monthly cost: %w", err)
	}

	*r = row
	return nil
}

// MarshalJSON writes month first, then the service columns in order.
func (r ServiceMonthlyCost) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')

	month, err := json.Marshal(r.Month)
	if err != nil {
		return nil, err
	}
	buf.WriteString(`"` + MonthKey + `":`)
	buf.Write(month)

	for _, s := range r.Services {
		key, err := json.Marshal(s.Service)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(s.Cost)
		if err != nil {
			return nil, err
		}
		buf.WriteByte(',')
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}
