package ponto

import "strings"

// Record is one normalized attendance swipe: identity keys, canonical
// date, duty group (escala) and clock readings. Built once from a raw
// payload row and never mutated; it is discarded when its cache
// partition is invalidated.
type Record struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	NameKey        string `json:"-"`
	RawSerial      string `json:"serial,omitempty"`
	SerialKey      string `json:"-"`
	Email          string `json:"email,omitempty"`
	EmailKey       string `json:"-"`
	ISODate        string `json:"date"`
	Escala         string `json:"escala"`
	EscalaKey      string `json:"-"`
	Modalidade     string `json:"modalidade,omitempty"`
	Entrada        string `json:"entrada,omitempty"`
	Saida          string `json:"saida,omitempty"`
	EntradaMinutes int    `json:"-"` // minutes since midnight, -1 when no entry was recorded
	Synthetic      bool   `json:"scheduled_only,omitempty"`
}

// NoEntry marks a record without a clock-in reading.
const NoEntry = -1

// EscalaKeyAll is the duty-group key covering every escala of a date.
const EscalaKeyAll = "all"

// Key is the de-duplication identity of a record within a date: two
// rows with the same key describe the same person/group swipe and the
// most recent write wins on merge.
func (r Record) Key() string {
	return strings.Join([]string{r.ISODate, r.NameKey, r.SerialKey, r.EmailKey, r.EscalaKey}, "|")
}

// HasEntry reports whether a clock-in time was recorded.
func (r Record) HasEntry() bool {
	return r.EntradaMinutes != NoEntry
}

// Status is the presence verdict for one reconciled row.
type Status string

const (
	StatusPresent Status = "present"
	StatusLate    Status = "late"
	StatusAbsent  Status = "absent"
)

// Row is a Record annotated by the presence classifier.
type Row struct {
	Record
	Status       Status `json:"status"`
	DelayMinutes int    `json:"delay_minutes,omitempty"`
}
