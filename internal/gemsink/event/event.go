package event

import (
	"encoding/json"
	"fmt"

	"github.com/secs-tools/gemsink/internal/gemsink/payload"
)

// Event is one SECS/GEM collection-event report payload. Every field is
// optional: equipment firmware revisions disagree about which fields they
// send, so absence is never an error.
type Event struct {
	Stream   *int64 `json:"Stream,omitempty"`
	Function *int64 `json:"Function,omitempty"`
	CEID     ID     `json:"CEID,omitempty"`
	Data     *Data  `json:"DATA,omitempty"`
}

// Data is the report container block of an event.
type Data struct {
	Reports []Report `json:"RPTID_Set,omitempty"`
}

// Report is one report definition's delivered data.
type Report struct {
	RPTID    ID            `json:"RPTID,omitempty"`
	Control  *ControlState `json:"EQP_Control_State_Set,omitempty"`
	Products []Product     `json:"Product_Object_List,omitempty"`
}

// ControlState is the equipment-state block attached to a report.
type ControlState struct {
	EQPID ID `json:"EQPID,omitempty"`
}

// Product is one product/material entry within a report. Any subset of the
// tracking identifiers may be present.
type Product struct {
	LOTID      ID `json:"LOTID,omitempty"`
	CarrierID  ID `json:"CARRIERID,omitempty"`
	JIGID      ID `json:"JIGID,omitempty"`
	MATID      ID `json:"MATID,omitempty"`
	MaterialID ID `json:"MATERIALID,omitempty"`
}

// Decode parses one normalized event document.
func Decode(raw json.RawMessage) (*Event, error) {
	var evt Event
	if err := json.Unmarshal(raw, &evt); err != nil {
		return nil, &payload.ParseError{Err: fmt.Errorf("decode event: %w", err)}
	}
	return &evt, nil
}
