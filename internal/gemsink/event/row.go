package event

// Row is one flattened (report, product) record. Nil fields are stored as
// SQL NULL. Rows carry no identity beyond insertion order and are immutable
// once produced.
type Row struct {
	Stream     *int64  `json:"stream"`
	Function   *int64  `json:"function"`
	CEID       *string `json:"ceid"`
	RPTID      *string `json:"rptid"`
	EQPID      *string `json:"eqpid"`
	LOTID      *string `json:"lotid"`
	CarrierID  *string `json:"carrierid"`
	JIGID      *string `json:"jigid"`
	MATID      *string `json:"matid"`
	MaterialID *string `json:"materialid"`
}

// Args returns the row fields in destination column order for binding.
func (r Row) Args() []any {
	return []any{
		r.Stream, r.Function, r.CEID, r.RPTID, r.EQPID,
		r.LOTID, r.CarrierID, r.JIGID, r.MATID, r.MaterialID,
	}
}
