package event

// Flatten produces one row per (report, product) pair, in report order then
// product order. A report with an empty or missing product list still yields
// exactly one row with all product fields nil; reports are never dropped.
// The event's shared fields are repeated verbatim on every row, since the
// destination is a denormalized flat table.
//
// Flatten is a pure function of its input and performs no I/O.
func Flatten(evt *Event) []Row {
	var rows []Row
	if evt == nil || evt.Data == nil {
		return rows
	}
	for _, rpt := range evt.Data.Reports {
		base := Row{
			Stream:   evt.Stream,
			Function: evt.Function,
			CEID:     evt.CEID.Ptr(),
			RPTID:    rpt.RPTID.Ptr(),
		}
		if rpt.Control != nil {
			base.EQPID = rpt.Control.EQPID.Ptr()
		}
		if len(rpt.Products) == 0 {
			rows = append(rows, base)
			continue
		}
		for _, p := range rpt.Products {
			row := base
			row.LOTID = p.LOTID.Ptr()
			row.CarrierID = p.CarrierID.Ptr()
			row.JIGID = p.JIGID.Ptr()
			row.MATID = p.MATID.Ptr()
			row.MaterialID = p.MaterialID.Ptr()
			rows = append(rows, row)
		}
	}
	return rows
}
