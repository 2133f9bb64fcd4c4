// Package ingest moves observation tables into the persistent stores the
// dashboard can serve from.
package ingest

import (
	"context"
	"fmt"

	"github.com/ClickHouse/ch-go"
	"github.com/ClickHouse/ch-go/proto"

	"github.com/Danielmituku/solar-challenge-week0/internal/models"
)

// ObservationBatch holds column data for a native insert
type ObservationBatch struct {
	Timestamp *proto.ColDateTime
	Country   *proto.ColStr
	GHI       *proto.ColFloat64
	DNI       *proto.ColFloat64
	DHI       *proto.ColFloat64
}

// NewObservationBatch allocates empty columns
func NewObservationBatch() *ObservationBatch {
	return &ObservationBatch{
		Timestamp: new(proto.ColDateTime),
		Country:   new(proto.ColStr),
		GHI:       new(proto.ColFloat64),
		DNI:       new(proto.ColFloat64),
		DHI:       new(proto.ColFloat64),
	}
}

func (b *ObservationBatch) Reset() {
	b.Timestamp.Reset()
	b.Country.Reset()
	b.GHI.Reset()
	b.DNI.Reset()
	b.DHI.Reset()
}

func (b *ObservationBatch) Len() int {
	return b.Timestamp.Rows()
}

func (b *ObservationBatch) Input() proto.Input {
	return proto.Input{
		{Name: "ts", Data: b.Timestamp},
		{Name: "country", Data: b.Country},
		{Name: "ghi", Data: b.GHI},
		{Name: "dni", Data: b.DNI},
		{Name: "dhi", Data: b.DHI},
	}
}

// Add appends one observation
func (b *ObservationBatch) Add(o models.Observation) {
	b.Timestamp.Append(o.Timestamp.UTC())
	b.Country.Append(string(o.Country))
	b.GHI.Append(o.GHI)
	b.DNI.Append(o.DNI)
	b.DHI.Append(o.DHI)
}

// Flush inserts the batch into table and resets it
func (b *ObservationBatch) Flush(ctx context.Context, conn *ch.Client, table string) error {
	if b.Len() == 0 {
		return nil
	}

	err := conn.Do(ctx, ch.Query{
		Body:  fmt.Sprintf("INSERT INTO %s (ts, country, ghi, dni, dhi) VALUES", table),
		Input: b.Input(),
	})
	if err != nil {
		return err
	}
	b.Reset()
	return nil
}
