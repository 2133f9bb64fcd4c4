package ingest

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/pkg/errors"

	"github.com/Danielmituku/solar-challenge-week0/internal/models"
)

func sampleObservations() []models.Observation {
	base := time.Date(2021, 8, 9, 12, 0, 0, 0, time.UTC)
	return []models.Observation{
		{Timestamp: base, Country: models.CountryBenin, GHI: 500, DNI: 300, DHI: 100},
		{Timestamp: base.Add(time.Minute), Country: models.CountryBenin, GHI: math.NaN(), DNI: 1, DHI: 2},
		{Timestamp: base, Country: models.CountryTogo, GHI: 450, DNI: 280, DHI: 90},
	}
}

func TestObservationBatch(t *testing.T) {
	b := NewObservationBatch()
	for _, o := range sampleObservations() {
		b.Add(o)
	}

	if b.Len() != 3 {
		t.Fatalf("Len = %d, want 3", b.Len())
	}
	if b.Country.Rows() != 3 || b.GHI.Rows() != 3 || b.DHI.Rows() != 3 {
		t.Error("columns out of step")
	}
	if got := b.Country.Row(2); got != "Togo" {
		t.Errorf("country[2] = %q", got)
	}
	if got := b.Timestamp.Row(1); !got.Equal(time.Date(2021, 8, 9, 12, 1, 0, 0, time.UTC)) {
		t.Errorf("ts[1] = %v", got)
	}
	if !math.IsNaN(b.GHI.Row(1)) {
		t.Errorf("ghi[1] = %v, want NaN", b.GHI.Row(1))
	}

	input := b.Input()
	if len(input) != 5 || input[0].Name != "ts" || input[4].Name != "dhi" {
		t.Errorf("unexpected input layout %v", input)
	}

	b.Reset()
	if b.Len() != 0 {
		t.Errorf("Len after Reset = %d", b.Len())
	}
}

type staticSource struct {
	obs []models.Observation
	err error
}

func (s staticSource) Name() string { return "static" }

func (s staticSource) Load(ctx context.Context) ([]models.Observation, error) {
	return s.obs, s.err
}

type memorySink struct {
	name string
	got  []models.Observation
	err  error
}

func (m *memorySink) Name() string { return m.name }

func (m *memorySink) Replace(ctx context.Context, obs []models.Observation) error {
	if m.err != nil {
		return m.err
	}
	m.got = obs
	return nil
}

func TestRun(t *testing.T) {
	a, b := &memorySink{name: "a"}, &memorySink{name: "b"}

	report, err := Run(context.Background(), staticSource{obs: sampleObservations()}, a, b)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if report.Records != 3 || report.ByCountry[models.CountryBenin] != 2 || report.ByCountry[models.CountryTogo] != 1 {
		t.Errorf("report = %+v", report)
	}
	if len(report.Sinks) != 2 || len(a.got) != 3 || len(b.got) != 3 {
		t.Errorf("sinks not written: %v", report.Sinks)
	}
}

func TestRunDryRun(t *testing.T) {
	report, err := Run(context.Background(), staticSource{obs: sampleObservations()})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if report.Records != 3 || len(report.Sinks) != 0 {
		t.Errorf("report = %+v", report)
	}
}

func TestRunErrors(t *testing.T) {
	boom := errors.New("boom")

	if _, err := Run(context.Background(), staticSource{err: boom}); errors.Cause(err) != boom {
		t.Errorf("source error = %v", err)
	}

	bad := &memorySink{name: "bad", err: boom}
	report, err := Run(context.Background(), staticSource{obs: sampleObservations()}, bad)
	if errors.Cause(err) != boom {
		t.Errorf("sink error = %v", err)
	}
	if report == nil || len(report.Sinks) != 0 {
		t.Errorf("report = %+v", report)
	}
}

type memoryStore struct {
	memorySink
	drop int
}

func (m *memoryStore) Count(ctx context.Context) (int64, error) {
	return int64(len(m.got) - m.drop), nil
}

func (m *memoryStore) Find(ctx context.Context, q models.ObservationQuery) ([]models.Observation, error) {
	var out []models.Observation
	for _, o := range m.got[m.drop:] {
		for _, c := range q.Countries {
			if o.Country == c {
				out = append(out, o)
			}
		}
	}
	return out, nil
}

func TestVerify(t *testing.T) {
	store := &memoryStore{memorySink: memorySink{name: "mem"}}
	report, err := Run(context.Background(), staticSource{obs: sampleObservations()}, store)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if err := Verify(context.Background(), store, report); err != nil {
		t.Errorf("Verify failed: %v", err)
	}

	store.drop = 1
	err = Verify(context.Background(), store, report)
	if errors.Cause(err) != ErrVerifyMismatch {
		t.Errorf("err = %v, want ErrVerifyMismatch", err)
	}
}
