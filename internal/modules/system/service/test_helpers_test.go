package service

import (
	"context"
	"errors"
	"time"

	puzzledto "github.com/MacKrakenGames/Rhyming-Pairs/internal/modules/puzzle/dto"
	"github.com/MacKrakenGames/Rhyming-Pairs/internal/modules/system/repo"
)

var fixedNow = time.Date(2024, 3, 5, 12, 0, 0, 0, time.UTC)

type stubStats struct {
	counts *repo.PuzzleCounts
	err    error
	gotNow time.Time
}

func (s *stubStats) CountPuzzles(_ context.Context, now time.Time) (*repo.PuzzleCounts, error) {
	s.gotNow = now
	if s.err != nil {
		return nil, s.err
	}
	return s.counts, nil
}

type stubReconciler struct {
	got    *puzzledto.ReconcileOptions
	report *puzzledto.ReconcileReport
	err    error
}

func (r *stubReconciler) Reconcile(_ context.Context, opts puzzledto.ReconcileOptions) (*puzzledto.ReconcileReport, error) {
	r.got = &opts
	if r.err != nil {
		return nil, r.err
	}
	return r.report, nil
}

var errBackend = errors.New("backend down")
